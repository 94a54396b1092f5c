package heartbeat

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EmergencyHandler is invoked once when a system returns an unhandled
// error, before the scheduler stops. This package supplies no default: with
// a nil handler the loop simply stops, and the scheduler itself neither
// broadcasts to sessions nor exits the process.
type EmergencyHandler func(system string, err error)

// Scheduler runs a Runner's systems at a fixed interval.
type Scheduler struct {
	runner    *Runner
	interval  time.Duration
	minWait   time.Duration
	log       *zap.Logger
	emergency EmergencyHandler

	// now is overridable for tests; nil uses time.Now.
	now func() time.Time
}

// NewScheduler builds a Scheduler over runner with the given tick interval
// and minimum overrun wait, used as passed (the 100ms/1ms defaults come
// from package config).
func NewScheduler(runner *Runner, interval, minWait time.Duration, log *zap.Logger, emergency EmergencyHandler) *Scheduler {
	return &Scheduler{
		runner:    runner,
		interval:  interval,
		minWait:   minWait,
		log:       log,
		emergency: emergency,
		now:       time.Now,
	}
}

// Run executes ticks until ctx is cancelled. A system returning an error
// triggers the emergency handler and stops the loop.
func (s *Scheduler) Run(ctx context.Context) {
	last := s.now()
	for {
		wait := s.interval - s.now().Sub(last)
		if wait < s.minWait {
			wait = s.minWait
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		tickStart := s.now()
		dt := tickStart.Sub(last)
		last = tickStart

		if err := s.tick(dt); err != nil {
			return
		}
	}
}

func (s *Scheduler) tick(dt time.Duration) error {
	for _, sys := range s.runner.Systems() {
		if !sys.ShouldRun(dt) {
			continue
		}
		if err := sys.Run(dt); err != nil {
			s.log.Error("system failed, shutting down", zap.String("system", sys.Name()), zap.Error(err))
			if s.emergency != nil {
				s.emergency(sys.Name(), err)
			}
			return err
		}
	}
	return nil
}
