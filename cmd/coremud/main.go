package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/config"
	"github.com/coremud/core/internal/connection"
	"github.com/coremud/core/internal/core/event"
	"github.com/coremud/core/internal/corelog"
	"github.com/coremud/core/internal/edge"
	"github.com/coremud/core/internal/heartbeat"
	"github.com/coremud/core/internal/hooks"
	"github.com/coremud/core/internal/persist"
	"github.com/coremud/core/internal/relation"
	"github.com/coremud/core/internal/session"
	"github.com/coremud/core/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              CoreMUD  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("COREMUD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	printBanner(cfg.Server.Name)

	log, err := corelog.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printSection("persistence")
	ctx := context.Background()
	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := persist.RunMigrations(ctx, db.Conn); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	printOK("database ready: " + cfg.Database.DBName)

	accounts := persist.NewAccountRepo(db)
	characters := persist.NewCharacterRepo(db)

	printSection("world")
	w := store.NewWorld(nil)
	rel := relation.NewManager(w)

	names := store.NewComponentStore[component.Name]()
	shorts := store.NewComponentStore[component.ShortDescription]()
	rooms := store.NewComponentStore[component.RoomDescription]()
	looks := store.NewComponentStore[component.LookDescription]()
	items := store.NewComponentStore[component.Item]()
	chars := store.NewComponentStore[component.Character]()
	npcs := store.NewComponentStore[component.NPC]()
	players := store.NewComponentStore[component.Player]()
	vehicles := store.NewComponentStore[component.Vehicle]()
	prototypes := store.NewComponentStore[component.Prototype]()
	areas := store.NewComponentStore[component.Area]()
	roomSpaces := store.NewComponentStore[component.Room]()
	maps := store.NewComponentStore[component.Map]()
	expanses := store.NewComponentStore[component.Expanse]()
	spaces := store.NewComponentStore[component.Space]()

	for _, s := range []store.Removable{
		names, shorts, rooms, looks, items, chars, npcs, players, vehicles,
		prototypes, areas, roomSpaces, maps, expanses, spaces,
	} {
		w.Registry.Register(s)
	}

	w.RegisterComponentCodec(component.NameCodec(names))
	w.RegisterComponentCodec(component.ShortDescriptionCodec(shorts))
	w.RegisterComponentCodec(component.RoomDescriptionCodec(rooms))
	w.RegisterComponentCodec(component.LookDescriptionCodec(looks))
	w.RegisterComponentCodec(store.NewJSONCodec("item", items))
	w.RegisterComponentCodec(store.NewJSONCodec("character", chars))
	w.RegisterComponentCodec(store.NewJSONCodec("npc", npcs))
	w.RegisterComponentCodec(store.NewJSONCodec("player", players))
	w.RegisterComponentCodec(store.NewJSONCodec("vehicle", vehicles))
	w.RegisterComponentCodec(store.NewJSONCodec("prototype", prototypes))
	w.RegisterComponentCodec(component.AreaCodec(areas))
	w.RegisterComponentCodec(component.RoomCodec(roomSpaces))
	w.RegisterComponentCodec(component.MapCodec(maps))
	w.RegisterComponentCodec(component.ExpanseCodec(expanses))
	w.RegisterComponentCodec(component.SpaceCodec(spaces))
	for _, c := range rel.Codecs() {
		w.RegisterComponentCodec(c)
	}

	coreHooks := hooks.New(names, shorts, looks)
	w.Strip = coreHooks.StripColor

	bus := event.NewBus()
	w.OnEntityCreated(func(e store.Entity, id store.ObjectID) {
		event.Emit(bus, event.EntityCreated{Entity: e, ID: id})
	})
	w.OnEntityDeleted(func(e store.Entity, id store.ObjectID) {
		event.Emit(bus, event.EntityDeleted{Entity: e, ID: id})
	})
	event.Subscribe(bus, func(ev event.EntityCreated) {
		log.Debug("entity created", zap.Uint32("index", ev.ID.Index), zap.Int64("generation", ev.ID.Generation))
	})
	event.Subscribe(bus, func(ev event.EntityDeleted) {
		log.Debug("entity deleted", zap.Uint32("index", ev.ID.Index), zap.Int64("generation", ev.ID.Generation))
	})
	event.Subscribe(bus, func(ev event.AccountAuthenticated) {
		log.Info("account authenticated", zap.Int64("connection", ev.ConnectionID), zap.Int64("account", ev.AccountID))
	})
	event.Subscribe(bus, func(ev event.SessionStarted) {
		log.Info("session started", zap.Int64("account", ev.AccountID))
	})
	event.Subscribe(bus, func(ev event.SessionLinkDead) {
		log.Info("session went link-dead", zap.Int64("account", ev.AccountID))
	})

	if err := persist.LoadWorld(ctx, db, w, log, nil, nil); err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	printOK(fmt.Sprintf("world loaded: %d interned strings", w.Interner.Len()))

	printSection("commands")
	connectRegistry := command.NewConnectRegistry()
	now := func() int64 { return time.Now().Unix() }
	connectRegistry.Register(&connectCommand{accounts: accounts, hooks: coreHooks, now: now, events: bus})
	connectRegistry.Register(&createCommand{accounts: accounts, hooks: coreHooks, now: now, events: bus})
	connectRegistry.Register(quitConnectCommand{})
	connectRegistry.Register(helpConnectCommand{})
	connectRegistry.Build()

	sessions := session.NewManager(w, command.NewRegistry(), session.ShapeStores{
		Items:      items,
		Characters: chars,
		NPCs:       npcs,
		Players:    players,
		Vehicles:   vehicles,
	}, log, bus)

	loginRegistry := command.NewLoginRegistry()
	loginRegistry.Register(&playCommand{characters: characters, world: w, names: names, sessions: sessions, now: now})
	loginRegistry.Register(&newCommand{characters: characters, world: w, names: names, shapes: chars, players: players, now: now})
	loginRegistry.Build()
	printOK("command tables built")

	printSection("edge link")
	inbox := make(edge.Inbox, 256)
	outbox := make(edge.Outbox, 256)
	linkManager := edge.NewLinkManager(cfg.Thermite, inbox, outbox, log)

	router := &dispatchRouter{connect: connectRegistry, login: loginRegistry}
	stop := make(chan struct{})
	sender := &edgeSender{out: outbox}
	connections := connection.NewRegistry(router, sender, stop, log)

	linkCtx, cancelLink := context.WithCancel(ctx)
	defer cancelLink()
	go linkManager.Run(linkCtx)
	go func() {
		for {
			select {
			case f := <-inbox:
				connections.HandleFrame(f)
			case <-linkCtx.Done():
				return
			}
		}
	}()
	printOK(fmt.Sprintf("dialing thermite at %s:%d", cfg.Thermite.Address, cfg.Thermite.Port))

	printSection("heartbeat")
	runner := heartbeat.NewRunner()
	runner.Register(heartbeat.Func{FuncName: "events", FuncPriority: -20000, RunFunc: func(time.Duration) error {
		bus.SwapBuffers()
		bus.DispatchAll()
		return nil
	}})
	runner.Register(heartbeat.Func{FuncName: "connections", FuncPriority: -10000, RunFunc: connections.ProcessConnections})
	runner.Register(heartbeat.Func{FuncName: "sessions", FuncPriority: -9000, RunFunc: sessions.ProcessSessions})
	runner.Register(heartbeat.Func{FuncName: "output", FuncPriority: 10000, RunFunc: sessions.ProcessOutput})
	runner.Register(heartbeat.Func{FuncName: "persistence", FuncPriority: 20000, RunFunc: func(time.Duration) error {
		return persist.FlushDirty(ctx, db, w)
	}})

	emergency := func(system string, err error) {
		log.Error("heartbeat system failed, halting simulation", zap.String("system", system), zap.Error(err))
	}
	scheduler := heartbeat.NewScheduler(runner, cfg.Heartbeat.Interval, cfg.Heartbeat.MinimumWait, log, emergency)

	tickCtx, cancelTick := context.WithCancel(ctx)
	defer cancelTick()
	go scheduler.Run(tickCtx)
	printReady("heartbeat running at " + cfg.Heartbeat.Interval.String())

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	printReady("CoreMUD is up")

	sig := <-shutdownCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))
	cancelTick()
	close(stop)
	linkManager.Stop()
	cancelLink()
	if err := persist.FlushDirty(ctx, db, w); err != nil {
		log.Error("final flush failed", zap.Error(err))
	}
	log.Info("CoreMUD stopped")
	return nil
}

// edgeSender implements connection.Sender over a LinkManager's Outbox: it
// wraps each session's text as a single client_data command addressed to
// one client.
type edgeSender struct {
	out edge.Outbox
}

func (s *edgeSender) SendText(connID int64, text string) {
	f, err := edge.OutboundClientData(connID, []edge.ClientCommand{{Cmd: "text", Args: []string{text}}})
	if err != nil {
		return
	}
	s.out <- f
}
