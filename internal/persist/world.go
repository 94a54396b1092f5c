package persist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/store"
)

// LoadWorld hydrates w from the objects table in two passes, per the
// documented protocol: a pre-size + slot-allocation pass so every row's
// ObjectID exists before any cross-entity reference is resolved, followed
// by a deserialization pass that can safely look up peer entities by
// ObjectID regardless of row order. preLoad and postLoad run outside the
// loading-suppressed region and may, for instance, register prototypes or
// kick off indexing.
func LoadWorld(ctx context.Context, db *DB, w *store.World, log *zap.Logger, preLoad, postLoad func() error) error {
	repo := NewObjectRepo(db)

	if preLoad != nil {
		if err := preLoad(); err != nil {
			return fmt.Errorf("pre-load hook: %w", err)
		}
	}

	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return err
	}
	w.Pool.EnsureCapacity(int(maxID) + 1)

	w.SetLoading(true)
	defer w.SetLoading(false)

	var rows []ObjectRow
	if err := repo.LoadAll(ctx, func(row ObjectRow) error {
		w.Pool.HydrateAt(uint32(row.ID), row.Generation)
		rows = append(rows, row)
		return nil
	}); err != nil {
		return fmt.Errorf("load pass 1 (allocate): %w", err)
	}

	for _, row := range rows {
		e := store.Entity(row.ID)
		if err := store.DeserializeEntity(w, e, row.Data); err != nil {
			return fmt.Errorf("load pass 2 (deserialize) object #%d: %w", row.ID, err)
		}
	}
	log.Info("loaded objects", zap.Int("count", len(rows)))
	w.SetLoading(false)

	if postLoad != nil {
		if err := postLoad(); err != nil {
			return fmt.Errorf("post-load hook: %w", err)
		}
	}
	return nil
}

// FlushDirty writes every entity in w's dirty set back to the objects
// table: an upsert for a live entity, a delete for one that's since been
// destroyed. Unrecognized component keys from the entity's last load (kinds
// this binary has no codec for) are preserved across the rewrite so content
// never loses data it doesn't understand. Callers own calling this on the
// tick thread only, matching the dirty set's documented concurrency
// constraint.
func FlushDirty(ctx context.Context, db *DB, w *store.World) error {
	repo := NewObjectRepo(db)
	ids := w.DirtyIDs()
	for _, id := range ids {
		e, ok := w.Pool.Resolve(id)
		if !ok {
			if err := repo.Delete(ctx, int64(id.Index)); err != nil {
				return err
			}
			continue
		}
		data, err := store.SerializeEntity(w, e)
		if err != nil {
			return fmt.Errorf("serialize object #%d: %w", id.Index, err)
		}
		if err := repo.Upsert(ctx, int64(id.Index), id.Generation, data); err != nil {
			return err
		}
	}
	w.ClearDirty()
	return nil
}
