package persist

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/config"
	"github.com/coremud/core/internal/store"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{DBName: ":memory:", MaxOpenConns: 1}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(ctx, db.Conn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func TestFlushDirtyThenLoadWorldRoundTrips(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	w := store.NewWorld(func() int64 { return 1000 })
	names := store.NewComponentStore[component.Name]()
	w.Registry.Register(names)
	w.RegisterComponentCodec(component.NameCodec(names))

	e, id := w.CreateEntity()
	names.Set(e, &component.Name{Text: store.NewText(w.Interner, nil, "Elora")})
	w.MarkDirty(id)

	if err := FlushDirty(ctx, db, w); err != nil {
		t.Fatalf("flush dirty: %v", err)
	}
	if len(w.DirtyIDs()) != 0 {
		t.Fatalf("expected dirty set cleared after flush")
	}

	w2 := store.NewWorld(func() int64 { return 1000 })
	names2 := store.NewComponentStore[component.Name]()
	w2.Registry.Register(names2)
	w2.RegisterComponentCodec(component.NameCodec(names2))

	if err := LoadWorld(ctx, db, w2, zap.NewNop(), nil, nil); err != nil {
		t.Fatalf("load world: %v", err)
	}

	loaded, ok := w2.Pool.Resolve(id)
	if !ok {
		t.Fatalf("expected entity %v to resolve after load", id)
	}
	n, ok := names2.Get(loaded)
	if !ok || n.Raw != "Elora" {
		t.Fatalf("expected name %q, got %+v ok=%v", "Elora", n, ok)
	}
}

func TestFlushDirtyDeletesDestroyedEntity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	w := store.NewWorld(func() int64 { return 1000 })
	e, id := w.CreateEntity()
	if err := FlushDirty(ctx, db, w); err != nil {
		t.Fatalf("flush dirty: %v", err)
	}

	w.Delete(e)
	if err := FlushDirty(ctx, db, w); err != nil {
		t.Fatalf("flush dirty after delete: %v", err)
	}

	repo := NewObjectRepo(db)
	row, err := repo.Load(ctx, int64(id.Index))
	if err != nil {
		t.Fatalf("load object: %v", err)
	}
	if row != nil {
		t.Fatalf("expected object row to be deleted, got %+v", row)
	}
}
