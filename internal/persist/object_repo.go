package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ObjectRow mirrors one row of the objects table: an entity's stable
// identity plus its serialized component data.
type ObjectRow struct {
	ID         int64
	Generation int64
	Data       []byte
}

// ObjectRepo persists the objects table.
type ObjectRepo struct {
	db *DB
}

func NewObjectRepo(db *DB) *ObjectRepo {
	return &ObjectRepo{db: db}
}

// MaxID returns the highest object id on record, or 0 if the table is
// empty. Used to pre-size the entity pool before streaming rows in.
func (r *ObjectRepo) MaxID(ctx context.Context) (int64, error) {
	var max sql.NullInt64
	err := r.db.Conn.QueryRowContext(ctx, `SELECT MAX(id) FROM objects`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max object id: %w", err)
	}
	return max.Int64, nil
}

// LoadAll streams every row in the objects table to fn, ordered by id so
// pass 1 (slot allocation) and pass 2 (deserialization) can both walk rows
// in a stable order.
func (r *ObjectRepo) LoadAll(ctx context.Context, fn func(ObjectRow) error) error {
	rows, err := r.db.Conn.QueryContext(ctx, `SELECT id, generation, data FROM objects ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load objects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row ObjectRow
		if err := rows.Scan(&row.ID, &row.Generation, &row.Data); err != nil {
			return fmt.Errorf("scan object row: %w", err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Load fetches a single object row by id, returning (nil, nil) if absent.
func (r *ObjectRepo) Load(ctx context.Context, id int64) (*ObjectRow, error) {
	row := &ObjectRow{}
	err := r.db.Conn.QueryRowContext(ctx,
		`SELECT id, generation, data FROM objects WHERE id = ?`, id,
	).Scan(&row.ID, &row.Generation, &row.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load object #%d: %w", id, err)
	}
	return row, nil
}

// Upsert writes or replaces the row for (id, generation). A flush calls
// this once per dirty live entity.
func (r *ObjectRepo) Upsert(ctx context.Context, id, generation int64, data []byte) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`INSERT INTO objects (id, generation, data) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET generation = excluded.generation, data = excluded.data`,
		id, generation, data,
	)
	if err != nil {
		return fmt.Errorf("upsert object #%d: %w", id, err)
	}
	return nil
}

// Delete removes the row for id. A flush calls this once per dirty entity
// whose slot no longer holds a live generation (it was destroyed since the
// last flush).
func (r *ObjectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Conn.ExecContext(ctx, `DELETE FROM objects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete object #%d: %w", id, err)
	}
	return nil
}
