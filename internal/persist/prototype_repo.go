package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PrototypeRow mirrors one row of the prototypes table: a name-keyed JSON
// blob of default component data that a Prototype component references by
// name.
type PrototypeRow struct {
	ID   int64
	Name string
	Data []byte
}

// PrototypeRepo persists the prototypes table.
type PrototypeRepo struct {
	db *DB
}

func NewPrototypeRepo(db *DB) *PrototypeRepo {
	return &PrototypeRepo{db: db}
}

// LoadByName looks up a prototype by name (case-insensitive, per the
// table's COLLATE NOCASE), returning (nil, nil) if absent.
func (r *PrototypeRepo) LoadByName(ctx context.Context, name string) (*PrototypeRow, error) {
	row := &PrototypeRow{}
	err := r.db.Conn.QueryRowContext(ctx,
		`SELECT id, name, data FROM prototypes WHERE name = ?`, name,
	).Scan(&row.ID, &row.Name, &row.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load prototype %q: %w", name, err)
	}
	return row, nil
}

// LoadAll returns every prototype row, used to warm a content-side cache at
// startup.
func (r *PrototypeRepo) LoadAll(ctx context.Context) ([]PrototypeRow, error) {
	rows, err := r.db.Conn.QueryContext(ctx, `SELECT id, name, data FROM prototypes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load prototypes: %w", err)
	}
	defer rows.Close()

	var result []PrototypeRow
	for rows.Next() {
		var row PrototypeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Data); err != nil {
			return nil, fmt.Errorf("scan prototype row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Upsert writes or replaces the row for name.
func (r *PrototypeRepo) Upsert(ctx context.Context, name string, data []byte) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`INSERT INTO prototypes (name, data) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("upsert prototype %q: %w", name, err)
	}
	return nil
}

func (r *PrototypeRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.Conn.ExecContext(ctx, `DELETE FROM prototypes WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete prototype %q: %w", name, err)
	}
	return nil
}
