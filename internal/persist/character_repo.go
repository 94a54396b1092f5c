package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CharacterRow mirrors the playerCharacters table. The character id is an
// object id (it is also a row in objects); this table only tracks account
// ownership and play-time bookkeeping. Everything about the character
// itself — name, stats, position — lives in the entity's own component
// JSON.
type CharacterRow struct {
	CharacterID   int64
	AccountID     int64
	LastLogin     sql.NullInt64
	LastLogout    sql.NullInt64
	TotalPlayTime float64
}

// CharacterRepo persists the playerCharacters table.
type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

// ListByAccount returns every character row owned by accountID.
func (r *CharacterRepo) ListByAccount(ctx context.Context, accountID int64) ([]CharacterRow, error) {
	rows, err := r.db.Conn.QueryContext(ctx,
		`SELECT character, account, lastLogin, lastLogout, totalPlayTime
		 FROM playerCharacters WHERE account = ? ORDER BY character`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list characters for account #%d: %w", accountID, err)
	}
	defer rows.Close()

	var result []CharacterRow
	for rows.Next() {
		var c CharacterRow
		if err := rows.Scan(&c.CharacterID, &c.AccountID, &c.LastLogin, &c.LastLogout, &c.TotalPlayTime); err != nil {
			return nil, fmt.Errorf("scan character row: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *CharacterRepo) Load(ctx context.Context, characterID int64) (*CharacterRow, error) {
	c := &CharacterRow{}
	err := r.db.Conn.QueryRowContext(ctx,
		`SELECT character, account, lastLogin, lastLogout, totalPlayTime
		 FROM playerCharacters WHERE character = ?`, characterID,
	).Scan(&c.CharacterID, &c.AccountID, &c.LastLogin, &c.LastLogout, &c.TotalPlayTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load character #%d: %w", characterID, err)
	}
	return c, nil
}

// Create links a freshly created character entity (characterID is that
// entity's ObjectID.Index) to its owning account.
func (r *CharacterRepo) Create(ctx context.Context, characterID, accountID int64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`INSERT INTO playerCharacters (character, account) VALUES (?, ?)`,
		characterID, accountID,
	)
	if err != nil {
		return fmt.Errorf("create character #%d for account #%d: %w", characterID, accountID, err)
	}
	return nil
}

func (r *CharacterRepo) UpdateLastLogin(ctx context.Context, characterID, at int64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE playerCharacters SET lastLogin = ? WHERE character = ?`, at, characterID)
	if err != nil {
		return fmt.Errorf("update last login for character #%d: %w", characterID, err)
	}
	return nil
}

func (r *CharacterRepo) UpdateLastLogout(ctx context.Context, characterID, at int64, sessionSeconds float64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE playerCharacters SET lastLogout = ?, totalPlayTime = totalPlayTime + ? WHERE character = ?`,
		at, sessionSeconds, characterID)
	if err != nil {
		return fmt.Errorf("update last logout for character #%d: %w", characterID, err)
	}
	return nil
}

func (r *CharacterRepo) Delete(ctx context.Context, characterID int64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`DELETE FROM playerCharacters WHERE character = ?`, characterID)
	if err != nil {
		return fmt.Errorf("delete character #%d: %w", characterID, err)
	}
	return nil
}
