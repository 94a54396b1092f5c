package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AccountRow mirrors the accounts table.
type AccountRow struct {
	ID                  int64
	Username            string
	PasswordHash        string
	Email               sql.NullString
	Created             int64
	LastLogin           sql.NullInt64
	LastLogout          sql.NullInt64
	LastPasswordChanged sql.NullInt64
	TotalPlayTime       float64
	TotalLoginTime      float64
	DisabledReason      sql.NullString
	DisabledUntil       sql.NullInt64
	AdminLevel          int
}

// AccountRepo persists the accounts table.
type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) LoadByUsername(ctx context.Context, username string) (*AccountRow, error) {
	row := &AccountRow{}
	err := r.db.Conn.QueryRowContext(ctx,
		`SELECT id, username, password, email, created, lastLogin, lastLogout,
		        lastPasswordChanged, totalPlayTime, totalLoginTime,
		        disabledReason, disabledUntil, adminLevel
		 FROM accounts WHERE username = ?`, username,
	).Scan(
		&row.ID, &row.Username, &row.PasswordHash, &row.Email, &row.Created,
		&row.LastLogin, &row.LastLogout, &row.LastPasswordChanged,
		&row.TotalPlayTime, &row.TotalLoginTime,
		&row.DisabledReason, &row.DisabledUntil, &row.AdminLevel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load account %q: %w", username, err)
	}
	return row, nil
}

func (r *AccountRepo) LoadByID(ctx context.Context, id int64) (*AccountRow, error) {
	row := &AccountRow{}
	err := r.db.Conn.QueryRowContext(ctx,
		`SELECT id, username, password, email, created, lastLogin, lastLogout,
		        lastPasswordChanged, totalPlayTime, totalLoginTime,
		        disabledReason, disabledUntil, adminLevel
		 FROM accounts WHERE id = ?`, id,
	).Scan(
		&row.ID, &row.Username, &row.PasswordHash, &row.Email, &row.Created,
		&row.LastLogin, &row.LastLogout, &row.LastPasswordChanged,
		&row.TotalPlayTime, &row.TotalLoginTime,
		&row.DisabledReason, &row.DisabledUntil, &row.AdminLevel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load account #%d: %w", id, err)
	}
	return row, nil
}

// Create inserts a new account with an already-hashed password. Hashing is
// the caller's concern (hooks.CoreHooks.HashPassword), keeping the repo
// free of a KDF choice.
func (r *AccountRepo) Create(ctx context.Context, username, passwordHash string, createdAt int64) (*AccountRow, error) {
	res, err := r.db.Conn.ExecContext(ctx,
		`INSERT INTO accounts (username, password, created) VALUES (?, ?, ?)`,
		username, passwordHash, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create account %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create account %q: %w", username, err)
	}
	return &AccountRow{ID: id, Username: username, PasswordHash: passwordHash, Created: createdAt}, nil
}

func (r *AccountRepo) UpdateLastLogin(ctx context.Context, id int64, at int64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE accounts SET lastLogin = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("update last login for account #%d: %w", id, err)
	}
	return nil
}

func (r *AccountRepo) UpdateLastLogout(ctx context.Context, id int64, at int64, sessionSeconds float64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE accounts SET lastLogout = ?, totalLoginTime = totalLoginTime + ? WHERE id = ?`,
		at, sessionSeconds, id)
	if err != nil {
		return fmt.Errorf("update last logout for account #%d: %w", id, err)
	}
	return nil
}

func (r *AccountRepo) SetDisabled(ctx context.Context, id int64, reason string, until sql.NullInt64) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE accounts SET disabledReason = ?, disabledUntil = ? WHERE id = ?`,
		reason, until, id)
	if err != nil {
		return fmt.Errorf("disable account #%d: %w", id, err)
	}
	return nil
}
