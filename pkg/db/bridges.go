package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrBridgeNotFound = errors.New("bridge not found")

// Bridge represents a paired Hue bridge and its API username.
type Bridge struct {
	ID        int64
	Address   string
	Username  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BridgeStore provides bridge credential CRUD operations.
type BridgeStore interface {
	GetByAddress(ctx context.Context, address string) (*Bridge, error)
	GetActive(ctx context.Context) (*Bridge, error)
	List(ctx context.Context) ([]*Bridge, error)
	Save(ctx context.Context, b *Bridge) error
	SetActive(ctx context.Context, address string) error
	Delete(ctx context.Context, address string) error
}

// Bridges returns a BridgeStore for this database.
func (db *DB) Bridges() BridgeStore {
	return &bridgeStore{db: db}
}

type bridgeStore struct {
	db *DB
}

func (s *bridgeStore) scanRow(row *sql.Row) (*Bridge, error) {
	b := &Bridge{}
	var createdAt, updatedAt string
	err := row.Scan(&b.ID, &b.Address, &b.Username, &b.IsActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBridgeNotFound
	}
	if err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	b.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return b, nil
}

func (s *bridgeStore) GetByAddress(ctx context.Context, address string) (*Bridge, error) {
	return s.scanRow(s.db.QueryRowContext(ctx, `
		SELECT id, address, username, is_active, created_at, updated_at
		FROM bridges WHERE address = ?
	`, address))
}

func (s *bridgeStore) GetActive(ctx context.Context) (*Bridge, error) {
	return s.scanRow(s.db.QueryRowContext(ctx, `
		SELECT id, address, username, is_active, created_at, updated_at
		FROM bridges WHERE is_active = 1 LIMIT 1
	`))
}

func (s *bridgeStore) List(ctx context.Context) ([]*Bridge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, username, is_active, created_at, updated_at
		FROM bridges ORDER BY address
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bridges []*Bridge
	for rows.Next() {
		b := &Bridge{}
		var createdAt, updatedAt string
		if err := rows.Scan(&b.ID, &b.Address, &b.Username, &b.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		b.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		bridges = append(bridges, b)
	}
	return bridges, rows.Err()
}

// Save inserts the bridge or, when the address is already known, refreshes
// its username. The saved bridge becomes the active one.
func (s *bridgeStore) Save(ctx context.Context, b *Bridge) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE bridges SET is_active = 0`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO bridges (address, username, is_active)
			VALUES (?, ?, 1)
			ON CONFLICT(address) DO UPDATE SET
				username = excluded.username,
				is_active = 1,
				updated_at = datetime('now')
		`, b.Address, b.Username)
		if err != nil {
			return fmt.Errorf("failed to save bridge: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		b.ID = id
		b.IsActive = true
		return nil
	})
}

func (s *bridgeStore) SetActive(ctx context.Context, address string) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE bridges SET is_active = 0`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE bridges SET is_active = 1 WHERE address = ?`, address)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrBridgeNotFound
		}
		return nil
	})
}

func (s *bridgeStore) Delete(ctx context.Context, address string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bridges WHERE address = ?`, address)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBridgeNotFound
	}
	return nil
}
