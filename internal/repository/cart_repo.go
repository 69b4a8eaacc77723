package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CartRepo stores cart snapshots in Postgres for deployments where the
// cart has to survive the machine (shared kiosks). It implements the
// same KV surface as the file store.
type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	query := `
		SELECT value
		FROM cart_snapshots
		WHERE key = $1
	`

	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load snapshot: %w", err)
	}
	return value, true, nil
}

func (r *CartRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cart_snapshots (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}
