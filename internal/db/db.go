// Package db provides PostgreSQL access for the remote track-flow tier.
// The remote store holds one current-shape state document per user and is
// the authoritative copy; the local cache only bridges remote outages.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/trackflow/internal/schemas"
	"github.com/jonathan/trackflow/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the track_states table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS track_states (
			user_id UUID PRIMARY KEY,
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// GetState retrieves a user's state document. Returns (nil, nil) when the
// user has no remote state yet. The payload is schema-validated before
// unmarshaling: the remote tier must never hand back legacy shapes.
func (db *DB) GetState(ctx context.Context, userID uuid.UUID) (*types.State, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT state FROM track_states WHERE user_id = $1`,
		userID,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state for %s: %w", userID, err)
	}

	if err := schemas.ValidateState(payload); err != nil {
		return nil, fmt.Errorf("remote state for %s failed validation: %w", userID, err)
	}

	var st types.State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state for %s: %w", userID, err)
	}
	st.Normalize()
	return &st, nil
}

// PutState upserts a user's state document.
func (db *DB) PutState(ctx context.Context, userID uuid.UUID, st *types.State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO track_states (user_id, state)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET state = $2, updated_at = NOW()`,
		userID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to put state for %s: %w", userID, err)
	}
	return nil
}
