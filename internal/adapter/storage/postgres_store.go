// internal/adapter/storage/postgres_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"listingseo/internal/domain/listing"
)

// farFuture stands in for "no expiry" so every row carries an expires_at
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// PostgresStore implements listing.ResultStore on a PostgreSQL table
type PostgresStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresStore creates a new postgres store
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db:  db,
		now: time.Now,
	}
}

// EnsureSchema creates the session value table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS session_values (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS session_values_expires_at_idx ON session_values (expires_at);
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error creating session_values table: %w", err)
	}
	return nil
}

// Get returns the value stored under key if it has not expired
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM session_values
		WHERE key = $1 AND expires_at > $2
	`

	var value []byte
	err := s.db.QueryRow(ctx, query, key, s.now()).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, listing.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying session value: %w", err)
	}

	return value, nil
}

// Set stores value under key with the given ttl
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO session_values (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET
			value = $2,
			expires_at = $3
	`

	expiresAt := farFuture
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	if _, err := s.db.Exec(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// Delete removes the given keys
func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM session_values WHERE key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("error deleting session values: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM session_values WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging session values: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
