// Package postgres provides a PostgreSQL-backed implementation of the
// storage.TripStore interface. Trips live in a single trip_groups table with
// the document in a JSONB column.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
)

// Ensure PostgresStore implements storage.TripStore
var _ storage.TripStore = (*PostgresStore)(nil)

// PostgresStore implements storage.TripStore using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// New opens a connection pool for databaseURL, checks it and runs migrations.
func New(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip.
func (s *PostgresStore) CreateTrip(ctx context.Context, rec *storage.TripRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	rec.UpdatedAt = rec.CreatedAt
	rec.Trip.Version = 1

	data, err := json.Marshal(rec.Trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO trip_groups (id, access_key_hash, data, version, created_at, updated_at)
		 VALUES ($1, $2, $3::jsonb, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		rec.Trip.ID, rec.AccessKeyHash, string(data), rec.Trip.Version, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, rec.Trip.ID)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *PostgresStore) GetTrip(ctx context.Context, tripID string) (*storage.TripRecord, error) {
	rec := &storage.TripRecord{}
	var (
		data    []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT access_key_hash, data, version, created_at, updated_at FROM trip_groups WHERE id = $1",
		tripID,
	).Scan(&rec.AccessKeyHash, &data, &version, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	var doc models.TripDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", tripID, err)
	}
	doc.Version = version
	rec.Trip = &doc

	return rec, nil
}

// SaveTrip overwrites the document if nobody saved since expectedVersion.
func (s *PostgresStore) SaveTrip(ctx context.Context, doc *models.TripDocument, expectedVersion int64) error {
	next := *doc
	next.Version = expectedVersion + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE trip_groups SET data = $1::jsonb, version = $2, updated_at = $3
		 WHERE id = $4 AND version = $5`,
		string(data), next.Version, time.Now().Unix(), doc.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trip_groups WHERE id = $1", doc.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, doc.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check trip existence: %w", err)
		}
		return fmt.Errorf("%w: %s at version %d", storage.ErrVersionConflict, doc.ID, expectedVersion)
	}

	doc.Version = next.Version
	return nil
}
