// Package sqlite provides a SQLite-backed implementation of the storage.TripStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
)

// Ensure SQLiteStore implements storage.TripStore
var _ storage.TripStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.TripStore using SQLite.
// Each trip is a single row holding the JSON document.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip.
func (s *SQLiteStore) CreateTrip(ctx context.Context, rec *storage.TripRecord) error {
	now := time.Now().Unix()
	if rec.CreatedAt == 0 {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = rec.CreatedAt
	rec.Trip.Version = 1

	data, err := json.Marshal(rec.Trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", rec.Trip.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, rec.Trip.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, access_key_hash, data, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Trip.ID, rec.AccessKeyHash, string(data), rec.Trip.Version, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*storage.TripRecord, error) {
	rec := &storage.TripRecord{}
	var (
		data    string
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT access_key_hash, data, version, created_at, updated_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&rec.AccessKeyHash, &data, &version, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	var doc models.TripDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", tripID, err)
	}
	doc.Version = version
	rec.Trip = &doc

	return rec, nil
}

// SaveTrip overwrites the document if nobody saved since expectedVersion.
func (s *SQLiteStore) SaveTrip(ctx context.Context, doc *models.TripDocument, expectedVersion int64) error {
	next := *doc
	next.Version = expectedVersion + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE trips SET data = ?, version = ?, updated_at = ? WHERE id = ? AND version = ?",
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
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", doc.ID).Scan(&exists)
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
