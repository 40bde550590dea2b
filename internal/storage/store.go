// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

var (
	// ErrNotFound is returned when no trip exists with the requested ID.
	ErrNotFound = errors.New("trip not found")

	// ErrAlreadyExists is returned when creating a trip whose ID is taken.
	ErrAlreadyExists = errors.New("trip already exists")

	// ErrVersionConflict is returned when a save was based on a stale version.
	ErrVersionConflict = errors.New("trip was modified concurrently")
)

// TripRecord is a trip document together with its access metadata.
type TripRecord struct {
	// Trip is the persisted document.
	Trip *models.TripDocument

	// AccessKeyHash is the bcrypt hash of the trip's shared access key.
	AccessKeyHash string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last successful save.
	UpdatedAt int64
}

// TripStore defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, Redis)
// without changing the service layer.
type TripStore interface {
	// CreateTrip persists a new trip. The document's Version is set to 1.
	// Returns ErrAlreadyExists if the ID is taken.
	CreateTrip(ctx context.Context, rec *TripRecord) error

	// GetTrip retrieves a trip by its ID.
	// Returns ErrNotFound if the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*TripRecord, error)

	// SaveTrip replaces the whole document if the stored version still equals
	// expectedVersion. On success doc.Version is set to the new version.
	// Returns ErrNotFound or ErrVersionConflict otherwise.
	SaveTrip(ctx context.Context, doc *models.TripDocument, expectedVersion int64) error

	// Close releases any resources held by the store.
	Close() error
}
