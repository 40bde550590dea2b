// Package storetest runs the same behavioural checks against every
// storage.TripStore implementation.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
)

// NewTrip returns a record with one admin family and one expense.
func NewTrip(id string) *storage.TripRecord {
	return &storage.TripRecord{
		AccessKeyHash: "$2a$10$hash-" + id,
		Trip: &models.TripDocument{
			ID:   id,
			Name: "Trip " + id,
			Families: []models.Family{
				{ID: id + "-fam", Name: "García", MemberCount: 2, Role: models.RoleAdmin},
			},
			Expenses: []models.Expense{
				{ID: id + "-exp", Concept: "Gasolina", Amount: 45.5, FamilyID: id + "-fam", Date: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
			},
			AdminID:          id + "-fam",
			SettledTransfers: []string{},
		},
	}
}

// Run exercises store. Trip IDs are prefixed with prefix so several runs can
// share one backend.
func Run(t *testing.T, store storage.TripStore, prefix string) {
	ctx := context.Background()

	t.Run("CreateTrip and GetTrip round trip", func(t *testing.T) {
		rec := NewTrip(prefix + "rt")
		require.NoError(t, store.CreateTrip(ctx, rec))
		assert.Equal(t, int64(1), rec.Trip.Version)
		assert.NotZero(t, rec.CreatedAt)

		got, err := store.GetTrip(ctx, rec.Trip.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.AccessKeyHash, got.AccessKeyHash)
		assert.Equal(t, int64(1), got.Trip.Version)
		assert.Equal(t, rec.Trip.Name, got.Trip.Name)
		assert.Equal(t, rec.Trip.AdminID, got.Trip.AdminID)
		require.Len(t, got.Trip.Families, 1)
		assert.Equal(t, rec.Trip.Families[0], got.Trip.Families[0])
		require.Len(t, got.Trip.Expenses, 1)
		assert.Equal(t, rec.Trip.Expenses[0].Amount, got.Trip.Expenses[0].Amount)
		assert.True(t, rec.Trip.Expenses[0].Date.Equal(got.Trip.Expenses[0].Date))
	})

	t.Run("CreateTrip rejects duplicate ID", func(t *testing.T) {
		require.NoError(t, store.CreateTrip(ctx, NewTrip(prefix+"dup")))
		err := store.CreateTrip(ctx, NewTrip(prefix+"dup"))
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("GetTrip returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, prefix+"missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("SaveTrip bumps version", func(t *testing.T) {
		rec := NewTrip(prefix + "save")
		require.NoError(t, store.CreateTrip(ctx, rec))

		doc := rec.Trip.Clone()
		doc.SettledTransfers = append(doc.SettledTransfers, "x-y-10.00")
		require.NoError(t, store.SaveTrip(ctx, doc, 1))
		assert.Equal(t, int64(2), doc.Version)

		got, err := store.GetTrip(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Trip.Version)
		assert.Equal(t, []string{"x-y-10.00"}, got.Trip.SettledTransfers)
		assert.Equal(t, rec.AccessKeyHash, got.AccessKeyHash)
	})

	t.Run("SaveTrip rejects stale version", func(t *testing.T) {
		rec := NewTrip(prefix + "stale")
		require.NoError(t, store.CreateTrip(ctx, rec))

		first := rec.Trip.Clone()
		first.Name = "first writer"
		require.NoError(t, store.SaveTrip(ctx, first, 1))

		second := rec.Trip.Clone()
		second.Name = "second writer"
		err := store.SaveTrip(ctx, second, 1)
		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		assert.Equal(t, int64(1), second.Version)

		got, err := store.GetTrip(ctx, rec.Trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "first writer", got.Trip.Name)
	})

	t.Run("SaveTrip returns ErrNotFound for unknown trip", func(t *testing.T) {
		doc := NewTrip(prefix + "ghost").Trip
		err := store.SaveTrip(ctx, doc, 1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("concurrent writers on one version", func(t *testing.T) {
		rec := NewTrip(prefix + "race")
		require.NoError(t, store.CreateTrip(ctx, rec))

		const writers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				doc := rec.Trip.Clone()
				if err := store.SaveTrip(ctx, doc, 1); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded, "exactly one writer should win")
		got, err := store.GetTrip(ctx, rec.Trip.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Trip.Version)
	})
}
