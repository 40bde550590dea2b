// Package redis provides a Redis-backed implementation of the storage.TripStore
// interface. Each trip is one JSON value under "trip:{id}".
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
)

// Ensure RedisStore implements storage.TripStore
var _ storage.TripStore = (*RedisStore)(nil)

const keyPrefix = "trip:"

// RedisStore implements storage.TripStore using Redis.
type RedisStore struct {
	client *goredis.Client
}

type record struct {
	AccessKeyHash string               `json:"accessKeyHash"`
	CreatedAt     int64                `json:"createdAt"`
	UpdatedAt     int64                `json:"updatedAt"`
	Trip          *models.TripDocument `json:"trip"`
}

// New connects to Redis at addr and verifies the connection.
func New(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func tripKey(id string) string {
	return keyPrefix + id
}

// CreateTrip stores a new trip unless the key already exists.
func (s *RedisStore) CreateTrip(ctx context.Context, rec *storage.TripRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	rec.UpdatedAt = rec.CreatedAt
	rec.Trip.Version = 1

	data, err := json.Marshal(record{
		AccessKeyHash: rec.AccessKeyHash,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		Trip:          rec.Trip,
	})
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	ok, err := s.client.SetNX(ctx, tripKey(rec.Trip.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, rec.Trip.ID)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *RedisStore) GetTrip(ctx context.Context, tripID string) (*storage.TripRecord, error) {
	raw, err := s.client.Get(ctx, tripKey(tripID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return decode(tripID, raw)
}

// SaveTrip replaces the trip inside a WATCH transaction so a concurrent save
// between the version check and the write aborts this one.
func (s *RedisStore) SaveTrip(ctx context.Context, doc *models.TripDocument, expectedVersion int64) error {
	key := tripKey(doc.ID)

	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, doc.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get trip: %w", err)
		}

		current, err := decode(doc.ID, raw)
		if err != nil {
			return err
		}
		if current.Trip.Version != expectedVersion {
			return fmt.Errorf("%w: %s at version %d", storage.ErrVersionConflict, doc.ID, expectedVersion)
		}

		next := *doc
		next.Version = expectedVersion + 1
		data, err := json.Marshal(record{
			AccessKeyHash: current.AccessKeyHash,
			CreatedAt:     current.CreatedAt,
			UpdatedAt:     time.Now().Unix(),
			Trip:          &next,
		})
		if err != nil {
			return fmt.Errorf("failed to encode trip: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, goredis.TxFailedErr) {
		return fmt.Errorf("%w: %s at version %d", storage.ErrVersionConflict, doc.ID, expectedVersion)
	}
	if err != nil {
		return err
	}

	doc.Version = expectedVersion + 1
	return nil
}

func decode(tripID string, raw []byte) (*storage.TripRecord, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", tripID, err)
	}
	if r.Trip == nil {
		return nil, fmt.Errorf("failed to decode trip %s: empty document", tripID)
	}
	return &storage.TripRecord{
		Trip:          r.Trip,
		AccessKeyHash: r.AccessKeyHash,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}
