package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAccessKey = errors.New("invalid access key")
	ErrMissingAccessKey = errors.New("access key required")
)

// accessKeyLength is the number of characters in a generated access key.
const accessKeyLength = 12

// NewTripID returns a short public trip identifier (8 hex characters).
func NewTripID() string {
	return uuid.NewString()[:8]
}

// NewAccessKey returns a random shared secret for a trip.
func NewAccessKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:accessKeyLength]
}

// HashAccessKey hashes an access key for storage.
func HashAccessKey(key string) (string, error) {
	if key == "" {
		return "", ErrMissingAccessKey
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access key: %w", err)
	}
	return string(hashed), nil
}

// CheckAccessKey compares key against a stored hash.
func CheckAccessKey(hash, key string) error {
	if key == "" {
		return ErrMissingAccessKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrInvalidAccessKey
	}
	return nil
}
