// Package storage defines the persistence contracts for roll history.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/dice-engine/internal/core/dice"
)

// Entry is one persisted formula evaluation.
type Entry struct {
	ID         string        // Unique identifier
	Expression string        // Normalized formula text
	Value      float64       // Evaluated result
	Seed       int64         // Seed used for the roll, for replays
	Rolls      []dice.Record // Individual die outcomes in roll order
	CreatedAt  time.Time     // When the roll happened (UTC)
}

// Store persists evaluated rolls.
type Store interface {
	// SaveRoll inserts one history entry.
	SaveRoll(ctx context.Context, entry Entry) error
	// GetRoll returns the entry with the given id, or a NOT_FOUND domain
	// error when no such roll exists.
	GetRoll(ctx context.Context, id string) (Entry, error)
	// ListRolls returns the most recent entries, newest first. A
	// non-positive limit applies the store's default cap.
	ListRolls(ctx context.Context, limit int) ([]Entry, error)
	// Close releases the underlying resources.
	Close() error
}
