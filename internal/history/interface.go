package history

import (
	"context"
	"scenespeak/internal/model"

	"github.com/google/uuid"
)

// Store defines the keyed append-log used for per-user scan history.
// Implementations assign the entry ID and CreatedAt on append.
type Store interface {
	// Append adds an entry to the user's history and returns its ID
	Append(ctx context.Context, userID uuid.UUID, entry *model.HistoryEntry) (uuid.UUID, error)

	// ListRecent returns up to limit entries for a user, most recent first
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.HistoryEntry, error)

	// Clear removes all entries for a user
	Clear(ctx context.Context, userID uuid.UUID) error
}
