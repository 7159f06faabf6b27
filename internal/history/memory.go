package history

import (
	"context"
	"sync"
	"time"

	"scenespeak/internal/model"

	"github.com/google/uuid"
)

// memoryStore keeps history in process memory. Used when DATABASE_URL is
// not configured; entries do not survive a restart.
type memoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]model.HistoryEntry
}

// NewMemoryStore creates an in-memory history store.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[uuid.UUID][]model.HistoryEntry),
	}
}

// Append adds an entry to the user's history and returns its ID
func (s *memoryStore) Append(ctx context.Context, userID uuid.UUID, entry *model.HistoryEntry) (uuid.UUID, error) {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	stored.ID = id
	stored.UserID = userID
	stored.CreatedAt = time.Now().UTC()

	s.entries[userID] = append(s.entries[userID], stored)

	return id, nil
}

// ListRecent returns up to limit entries for a user, most recent first
func (s *memoryStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.entries[userID]

	if limit > len(all) {
		limit = len(all)
	}

	// Copies, newest first, to avoid handing out internal state
	result := make([]model.HistoryEntry, 0, limit)
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}

	return result, nil
}

// Clear removes all entries for a user
func (s *memoryStore) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
