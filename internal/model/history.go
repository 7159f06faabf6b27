package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry represents one completed scan in a user's history. Entries
// are immutable once appended; deletion happens only through a full clear.
type HistoryEntry struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ImageURL      string    `json:"image_url"`
	Description   string    `json:"description"`
	LocationLabel string    `json:"location_label,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
