package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scenespeak/internal/db"
	"scenespeak/internal/model"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_history (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	image_url TEXT NOT NULL,
	description TEXT NOT NULL,
	location_label TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_history_user_created
	ON scan_history (user_id, created_at DESC);
`

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed history store and ensures
// the scan_history table exists.
func NewPostgresStore() (Store, error) {
	if db.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	if _, err := db.DB.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure scan_history schema: %w", err)
	}

	return &postgresStore{db: db.DB}, nil
}

// Append adds an entry to the user's history and returns its ID
func (s *postgresStore) Append(ctx context.Context, userID uuid.UUID, entry *model.HistoryEntry) (uuid.UUID, error) {
	query := `
		INSERT INTO scan_history (id, user_id, image_url, description, location_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	id := uuid.New()
	createdAt := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, query,
		id,
		userID,
		entry.ImageURL,
		entry.Description,
		entry.LocationLabel,
		createdAt,
	)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to append history entry: %w", err)
	}

	return id, nil
}

// ListRecent returns up to limit entries for a user, most recent first
func (s *postgresStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.HistoryEntry, error) {
	query := `
		SELECT id, user_id, image_url, description, location_label, created_at
		FROM scan_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ImageURL,
			&entry.Description,
			&entry.LocationLabel,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// Clear removes all entries for a user
func (s *postgresStore) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM scan_history WHERE user_id = $1`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear scan history: %w", err)
	}

	return nil
}
