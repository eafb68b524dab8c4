package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stockpot-app/stockpot/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertEvent(ctx context.Context, event audit.Event) error {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("encoding event detail: %w", err)
	}

	query := `
		INSERT INTO activity_events (organization_id, user_id, kind, severity, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := s.db.ExecContext(ctx, query,
		event.OrganizationID,
		event.UserID,
		event.Kind,
		event.Severity,
		detail,
		event.OccurredAt,
	); err != nil {
		return fmt.Errorf("inserting activity event: %w", err)
	}

	return nil
}
