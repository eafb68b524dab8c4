package audit

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -source=emitter.go -destination=repository_mock.go -package=audit
type Repository interface {
	InsertEvent(ctx context.Context, event Event) error
}

// Emitter publishes events to the activity stream. Emission is
// fire-and-forget: failures are logged and swallowed so bookkeeping can
// never fail an import.
type Emitter struct {
	repo Repository
}

func NewEmitter(repo Repository) *Emitter {
	return &Emitter{repo: repo}
}

func (e *Emitter) Emit(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if event.Severity == "" {
		event.Severity = "info"
	}

	if err := e.repo.InsertEvent(ctx, event); err != nil {
		slog.Warn("audit event dropped",
			"kind", event.Kind,
			"organization_id", event.OrganizationID,
			"error", err,
		)
	}
}
