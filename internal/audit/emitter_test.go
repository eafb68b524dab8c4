package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stockpot-app/stockpot/internal/audit"
)

func TestEmitter_FillsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	emitter := audit.NewEmitter(repo)

	var captured audit.Event
	repo.EXPECT().
		InsertEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			captured = event
			return nil
		})

	emitter.Emit(context.Background(), audit.Event{
		OrganizationID: uuid.New(),
		Kind:           audit.KindInvoiceImported,
	})

	assert.Equal(t, "info", captured.Severity)
	assert.WithinDuration(t, time.Now().UTC(), captured.OccurredAt, time.Minute)
}

func TestEmitter_KeepsExplicitFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	emitter := audit.NewEmitter(repo)

	occurred := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	var captured audit.Event
	repo.EXPECT().
		InsertEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			captured = event
			return nil
		})

	emitter.Emit(context.Background(), audit.Event{
		Kind:       audit.KindPriceChange,
		Severity:   "warning",
		OccurredAt: occurred,
	})

	assert.Equal(t, "warning", captured.Severity)
	assert.Equal(t, occurred, captured.OccurredAt)
}

func TestEmitter_SwallowsRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	emitter := audit.NewEmitter(repo)

	repo.EXPECT().
		InsertEvent(gomock.Any(), gomock.Any()).
		Return(errors.New("stream unavailable"))

	// Must not panic or surface the error.
	emitter.Emit(context.Background(), audit.Event{Kind: audit.KindVersionCreated})
}
