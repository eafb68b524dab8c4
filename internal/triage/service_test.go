package triage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpot-app/stockpot/internal/triage"
)

func TestService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	params := []triage.UpsertParams{
		{OrganizationID: uuid.New(), VendorID: uuid.New(), ItemCode: "A", UnitPrice: decimal.NewFromInt(3)},
		{OrganizationID: uuid.New(), VendorID: uuid.New(), ItemCode: "B", UnitPrice: decimal.NewFromInt(7)},
	}

	repo.EXPECT().UpsertPending(gomock.Any(), params[0]).Return(nil)
	repo.EXPECT().UpsertPending(gomock.Any(), params[1]).Return(nil)

	require.NoError(t, svc.Upsert(context.Background(), params))
}

func TestService_Upsert_StopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	params := []triage.UpsertParams{
		{ItemCode: "A"},
		{ItemCode: "B"},
	}

	repo.EXPECT().UpsertPending(gomock.Any(), params[0]).Return(errors.New("db down"))

	err := svc.Upsert(context.Background(), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"A"`)
}

func TestService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	id := uuid.New()
	catalogID := uuid.New()

	repo.EXPECT().GetItem(gomock.Any(), id).Return(&triage.Item{ID: id, Status: triage.StatusPending}, nil)
	repo.EXPECT().SetResolution(gomock.Any(), id, triage.StatusResolved, &catalogID).Return(nil)

	require.NoError(t, svc.Resolve(context.Background(), id, catalogID))
}

func TestService_Resolve_RejectsNonPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetItem(gomock.Any(), id).Return(&triage.Item{ID: id, Status: triage.StatusDismissed}, nil)

	err := svc.Resolve(context.Background(), id, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dismissed")
}

func TestService_Dismiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetItem(gomock.Any(), id).Return(&triage.Item{ID: id, Status: triage.StatusPending}, nil)
	repo.EXPECT().SetResolution(gomock.Any(), id, triage.StatusDismissed, nil).Return(nil)

	require.NoError(t, svc.Dismiss(context.Background(), id))
}

func TestService_Dismiss_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := triage.NewMockRepository(ctrl)
	svc := triage.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetItem(gomock.Any(), id).Return(nil, triage.ErrNotFound)

	err := svc.Dismiss(context.Background(), id)
	assert.ErrorIs(t, err, triage.ErrNotFound)
}
