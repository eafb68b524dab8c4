package triage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=triage
type Repository interface {
	UpsertPending(ctx context.Context, params UpsertParams) error
	ListPending(ctx context.Context, organizationID uuid.UUID) ([]*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	SetResolution(ctx context.Context, id uuid.UUID, status Status, catalogItemID *uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert queues unmatched candidates for human matching. Each row is keyed
// by (organization, vendor, item code) while pending, so repeats update
// price and description in place.
func (s *Service) Upsert(ctx context.Context, params []UpsertParams) error {
	for _, p := range params {
		if err := s.repo.UpsertPending(ctx, p); err != nil {
			return fmt.Errorf("upserting triage item %q: %w", p.ItemCode, err)
		}
	}

	return nil
}

func (s *Service) ListPending(ctx context.Context, organizationID uuid.UUID) ([]*Item, error) {
	return s.repo.ListPending(ctx, organizationID)
}

// Resolve links a pending item to the catalog entry a human picked.
func (s *Service) Resolve(ctx context.Context, id, catalogItemID uuid.UUID) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if item.Status != StatusPending {
		return fmt.Errorf("triage item %s is already %s", id, item.Status)
	}

	return s.repo.SetResolution(ctx, id, StatusResolved, &catalogItemID)
}

// Dismiss drops a pending item without matching it.
func (s *Service) Dismiss(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if item.Status != StatusPending {
		return fmt.Errorf("triage item %s is already %s", id, item.Status)
	}

	return s.repo.SetResolution(ctx, id, StatusDismissed, nil)
}
