package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("triage item not found")

// Status is the resolution state of a queued item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Item is an unresolved invoice row awaiting human matching. While pending,
// (organization, vendor, item code) is unique: re-ingesting the same code
// updates the row in place instead of duplicating it.
type Item struct {
	ID                 uuid.UUID
	OrganizationID     uuid.UUID
	VendorID           uuid.UUID
	ItemCode           string
	Description        string
	UnitPrice          decimal.Decimal
	UnitOfMeasure      string
	Status             Status
	OriginatingBatchID uuid.UUID
	ResolvedCatalogID  *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// UpsertParams carries one unmatched candidate into the queue.
type UpsertParams struct {
	OrganizationID     uuid.UUID
	VendorID           uuid.UUID
	ItemCode           string
	Description        string
	UnitPrice          decimal.Decimal
	UnitOfMeasure      string
	OriginatingBatchID uuid.UUID
}
