package audit

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the activity-stream event type.
type Kind string

const (
	KindVersionCreated      Kind = "import_version_created"
	KindInvoiceImported     Kind = "invoice_imported"
	KindPriceChange         Kind = "price_change_detected"
	KindDiscrepancyRecorded Kind = "invoice_discrepancy_recorded"
)

// Event is one activity-stream entry. The detail payload must be enough to
// reconstruct what happened without querying the primary tables.
type Event struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Kind           Kind
	Severity       string
	Detail         map[string]any
	OccurredAt     time.Time
}
