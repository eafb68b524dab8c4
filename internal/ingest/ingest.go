package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("import batch not found")

// SourceKind identifies how the vendor document entered the system. It is
// decided once at ingestion time and carried through, never re-derived from
// the file name downstream.
type SourceKind string

const (
	SourceStructuredFile  SourceKind = "structured_file"
	SourceScannedDocument SourceKind = "scanned_document"
)

// BatchStatus is the lifecycle state of an import batch.
type BatchStatus string

const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
	BatchSuperseded BatchStatus = "superseded"
)

// HeaderStatus is the lifecycle state of an invoice header.
type HeaderStatus string

const (
	HeaderPending   HeaderStatus = "pending"
	HeaderCompleted HeaderStatus = "completed"
)

// DiscrepancyType classifies ordered-vs-received mismatches on a line item.
type DiscrepancyType string

const (
	DiscrepancyNone         DiscrepancyType = "none"
	DiscrepancyShort        DiscrepancyType = "short"
	DiscrepancyOver         DiscrepancyType = "over"
	DiscrepancySubstitution DiscrepancyType = "substitution"
)

// Batch is one ingestion attempt of a vendor document. For a given
// (organization, vendor, match key) at most one batch is in a
// non-superseded status at any time.
type Batch struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	VendorID       uuid.UUID
	SourceKind     SourceKind
	FileName       string
	FileRef        string
	DocumentHash   string
	InvoiceNumber  string
	InvoiceDate    time.Time
	MatchKey       string
	Version        int
	SupersedesID   *uuid.UUID
	SupersededAt   *time.Time
	SupersededBy   *uuid.UUID
	Status         BatchStatus
	ItemCount      int
	PriceChanges   int
	NewItemCount   int
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// InvoiceHeader is the financial document derived from a batch. Exactly one
// header exists per batch.
type InvoiceHeader struct {
	ID            uuid.UUID
	ImportBatchID uuid.UUID
	VendorID      uuid.UUID
	InvoiceDate   time.Time
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	DocumentHash  string
	Status        HeaderStatus
	CreatedAt     time.Time
}

// LineItem is a reconciled entry linked to a catalog item. Candidates
// without a catalog reference never become line items; they go to triage.
type LineItem struct {
	ID               uuid.UUID
	InvoiceHeaderID  uuid.UUID
	CatalogItemID    uuid.UUID
	VendorCode       string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal
	MatchConfidence  float64
	Discrepancy      DiscrepancyType
	Notes            string
	CreatedAt        time.Time
}

// CandidateItem is one extracted row from a vendor document, before
// reconciliation. Extraction (human or OCR-assisted) happens upstream.
type CandidateItem struct {
	ItemCode         string
	Description      string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitPrice        decimal.Decimal
	UnitOfMeasure    string
	MatchedCatalogID *uuid.UUID
	MatchConfidence  float64
	DiscrepancyNotes string
}

// Request describes one document to run through the pipeline.
type Request struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	VendorID       uuid.UUID
	VendorName     string
	SourceKind     SourceKind
	DocumentBytes  []byte
	FileName       string
	FileRef        string
	InvoiceNumber  string
	InvoiceDate    time.Time
	Candidates     []CandidateItem
}

// Result summarizes a pipeline run for the caller. Unmatched items routed
// to triage count as success, not partial failure.
type Result struct {
	ImportBatchID     uuid.UUID
	Version           int
	IsCorrection      bool
	MatchedCount      int
	UnmatchedCount    int
	PriceChangeCount  int
	ShortageItemCount int
	ShortageValue     decimal.Decimal
	Status            BatchStatus
	ErrorMessage      string
}

// ValidationError is a policy rejection raised before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate rejects requests the pipeline must not start on.
func (r *Request) Validate() error {
	if r.OrganizationID == uuid.Nil {
		return &ValidationError{Field: "organizationId", Reason: "required"}
	}

	if r.VendorID == uuid.Nil {
		return &ValidationError{Field: "vendorId", Reason: "required"}
	}

	if r.FileName == "" {
		return &ValidationError{Field: "fileName", Reason: "required"}
	}

	if len(r.DocumentBytes) == 0 {
		return &ValidationError{Field: "documentBytes", Reason: "empty document"}
	}

	switch r.SourceKind {
	case SourceStructuredFile, SourceScannedDocument:
	default:
		return &ValidationError{Field: "sourceKind", Reason: "unknown kind"}
	}

	return nil
}

// BatchStats are the aggregates recomputed at finalization from what was
// actually committed, never from the pre-reconciliation candidate count.
type BatchStats struct {
	ItemCount    int
	PriceChanges int
	NewItemCount int
	TotalAmount  decimal.Decimal
}

// ListFilter narrows batch listings.
type ListFilter struct {
	VendorID *uuid.UUID
}
