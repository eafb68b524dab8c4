package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("catalog item not found")

// Item represents a known ingredient in the catalog.
type Item struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	VendorCode     string
	UnitOfMeasure  string
	CurrentPrice   decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// PriceRecord is one entry in the append-only price ledger. Rows are never
// updated or deleted once written.
type PriceRecord struct {
	ID            uuid.UUID
	CatalogItemID uuid.UUID
	VendorID      uuid.UUID
	Price         decimal.Decimal
	PreviousPrice *decimal.Decimal // nil for the item's first record
	EffectiveDate time.Time
	SourceKind    string
	LineItemID    *uuid.UUID
	ImportBatchID *uuid.UUID
	CreatedAt     time.Time
}

// Severity of a significant price movement, used by audit reporting.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// PriceChange reports the outcome of applying one price to a catalog item.
type PriceChange struct {
	CatalogItemID uuid.UUID
	Previous      *decimal.Decimal
	New           decimal.Decimal
	Changed       bool
	Significant   bool
	Severity      Severity
	PercentChange decimal.Decimal
}

var (
	// priceEpsilon absorbs scanning noise: differences at or below it do
	// not count as a price change.
	priceEpsilon = decimal.NewFromFloat(0.001)

	// Significance requires both a relative and an absolute move. Tiny
	// absolute changes on cheap items otherwise produce huge percentages.
	significantPct = decimal.NewFromInt(5)
	warningPct     = decimal.NewFromInt(15)
	significantAbs = decimal.NewFromFloat(0.01)
)

// classify fills the Changed/Significant/Severity/PercentChange fields from
// the previous and new price.
func (c *PriceChange) classify() {
	c.Severity = SeverityInfo

	if c.Previous == nil {
		// First sighting of this item: no change to report.
		return
	}

	diff := c.New.Sub(*c.Previous).Abs()
	c.Changed = diff.GreaterThan(priceEpsilon)

	if !c.Changed || c.Previous.IsZero() {
		return
	}

	c.PercentChange = diff.Div(*c.Previous).Mul(decimal.NewFromInt(100))

	if c.PercentChange.GreaterThan(significantPct) && diff.GreaterThan(significantAbs) {
		c.Significant = true
	}

	if c.Significant && c.PercentChange.GreaterThan(warningPct) {
		c.Severity = SeverityWarning
	}
}

// HistoryFilter narrows price-history lookups.
type HistoryFilter struct {
	From *time.Time
	To   *time.Time
}
