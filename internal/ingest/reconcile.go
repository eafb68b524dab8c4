package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReconcileResult splits candidates into committed-to-be line items and
// triage-bound leftovers, with the delivery shortage totals already summed.
type ReconcileResult struct {
	Matched       []*LineItem
	Unmatched     []CandidateItem
	ShortageItems int
	ShortageValue decimal.Decimal
}

// Reconcile partitions candidate rows by whether upstream matching resolved
// them to a catalog item. Matched rows become line items with their
// delivery discrepancy classified; unmatched rows are returned for triage
// and never produce a line item. Rows are never dropped: a candidate with a
// blank vendor code gets a placeholder code so it still has a usable triage
// key.
func Reconcile(candidates []CandidateItem, now time.Time) ReconcileResult {
	var res ReconcileResult

	for i, c := range candidates {
		if c.MatchedCatalogID == nil {
			if strings.TrimSpace(c.ItemCode) == "" {
				c.ItemCode = placeholderCode(now, i)
			}

			res.Unmatched = append(res.Unmatched, c)

			continue
		}

		item := &LineItem{
			CatalogItemID:    *c.MatchedCatalogID,
			VendorCode:       c.ItemCode,
			QuantityOrdered:  c.QuantityOrdered,
			QuantityReceived: c.QuantityReceived,
			UnitPrice:        c.UnitPrice,
			TotalPrice:       c.QuantityReceived.Mul(c.UnitPrice),
			MatchConfidence:  c.MatchConfidence,
			Discrepancy:      classifyDiscrepancy(c.QuantityOrdered, c.QuantityReceived),
			Notes:            c.DiscrepancyNotes,
		}

		if item.Discrepancy == DiscrepancyShort {
			res.ShortageItems++

			shortage := c.QuantityOrdered.Sub(c.QuantityReceived).Mul(c.UnitPrice)
			res.ShortageValue = res.ShortageValue.Add(shortage)
		}

		res.Matched = append(res.Matched, item)
	}

	return res
}

func classifyDiscrepancy(ordered, received decimal.Decimal) DiscrepancyType {
	switch {
	case received.LessThan(ordered):
		return DiscrepancyShort
	case received.GreaterThan(ordered):
		return DiscrepancyOver
	default:
		return DiscrepancyNone
	}
}

// placeholderCode gives a code-less candidate a unique triage key instead
// of silently dropping the row.
func placeholderCode(now time.Time, idx int) string {
	return fmt.Sprintf("UNCODED-%d-%d", now.UnixMilli(), idx)
}
