package invoicefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/ingest"
)

// Column aliases seen across vendor portal exports. Matching is
// case-insensitive on the trimmed header cell.
var (
	codeAliases     = []string{"code", "item code", "sku", "item no", "article"}
	descAliases     = []string{"description", "item description", "item", "product"}
	orderedAliases  = []string{"ordered", "qty ordered", "quantity ordered", "order qty"}
	receivedAliases = []string{"received", "qty received", "quantity received", "delivered"}
	qtyAliases      = []string{"qty", "quantity"}
	priceAliases    = []string{"unit price", "price", "unit cost", "cost"}
	unitAliases     = []string{"unit", "uom", "unit of measure", "pack"}
)

// CSVParser reads a delimited vendor invoice. The header row is located by
// scanning for a row that carries at least a description and a unit price
// column; preamble rows above it (vendor address blocks, totals) are
// skipped.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// colIndex maps canonical column names to their position in the row.
type colIndex map[string]int

func (p *CSVParser) Parse(r io.Reader) ([]ingest.CandidateItem, error) {
	utf8r, err := decodeToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		// Many vendor exports are semicolon-delimited. encoding/csv
		// cannot switch mid-stream, so reparse from scratch is not an
		// option here; the caller sends the raw bytes again.
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no invoice header row found: expected description and unit price columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// detectHeader scans for the first row carrying the minimum column set.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}

			for canonical, aliases := range map[string][]string{
				"code":     codeAliases,
				"desc":     descAliases,
				"ordered":  orderedAliases,
				"received": receivedAliases,
				"qty":      qtyAliases,
				"price":    priceAliases,
				"unit":     unitAliases,
			} {
				if _, taken := cols[canonical]; taken {
					continue
				}

				for _, alias := range aliases {
					if name == alias {
						cols[canonical] = i
						break
					}
				}
			}
		}

		_, hasDesc := cols["desc"]

		_, hasPrice := cols["price"]

		if hasDesc && hasPrice {
			return cols, rowIdx
		}
	}

	return nil, 0
}

// parseRows extracts candidates from the data rows below the header.
// headerRowNum is the 0-based header index, used for error positions.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]ingest.CandidateItem, error) {
	var candidates []ingest.CandidateItem

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		desc := cellValue(row, cols, "desc")
		if desc == "" {
			// Trailing blank or totals row.
			continue
		}

		price, err := parseAmount(cellValue(row, cols, "price"))
		if err != nil {
			return nil, fmt.Errorf("row %d: unit price: %w", rowNum, err)
		}

		ordered, received, err := parseQuantities(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		candidates = append(candidates, ingest.CandidateItem{
			ItemCode:         cellValue(row, cols, "code"),
			Description:      desc,
			QuantityOrdered:  ordered,
			QuantityReceived: received,
			UnitPrice:        price,
			UnitOfMeasure:    cellValue(row, cols, "unit"),
		})
	}

	return candidates, nil
}

// parseQuantities reads ordered/received, falling back to a single qty
// column standing in for both when the vendor tracks no delivery split.
func parseQuantities(row []string, cols colIndex) (ordered, received decimal.Decimal, err error) {
	if _, ok := cols["ordered"]; ok {
		ordered, err = parseAmount(cellValue(row, cols, "ordered"))
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("quantity ordered: %w", err)
		}

		received = ordered

		if _, ok := cols["received"]; ok {
			received, err = parseAmount(cellValue(row, cols, "received"))
			if err != nil {
				return decimal.Zero, decimal.Zero, fmt.Errorf("quantity received: %w", err)
			}
		}

		return ordered, received, nil
	}

	qty, err := parseAmount(cellValue(row, cols, "qty"))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("quantity: %w", err)
	}

	return qty, qty, nil
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseAmount accepts plain ("1234.56") and European ("1.234,56") decimal
// formats, plus currency prefixes some exports include.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$€£ ")

	if clean == "" {
		return decimal.Zero, nil
	}

	if strings.Contains(clean, ",") {
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			// Comma is the decimal separator.
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// Comma is the thousands separator.
			clean = strings.ReplaceAll(clean, ",", "")
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return d, nil
}
