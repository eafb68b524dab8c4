// Package invoicefile parses structured vendor invoice files into candidate
// line items for the ingestion pipeline. It handles the CSV exports vendor
// portals produce: shifting charsets, localized decimal formats, and header
// rows that name the same column a dozen different ways.
package invoicefile

import (
	"io"

	"github.com/stockpot-app/stockpot/internal/ingest"
)

// Parser turns one structured file into candidate rows.
type Parser interface {
	Parse(r io.Reader) ([]ingest.CandidateItem, error)
}

// Service routes a file to the right parser. CSV is the only structured
// format vendors send today; scanned documents go through extraction
// upstream and never reach this package.
type Service struct {
	csv Parser
}

func NewService() *Service {
	return &Service{csv: NewCSVParser()}
}

func (s *Service) Parse(r io.Reader) ([]ingest.CandidateItem, error) {
	return s.csv.Parse(r)
}
