package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MatchKey returns the versioning key for a document. Invoice-number
// matching is preferred because the number is vendor-authoritative; the
// file name is the fallback for scanned receipts that carry no
// machine-readable number.
func MatchKey(invoiceNumber, fileName string) string {
	if key := strings.TrimSpace(invoiceNumber); key != "" {
		return key
	}

	return fileName
}

// Resolution is the version placement of a new document relative to the
// batches already recorded for its match key.
type Resolution struct {
	MatchKey     string
	Prior        []*Batch
	NextVersion  int
	SupersedesID *uuid.UUID
}

// ResolveVersion computes the next version number for a match key given
// every prior batch still in a non-superseded status. More than one prior
// batch means earlier supersessions raced or failed; all of them are listed
// so the new batch can supersede the lot, with the link pointing at the
// highest-versioned one.
func ResolveVersion(matchKey string, prior []*Batch) Resolution {
	res := Resolution{
		MatchKey:    matchKey,
		Prior:       prior,
		NextVersion: 1,
	}

	var latest *Batch

	for _, b := range prior {
		if b.Version >= res.NextVersion {
			res.NextVersion = b.Version + 1
		}

		if latest == nil || b.Version > latest.Version {
			latest = b
		}
	}

	if latest != nil {
		id := latest.ID
		res.SupersedesID = &id
	}

	return res
}

// SynthesizeReference builds a stable display reference for documents that
// carry no invoice number, so UI lists never show a blank. It is derived
// from the document digest and never participates in version matching.
func SynthesizeReference(documentHash string, invoiceDate time.Time) string {
	short := documentHash
	if len(short) > 8 {
		short = short[:8]
	}

	return fmt.Sprintf("DOC-%s-%s", invoiceDate.Format("20060102"), strings.ToUpper(short))
}
