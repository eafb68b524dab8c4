package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashDocument computes the content digest used for audit verification.
// Identical bytes always produce the identical digest. Hashing is a
// prerequisite gate: callers abort the whole ingestion if it fails.
func HashDocument(doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", fmt.Errorf("hash document: empty document")
	}

	sum := sha256.Sum256(doc)

	return hex.EncodeToString(sum[:]), nil
}
