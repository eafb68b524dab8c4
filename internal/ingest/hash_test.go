package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpot-app/stockpot/internal/ingest"
)

func TestHashDocument(t *testing.T) {
	doc := []byte("invoice body")

	first, err := ingest.HashDocument(doc)
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex-encoded 256-bit digest

	second, err := ingest.HashDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := ingest.HashDocument([]byte("different body"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestHashDocument_Empty(t *testing.T) {
	_, err := ingest.HashDocument(nil)
	assert.Error(t, err)

	_, err = ingest.HashDocument([]byte{})
	assert.Error(t, err)
}
