package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockpot-app/stockpot/internal/ingest"
)

func TestCanTransition_HappyPath(t *testing.T) {
	sequence := []ingest.State{
		ingest.StateHashing,
		ingest.StateResolving,
		ingest.StateSuperseding,
		ingest.StateCreatingBatch,
		ingest.StateCreatingHeader,
		ingest.StateReconciling,
		ingest.StateWritingLineItems,
		ingest.StateUpsertingTriage,
		ingest.StateUpdatingPrices,
		ingest.StateFinalizing,
		ingest.StateCompleted,
	}

	for i := 0; i < len(sequence)-1; i++ {
		assert.True(t, ingest.CanTransition(sequence[i], sequence[i+1]),
			"%s -> %s should be legal", sequence[i], sequence[i+1])
	}
}

func TestCanTransition_FailureReachability(t *testing.T) {
	canFail := []ingest.State{
		ingest.StateHashing,
		ingest.StateResolving,
		ingest.StateSuperseding,
		ingest.StateCreatingBatch,
		ingest.StateCreatingHeader,
		ingest.StateReconciling,
		ingest.StateWritingLineItems,
		ingest.StateUpdatingPrices,
		ingest.StateFinalizing,
	}

	for _, s := range canFail {
		assert.True(t, ingest.CanTransition(s, ingest.StateFailed),
			"%s should be able to fail", s)
	}

	// Triage bookkeeping failures degrade; they never fail the pipeline.
	assert.False(t, ingest.CanTransition(ingest.StateUpsertingTriage, ingest.StateFailed))
}

func TestCanTransition_NoSkipping(t *testing.T) {
	assert.False(t, ingest.CanTransition(ingest.StateHashing, ingest.StateFinalizing))
	assert.False(t, ingest.CanTransition(ingest.StateReconciling, ingest.StateUpdatingPrices))
	assert.False(t, ingest.CanTransition(ingest.StateCompleted, ingest.StateFailed))
	assert.False(t, ingest.CanTransition(ingest.StateFailed, ingest.StateHashing))
}

func TestState_Terminal(t *testing.T) {
	assert.True(t, ingest.StateCompleted.Terminal())
	assert.True(t, ingest.StateFailed.Terminal())
	assert.False(t, ingest.StateHashing.Terminal())
	assert.False(t, ingest.StateFinalizing.Terminal())
}
