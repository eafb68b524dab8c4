package ingest

import "fmt"

// State is one step of the ingestion pipeline. States advance strictly in
// sequence; Failed is reachable from any state before Finalizing.
type State string

const (
	StateHashing          State = "hashing"
	StateResolving        State = "resolving"
	StateSuperseding      State = "superseding"
	StateCreatingBatch    State = "creating_batch"
	StateCreatingHeader   State = "creating_header"
	StateReconciling      State = "reconciling"
	StateWritingLineItems State = "writing_line_items"
	StateUpsertingTriage  State = "upserting_triage"
	StateUpdatingPrices   State = "updating_prices"
	StateFinalizing       State = "finalizing"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

// transitions is the full transition table. Keeping it explicit (rather
// than implied by call order) lets failure points be tested in isolation.
var transitions = map[State][]State{
	StateHashing:          {StateResolving, StateFailed},
	StateResolving:        {StateSuperseding, StateFailed},
	StateSuperseding:      {StateCreatingBatch, StateFailed},
	StateCreatingBatch:    {StateCreatingHeader, StateFailed},
	StateCreatingHeader:   {StateReconciling, StateFailed},
	StateReconciling:      {StateWritingLineItems, StateFailed},
	StateWritingLineItems: {StateUpsertingTriage, StateFailed},
	// Triage bookkeeping failures degrade to a warning; the machine may
	// only move forward from here.
	StateUpsertingTriage: {StateUpdatingPrices},
	StateUpdatingPrices:  {StateFinalizing, StateFailed},
	StateFinalizing:      {StateCompleted, StateFailed},
	StateCompleted:       nil,
	StateFailed:          nil,
}

// CanTransition reports whether moving from one pipeline state to another
// is legal.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal reports whether a state has no outgoing transitions.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// machine tracks the pipeline's current state and enforces the table.
type machine struct {
	current State
}

func newMachine() *machine {
	return &machine{current: StateHashing}
}

func (m *machine) advance(to State) error {
	if !CanTransition(m.current, to) {
		return fmt.Errorf("illegal pipeline transition %s -> %s", m.current, to)
	}

	m.current = to

	return nil
}
