package hotspot

import (
	"github.com/crimemap/backend/internal/domain"
)

// Reduce applies one event to a state. It is pure and knows nothing about
// which records exist; see Apply for the snapshot-aware variant.
func Reduce(state domain.InteractionState, ev domain.Event) domain.InteractionState {
	switch ev.Type {
	case domain.EventHoverEnter:
		state.HoveredID = ev.ID
	case domain.EventHoverLeave:
		// a leave for an earlier target arriving after a re-hover is ignored
		if state.HoveredID == ev.ID {
			state.HoveredID = ""
		}
	case domain.EventClick:
		if state.SelectedID == ev.ID {
			state.SelectedID = ""
		} else {
			state.SelectedID = ev.ID
		}
	case domain.EventDismiss:
		state.SelectedID = ""
	}
	return state
}

// Apply reduces an event against the records of a snapshot.
// Hover on an unknown id is a no-op; a click on one clears the selection.
func Apply(state domain.InteractionState, ev domain.Event, snap domain.Snapshot) domain.InteractionState {
	switch ev.Type {
	case domain.EventHoverEnter:
		if !snap.Has(ev.ID) {
			return state
		}
	case domain.EventClick:
		if !snap.Has(ev.ID) {
			state.SelectedID = ""
			return state
		}
	}
	return Reduce(state, ev)
}

// Replay folds events from the initial state
func Replay(snap domain.Snapshot, events ...domain.Event) domain.InteractionState {
	var state domain.InteractionState
	for _, ev := range events {
		state = Apply(state, ev, snap)
	}
	return state
}

// Heal drops references to records that are no longer in the snapshot
func Heal(state domain.InteractionState, snap domain.Snapshot) domain.InteractionState {
	if state.HoveredID != "" && !snap.Has(state.HoveredID) {
		state.HoveredID = ""
	}
	if state.SelectedID != "" && !snap.Has(state.SelectedID) {
		state.SelectedID = ""
	}
	return state
}
