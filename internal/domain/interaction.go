package domain

import "github.com/rotisserie/eris"

// InteractionState is the hover/selection state of one map session.
// Empty strings mean nothing is hovered or selected.
type InteractionState struct {
	HoveredID  string `json:"hovered_id,omitempty"`
	SelectedID string `json:"selected_id,omitempty"`
}

// EventType names a user interaction
type EventType string

const (
	EventHoverEnter EventType = "hover_enter"
	EventHoverLeave EventType = "hover_leave"
	EventClick      EventType = "click"
	EventDismiss    EventType = "dismiss"
)

// Event is a single interaction dispatched into a session
type Event struct {
	Type EventType `json:"type" yaml:"type"`
	ID   string    `json:"id,omitempty" yaml:"id,omitempty"`
}

func HoverEnter(id string) Event { return Event{Type: EventHoverEnter, ID: id} }
func HoverLeave(id string) Event { return Event{Type: EventHoverLeave, ID: id} }
func Click(id string) Event      { return Event{Type: EventClick, ID: id} }
func Dismiss() Event             { return Event{Type: EventDismiss} }

// Validate checks that the event type is known and that record-scoped events carry an id
func (e Event) Validate() error {
	switch e.Type {
	case EventHoverEnter, EventHoverLeave, EventClick:
		if e.ID == "" {
			return eris.Errorf("event %q requires a record id", e.Type)
		}
		return nil
	case EventDismiss:
		return nil
	default:
		return eris.Errorf("unknown event type %q", e.Type)
	}
}
