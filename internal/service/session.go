package service

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/metrics"
)

// ErrInvalidEvent is returned for malformed interaction events
var ErrInvalidEvent = eris.New("invalid event")

// StatefulViewport is a viewport that can report what it shows
type StatefulViewport interface {
	domain.Viewport
	State() domain.ViewportState
}

// Frame is everything the shell needs to render a map session
type Frame struct {
	SessionID       string                  `json:"session_id"`
	SnapshotVersion uint64                  `json:"snapshot_version"`
	State           domain.InteractionState `json:"state"`
	Overlays        []domain.Overlay        `json:"overlays"`
	Panel           *domain.PanelView       `json:"panel"`
	Viewport        domain.ViewportState    `json:"viewport"`
}

// Session is one mounted map view. All transitions go through its mutex,
// so events on a session are applied one at a time.
type Session struct {
	ID string

	mu         sync.Mutex
	snap       domain.Snapshot
	state      domain.InteractionState
	viewport   StatefulViewport
	center     domain.LatLng
	zoom       int
	lastActive time.Time
}

// NewSession mounts a session on snap and draws the initial overlays
func NewSession(id string, snap domain.Snapshot, vp StatefulViewport, center domain.LatLng, zoom int, now time.Time) *Session {
	s := &Session{
		ID:         id,
		snap:       snap,
		viewport:   vp,
		center:     center,
		zoom:       zoom,
		lastActive: now,
	}
	s.redraw()
	return s
}

// Dispatch applies one interaction event and returns the resulting frame
func (s *Session) Dispatch(ev domain.Event, now time.Time) (Frame, error) {
	if err := ev.Validate(); err != nil {
		return Frame{}, eris.Wrap(ErrInvalidEvent, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	metrics.EventsTotal.WithLabelValues(string(ev.Type)).Inc()
	if isStaleReference(ev, s.snap) {
		metrics.StaleReferencesTotal.Inc()
	}

	next := hotspot.Apply(s.state, ev, s.snap)
	if next != s.state {
		s.state = next
		s.redraw()
	}
	return s.frameLocked(), nil
}

// isStaleReference reports a hover or click naming a record the snapshot lacks
func isStaleReference(ev domain.Event, snap domain.Snapshot) bool {
	switch ev.Type {
	case domain.EventHoverEnter, domain.EventClick:
		return !snap.Has(ev.ID)
	}
	return false
}

// Frame returns the current frame
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// State returns the current interaction state
func (s *Session) State() domain.InteractionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ReplaceSnapshot swaps in a newer snapshot and drops references to records
// that disappeared. Older or equal versions are ignored.
func (s *Session) ReplaceSnapshot(snap domain.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version <= s.snap.Version {
		return false
	}
	s.snap = snap
	healed := hotspot.Heal(s.state, snap)
	if healed.SelectedID != s.state.SelectedID {
		metrics.StaleReferencesTotal.Inc()
	}
	s.state = healed
	s.redraw()
	return true
}

// Recenter asks the viewport to return to its home position
func (s *Session) Recenter(now time.Time) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
	s.viewport.Recenter()
	return s.frameLocked()
}

// ToggleOverlays asks the viewport to show or hide the hotspot layer
func (s *Session) ToggleOverlays(now time.Time) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
	s.viewport.ToggleOverlayVisibility()
	return s.frameLocked()
}

// IdleSince reports when the session was last used
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) redraw() {
	s.viewport.Draw(s.center, s.zoom, hotspot.Render(s.snap, s.state))
}

func (s *Session) frameLocked() Frame {
	var panel *domain.PanelView
	if view, ok := hotspot.Present(s.snap, s.state.SelectedID); ok {
		panel = &view
	} else if s.state.SelectedID != "" {
		// selected record vanished: clear the selection
		metrics.StaleReferencesTotal.Inc()
		s.state.SelectedID = ""
		s.redraw()
	}

	vs := s.viewport.State()
	if c, ok := hotspot.FitCenter(s.snap); ok {
		vs.FitCenter = &c
	}

	return Frame{
		SessionID:       s.ID,
		SnapshotVersion: s.snap.Version,
		State:           s.state,
		Overlays:        hotspot.Render(s.snap, s.state),
		Panel:           panel,
		Viewport:        vs,
	}
}
