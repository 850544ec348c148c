package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/metrics"
)

func newTestSession(snap domain.Snapshot) (*Session, *FrameViewport) {
	vp := NewFrameViewport()
	return NewSession("s1", snap, vp, domain.NewYorkCenter, domain.DefaultZoom, time.Now()), vp
}

func TestSession_MountDrawsOverlays(t *testing.T) {
	sess, vp := newTestSession(fixtureSnapshot(1))

	assert.Len(t, vp.Overlays(), 3)
	f := sess.Frame()
	assert.Equal(t, "s1", f.SessionID)
	assert.Equal(t, uint64(1), f.SnapshotVersion)
	assert.Nil(t, f.Panel)
	assert.Equal(t, domain.NewYorkCenter, f.Viewport.Center)
	assert.Equal(t, 13, f.Viewport.Zoom)
	assert.True(t, f.Viewport.OverlaysVisible)
	require.NotNil(t, f.Viewport.FitCenter)
}

func TestSession_ClickShowsPanel(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(1))

	f, err := sess.Dispatch(domain.Click("3"), time.Now())
	require.NoError(t, err)
	require.NotNil(t, f.Panel)
	assert.Equal(t, "40.7829, -73.9654", f.Panel.CoordinatesFormatted)
	assert.Equal(t, "3", f.State.SelectedID)

	f, err = sess.Dispatch(f.Panel.DismissAction, time.Now())
	require.NoError(t, err)
	assert.Nil(t, f.Panel)
	assert.Empty(t, f.State.SelectedID)
}

func TestSession_HoverRedrawsViewport(t *testing.T) {
	sess, vp := newTestSession(fixtureSnapshot(1))

	_, err := sess.Dispatch(domain.HoverEnter("2"), time.Now())
	require.NoError(t, err)

	var hovered []string
	for _, o := range vp.Overlays() {
		if o.Hovered {
			hovered = append(hovered, o.RecordID)
			assert.Equal(t, 0.5, o.Encoding.FillOpacity)
		}
	}
	assert.Equal(t, []string{"2"}, hovered)
}

func TestSession_InvalidEvent(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(1))

	_, err := sess.Dispatch(domain.Event{Type: "wiggle"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = sess.Dispatch(domain.Event{Type: domain.EventClick}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestSession_ReplaceSnapshotHealsSelection(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(1))
	_, err := sess.Dispatch(domain.Click("3"), time.Now())
	require.NoError(t, err)
	_, err = sess.Dispatch(domain.HoverEnter("1"), time.Now())
	require.NoError(t, err)

	assert.True(t, sess.ReplaceSnapshot(snapshotOf(2, record("1", 0.8), record("2", 0.6))))

	f := sess.Frame()
	assert.Nil(t, f.Panel)
	assert.Equal(t, domain.InteractionState{HoveredID: "1"}, f.State)
	assert.Len(t, f.Overlays, 2)
}

func TestSession_ReplaceSnapshotIgnoresOlder(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(5))
	_, err := sess.Dispatch(domain.Click("3"), time.Now())
	require.NoError(t, err)

	assert.False(t, sess.ReplaceSnapshot(snapshotOf(4)))
	assert.False(t, sess.ReplaceSnapshot(fixtureSnapshot(5)))
	assert.Equal(t, "3", sess.State().SelectedID)
}

func TestSession_StaleClickClearsSelection(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(1))
	_, err := sess.Dispatch(domain.Click("1"), time.Now())
	require.NoError(t, err)

	f, err := sess.Dispatch(domain.Click("99"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, f.State.SelectedID)
	assert.Nil(t, f.Panel)
}

func TestSession_StaleReferenceCounting(t *testing.T) {
	snap := fixtureSnapshot(1)
	tests := []struct {
		name  string
		event domain.Event
		stale bool
	}{
		{"hover enter on missing id", domain.HoverEnter("99"), true},
		{"click on missing id", domain.Click("99"), true},
		{"hover leave on missing id", domain.HoverLeave("99"), false},
		{"hover enter on known id", domain.HoverEnter("1"), false},
		{"click on known id", domain.Click("2"), false},
		{"dismiss", domain.Dismiss(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stale, isStaleReference(tt.event, snap))
		})
	}

	sess, _ := newTestSession(snap)
	before := testutil.ToFloat64(metrics.StaleReferencesTotal)
	_, err := sess.Dispatch(domain.HoverLeave("99"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(metrics.StaleReferencesTotal))

	_, err = sess.Dispatch(domain.HoverEnter("99"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StaleReferencesTotal))
}

func TestSession_ViewportControls(t *testing.T) {
	sess, _ := newTestSession(fixtureSnapshot(1))

	f := sess.ToggleOverlays(time.Now())
	assert.False(t, f.Viewport.OverlaysVisible)
	f = sess.ToggleOverlays(time.Now())
	assert.True(t, f.Viewport.OverlaysVisible)

	f = sess.Recenter(time.Now())
	assert.Equal(t, 1, f.Viewport.Recenters)
	assert.Equal(t, domain.NewYorkCenter, f.Viewport.Center)
}
