package service

import (
	"sync"

	"github.com/crimemap/backend/internal/domain"
)

// FrameViewport is a server-side domain.Viewport that remembers what was drawn
// so the shell can fetch it. The first Draw fixes the home position; after that
// the viewport owns its center and zoom and Recenter returns to home.
type FrameViewport struct {
	mu       sync.Mutex
	home     domain.LatLng
	homeZoom int
	drawn    bool
	state    domain.ViewportState
	overlays []domain.Overlay
}

// NewFrameViewport creates an empty viewport with overlays visible
func NewFrameViewport() *FrameViewport {
	return &FrameViewport{state: domain.ViewportState{OverlaysVisible: true}}
}

// Draw replaces the overlay list
func (v *FrameViewport) Draw(center domain.LatLng, zoom int, overlays []domain.Overlay) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.drawn {
		v.home, v.homeZoom = center, zoom
		v.state.Center, v.state.Zoom = center, zoom
		v.drawn = true
	}
	v.overlays = overlays
}

// Recenter moves the view back to the home position
func (v *FrameViewport) Recenter() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Center, v.state.Zoom = v.home, v.homeZoom
	v.state.Recenters++
}

// ToggleOverlayVisibility shows or hides the hotspot layer
func (v *FrameViewport) ToggleOverlayVisibility() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.OverlaysVisible = !v.state.OverlaysVisible
}

// State returns the current viewport state
func (v *FrameViewport) State() domain.ViewportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Overlays returns the last drawn overlays
func (v *FrameViewport) Overlays() []domain.Overlay {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlays
}
