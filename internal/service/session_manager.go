package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = eris.New("session not found")

// SessionOptions configures new map sessions
type SessionOptions struct {
	Home        domain.LatLng
	Zoom        int
	IdleTimeout time.Duration
}

// SessionManager tracks mounted map sessions
type SessionManager struct {
	records *RecordService
	opts    SessionOptions
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	wgBg sync.WaitGroup // tracks background loops for graceful shutdown
}

// NewSessionManager creates a session manager backed by records
func NewSessionManager(records *RecordService, opts SessionOptions) *SessionManager {
	if opts.Zoom == 0 {
		opts.Zoom = domain.DefaultZoom
	}
	return &SessionManager{
		records:  records,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Mount starts a session on the current snapshot. If nothing was ever
// loaded it loads first; a failed load still mounts an empty map.
func (m *SessionManager) Mount(ctx context.Context) *Session {
	snap := m.records.Snapshot()
	if snap.Version == 0 {
		loaded, err := m.records.Load(ctx)
		if err != nil {
			zap.L().Error("initial record load failed, mounting empty map", zap.Error(err))
		}
		snap = loaded
	}

	sess := NewSession(uuid.NewString(), snap, NewFrameViewport(), m.opts.Home, m.opts.Zoom, m.now())

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	zap.L().Debug("session mounted", zap.String("session", sess.ID), zap.Uint64("snapshot", snap.Version))
	return sess
}

// Get looks up a mounted session
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, eris.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	return sess, nil
}

// Unmount discards a session and its interaction state
func (m *SessionManager) Unmount(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return eris.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	metrics.ActiveSessions.Set(float64(n))
	return nil
}

// Refresh reloads the records and hands the result to one session
func (m *SessionManager) Refresh(ctx context.Context, id string) (Frame, error) {
	sess, err := m.Get(id)
	if err != nil {
		return Frame{}, err
	}
	snap, err := m.records.Refresh(ctx)
	if err != nil {
		return sess.Frame(), err
	}
	sess.ReplaceSnapshot(snap)
	return sess.Frame(), nil
}

// Publish offers a snapshot to every session; older snapshots are ignored per session
func (m *SessionManager) Publish(snap domain.Snapshot) int {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	updated := 0
	for _, s := range sessions {
		if s.ReplaceSnapshot(snap) {
			updated++
		}
	}
	return updated
}

// Sweep unmounts sessions idle for longer than the idle timeout
func (m *SessionManager) Sweep(now time.Time) int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.IdleSince()) > m.opts.IdleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		metrics.ActiveSessions.Set(float64(n))
		zap.L().Info("idle sessions swept", zap.Int("removed", removed), zap.Int("active", n))
	}
	return removed
}

// Count returns the number of mounted sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start runs the idle sweeper and, when refreshEvery > 0, a periodic record
// reload published to all sessions. Both stop when ctx is done.
func (m *SessionManager) Start(ctx context.Context, sweepEvery, refreshEvery time.Duration) {
	if sweepEvery > 0 {
		m.wgBg.Add(1)
		go func() {
			defer m.wgBg.Done()
			ticker := time.NewTicker(sweepEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-ticker.C:
					m.Sweep(t)
				}
			}
		}()
	}

	if refreshEvery > 0 {
		m.wgBg.Add(1)
		go func() {
			defer m.wgBg.Done()
			ticker := time.NewTicker(refreshEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					snap, err := m.records.Load(ctx)
					if err != nil {
						zap.L().Warn("periodic record refresh failed", zap.Error(err))
						continue
					}
					m.Publish(snap)
				}
			}
		}()
	}
}

// WaitBackground blocks until the background loops have exited.
// Cancel the context passed to Start first.
func (m *SessionManager) WaitBackground() {
	m.wgBg.Wait()
}
