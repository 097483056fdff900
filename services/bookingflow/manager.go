package bookingflow

import "sync"

// Manager hands out one Flow per chat session, creating it on first
// use.
type Manager struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

func NewManager() *Manager {
	return &Manager{flows: make(map[string]*Flow)}
}

// Flow returns the session's flow, creating a fresh Browsing flow if
// none exists yet.
func (m *Manager) Flow(sessionID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[sessionID]
	if !ok {
		f = NewFlow()
		m.flows[sessionID] = f
	}
	return f
}

// Drop discards a session's flow.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, sessionID)
}
