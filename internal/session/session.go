// Package session holds the dataset a dashboard user is currently exploring.
package session

import (
	"sync"

	"gobi/domain/core"
	"gobi/domain/dataset"
)

// Session is the per-process exploration context. The base dataset is only replaced by a
// new upload; a filtered view supplements it without ever replacing it.
type Session struct {
	mu         sync.RWMutex
	id         core.SessionID
	current    *dataset.Dataset
	filtered   *dataset.Dataset
	loadedAt   core.Timestamp
	lastExport string
}

// New creates an empty session
func New() *Session {
	return &Session{id: core.NewSessionID()}
}

// ID returns the session identifier
func (s *Session) ID() core.SessionID {
	return s.id
}

// Current returns the loaded dataset, nil before the first upload
func (s *Session) Current() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadedAt returns when the current dataset was loaded
func (s *Session) LoadedAt() core.Timestamp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Replace installs a newly loaded dataset and drops the filtered view
func (s *Session) Replace(d *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = d
	s.filtered = nil
	s.loadedAt = core.Now()
}

// SetFiltered stores the latest filtered view of the current dataset
func (s *Session) SetFiltered(d *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = d
}

// Filtered returns the latest filtered view, nil if no filter was applied
func (s *Session) Filtered() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// View returns the filtered view if there is one, otherwise the current dataset
func (s *Session) View() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filtered != nil {
		return s.filtered
	}
	return s.current
}

// SwapExport records the path of the newest export and returns the one it replaces
func (s *Session) SwapExport(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.lastExport
	s.lastExport = path
	return previous
}

// Clear forgets the dataset and any filtered view
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.filtered = nil
	s.loadedAt = core.Timestamp{}
}
