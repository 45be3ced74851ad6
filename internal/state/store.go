package state

import (
	"sync"
	"time"
)

// Source names where the initial read set came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Snapshot represents the latest read state known to the consumer.
type Snapshot struct {
	Read        ReadSet
	Source      Source
	LogFile     string
	Level       string
	LastUpdated time.Time
}

// Store folds live events into the read state. The watcher proposes changes;
// only the Store holds the authoritative set.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Reset replaces the state with the result of a reconciliation run.
func (s *Store) Reset(read ReadSet, source Source, logFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Read:        read.Clone(),
		Source:      source,
		LogFile:     logFile,
		Level:       s.snapshot.Level,
		LastUpdated: time.Now(),
	}
}

// MarkRead adds id and reports whether it was not read before.
func (s *Store) MarkRead(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Read == nil {
		s.snapshot.Read = ReadSet{}
	}
	if !s.snapshot.Read.Add(id) {
		return false
	}
	s.snapshot.LastUpdated = time.Now()
	return true
}

// SelectLevel records the current expedition and reports whether it changed.
func (s *Store) SelectLevel(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Level == code {
		return false
	}
	s.snapshot.Level = code
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Read = s.snapshot.Read.Clone()
	return snap
}
