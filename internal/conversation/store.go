// Package conversation holds the in-memory conversation log and the sampling settings.
package conversation

import (
	"sync"
	"time"
)

// Store is the ordered message log plus the current settings.
// Insertion order is chronological order. Messages are only removed by Clear.
type Store struct {
	mu       sync.RWMutex
	messages []Message
	settings Settings
	now      func() time.Time
}

// NewStore creates an empty store with default settings.
func NewStore() *Store {
	return &Store{
		settings: DefaultSettings(),
		now:      time.Now,
	}
}

// Append records a new message stamped with the current time and returns it.
func (s *Store) Append(role Role, content string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// RecentContext returns the last n messages, oldest first.
// Fewer are returned when the history is shorter than n.
func (s *Store) RecentContext(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.messages) == 0 {
		return []Message{}
	}
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out
}

// Messages returns a copy of the full history.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Clear empties the history. Settings are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges patch into the current settings and returns the result.
func (s *Store) UpdateSettings(patch SettingsPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = patch.Apply(s.settings)
	return s.settings
}
