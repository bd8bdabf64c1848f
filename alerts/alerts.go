// Package alerts holds transient user-facing notifications. The store is
// independent of routing and of the data layer: callers add a message, the
// store expires it after a fixed delay unless it is dismissed first.
package alerts

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityDefault Severity = "default"
)

// DefaultTTL matches the 5s auto-dismiss delay of the UI.
const DefaultTTL = 5 * time.Second

// DefaultMaxVisible bounds how many alerts are shown at once; the oldest is
// dropped when the bound is exceeded.
const DefaultMaxVisible = 5

type Alert struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is an explicit, injectable alert queue. IDs are unique for the
// lifetime of the store and removal is idempotent.
type Store struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxVisible int
	lastID     int64
	alerts     []Alert
	timers     map[int64]*time.Timer
}

type Option func(*Store)

// WithTTL overrides the auto-dismiss delay.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithMaxVisible overrides the visible-alert bound.
func WithMaxVisible(n int) Option {
	return func(s *Store) { s.maxVisible = n }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:        DefaultTTL,
		maxVisible: DefaultMaxVisible,
		timers:     make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends an alert and schedules its automatic removal. It returns the
// alert's id so the caller can dismiss it early.
func (s *Store) Add(message string, severity Severity) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Time-based ids as in the UI, nudged forward on collision so ids stay
	// unique even when two alerts land in the same millisecond.
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	s.alerts = append(s.alerts, Alert{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	})

	if len(s.alerts) > s.maxVisible {
		oldest := s.alerts[0]
		s.removeLocked(oldest.ID)
	}

	s.timers[id] = time.AfterFunc(s.ttl, func() {
		s.Remove(id)
	})

	return id
}

// Remove dismisses an alert. Removing an id that is absent (already expired
// or already dismissed) is a no-op.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *Store) removeLocked(id int64) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}

	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
}

// List returns the currently visible alerts, oldest first.
func (s *Store) List() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Close cancels all pending expiry timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.alerts = nil
}
