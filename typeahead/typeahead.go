// Package typeahead backs the category picker: the option list is fetched
// exactly once, then every query is answered by filtering the fetched list.
package typeahead

import (
	"context"
	"strings"
	"sync"

	"notekeep/dto"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

// FetchFunc supplies the full option list. It is called at most once per
// selector.
type FetchFunc func(ctx context.Context) ([]dto.NoteGroupOption, error)

// Selector filters an option list client-side. Clearing the query restores
// the full fetched list without another fetch.
type Selector struct {
	mu       sync.Mutex
	fetch    FetchFunc
	state    State
	options  []dto.NoteGroupOption
	query    string
	onSelect func(*dto.NoteGroupOption)
}

func NewSelector(fetch FetchFunc, onSelect func(*dto.NoteGroupOption)) *Selector {
	return &Selector{
		fetch:    fetch,
		state:    StateIdle,
		onSelect: onSelect,
	}
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load fetches the option list once. Subsequent calls are no-ops.
func (s *Selector) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	fetch := s.fetch
	s.mu.Unlock()

	options, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		return err
	}

	s.options = options
	s.state = StateReady
	return nil
}

// SetQuery updates the filter text. The query substate is independent of the
// loading phase.
func (s *Selector) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Matches returns the options whose name contains the query,
// case-insensitively. An empty query returns the full fetched list.
func (s *Selector) Matches() []dto.NoteGroupOption {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query == "" {
		out := make([]dto.NoteGroupOption, len(s.options))
		copy(out, s.options)
		return out
	}

	needle := strings.ToLower(s.query)
	out := make([]dto.NoteGroupOption, 0, len(s.options))
	for _, opt := range s.options {
		if strings.Contains(strings.ToLower(opt.Name), needle) {
			out = append(out, opt)
		}
	}
	return out
}

// Select invokes the callback with the chosen option. An unknown id is
// ignored.
func (s *Selector) Select(id uint) {
	s.mu.Lock()
	var chosen *dto.NoteGroupOption
	for i := range s.options {
		if s.options[i].ID == id {
			opt := s.options[i]
			chosen = &opt
			break
		}
	}
	callback := s.onSelect
	s.mu.Unlock()

	if chosen != nil && callback != nil {
		callback(chosen)
	}
}

// Clear resets the query and reports the cleared selection to the callback.
func (s *Selector) Clear() {
	s.mu.Lock()
	s.query = ""
	callback := s.onSelect
	s.mu.Unlock()

	if callback != nil {
		callback(nil)
	}
}
