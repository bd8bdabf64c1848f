package typeahead

import (
	"context"
	"errors"
	"testing"

	"notekeep/dto"
)

func testOptions() []dto.NoteGroupOption {
	return []dto.NoteGroupOption{
		{ID: 1, Name: "Travail"},
		{ID: 2, Name: "Maison"},
		{ID: 3, Name: "Travaux pratiques"},
	}
}

func TestLoadFetchesExactlyOnce(t *testing.T) {
	calls := 0
	sel := NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		calls++
		return testOptions(), nil
	}, nil)

	for i := 0; i < 3; i++ {
		if err := sel.Load(context.Background()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if sel.State() != StateReady {
		t.Errorf("state = %v, want StateReady", sel.State())
	}
}

func TestLoadErrorAllowsRetry(t *testing.T) {
	calls := 0
	sel := NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("fetch failed")
		}
		return testOptions(), nil
	}, nil)

	if err := sel.Load(context.Background()); err == nil {
		t.Fatal("expected first Load to fail")
	}
	if sel.State() != StateIdle {
		t.Fatalf("state after failed Load = %v, want StateIdle", sel.State())
	}

	if err := sel.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(sel.Matches()) != 3 {
		t.Errorf("got %d options after retry, want 3", len(sel.Matches()))
	}
}

func TestMatchesFiltersCaseInsensitively(t *testing.T) {
	sel := NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		return testOptions(), nil
	}, nil)
	if err := sel.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"trav", 2},
		{"TRAV", 2},
		{"maison", 1},
		{"aux", 2},
		{"zzz", 0},
	}

	for _, tt := range tests {
		sel.SetQuery(tt.query)
		if got := len(sel.Matches()); got != tt.want {
			t.Errorf("query %q: got %d matches, want %d", tt.query, got, tt.want)
		}
	}
}

func TestClearRestoresFullListWithoutRefetch(t *testing.T) {
	calls := 0
	var cleared bool
	sel := NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		calls++
		return testOptions(), nil
	}, func(opt *dto.NoteGroupOption) {
		if opt == nil {
			cleared = true
		}
	})
	if err := sel.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sel.SetQuery("maison")
	if got := len(sel.Matches()); got != 1 {
		t.Fatalf("filtered matches = %d, want 1", got)
	}

	sel.Clear()
	if !cleared {
		t.Error("Clear should report a nil selection to the callback")
	}
	if got := len(sel.Matches()); got != 3 {
		t.Errorf("matches after Clear = %d, want full list of 3", got)
	}
	if calls != 1 {
		t.Errorf("Clear triggered a refetch: %d calls", calls)
	}
}

func TestSelectInvokesCallback(t *testing.T) {
	var selected *dto.NoteGroupOption
	sel := NewSelector(func(_ context.Context) ([]dto.NoteGroupOption, error) {
		return testOptions(), nil
	}, func(opt *dto.NoteGroupOption) {
		selected = opt
	})
	if err := sel.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sel.Select(2)
	if selected == nil || selected.Name != "Maison" {
		t.Fatalf("selected = %+v, want Maison", selected)
	}

	selected = nil
	sel.Select(99)
	if selected != nil {
		t.Error("unknown id must not invoke the callback")
	}
}
