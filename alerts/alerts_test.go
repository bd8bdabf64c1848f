package alerts

import (
	"testing"
	"time"
)

func TestAddAssignsUniqueIncreasingIDs(t *testing.T) {
	store := NewStore()
	defer store.Close()

	seen := make(map[int64]bool)
	var prev int64
	for i := 0; i < 20; i++ {
		id := store.Add("message", SeverityInfo)
		if seen[id] {
			t.Fatalf("duplicate alert id %d", id)
		}
		if id <= prev {
			t.Fatalf("alert id %d is not greater than previous id %d", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewStore()
	defer store.Close()

	id := store.Add("dismiss me", SeverityError)
	store.Remove(id)
	// Second removal of the same id must be a no-op, not a panic or a
	// removal of some other alert.
	store.Remove(id)

	keep := store.Add("keep me", SeveritySuccess)
	store.Remove(id)

	alerts := store.List()
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].ID != keep {
		t.Errorf("surviving alert id = %d, want %d", alerts[0].ID, keep)
	}
}

func TestAlertsExpireAutomatically(t *testing.T) {
	store := NewStore(WithTTL(20 * time.Millisecond))
	defer store.Close()

	store.Add("short lived", SeverityWarning)
	if len(store.List()) != 1 {
		t.Fatal("alert should be visible right after Add")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(store.List()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("alert did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDismissedAlertDoesNotExpireTwice(t *testing.T) {
	store := NewStore(WithTTL(20 * time.Millisecond))
	defer store.Close()

	id := store.Add("dismissed early", SeverityInfo)
	store.Remove(id)

	// Outlive the original TTL, then add a fresh alert and make sure the
	// stale timer does not touch it.
	time.Sleep(40 * time.Millisecond)
	store.Add("fresh", SeverityInfo)
	if len(store.List()) != 1 {
		t.Fatalf("expected 1 alert after stale timer window, got %d", len(store.List()))
	}
}

func TestMaxVisibleDropsOldest(t *testing.T) {
	store := NewStore(WithTTL(time.Minute), WithMaxVisible(3))
	defer store.Close()

	first := store.Add("first", SeverityInfo)
	store.Add("second", SeverityInfo)
	store.Add("third", SeverityInfo)
	store.Add("fourth", SeverityInfo)

	alerts := store.List()
	if len(alerts) != 3 {
		t.Fatalf("expected 3 visible alerts, got %d", len(alerts))
	}
	for _, a := range alerts {
		if a.ID == first {
			t.Error("oldest alert should have been dropped")
		}
	}
	if alerts[len(alerts)-1].Message != "fourth" {
		t.Errorf("newest alert message = %q, want %q", alerts[len(alerts)-1].Message, "fourth")
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore(WithTTL(time.Minute))
	defer store.Close()

	store.Add("one", SeverityDefault)
	alerts := store.List()
	alerts[0].Message = "mutated"

	if store.List()[0].Message != "one" {
		t.Error("List must return a copy, not the internal slice")
	}
}
