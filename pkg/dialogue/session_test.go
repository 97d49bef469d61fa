package dialogue_test

import (
	"sync"
	"testing"
	"time"

	"ReservaGolang/pkg/dialogue"
)

func TestManagerSerializesTurnsPerSession(t *testing.T) {
	t.Parallel()

	m := dialogue.NewManager()
	const turns = 200

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < turns; j++ {
				_ = m.WithSession("shared", func(s *dialogue.Session) error {
					// Non-atomic read-modify-write, only safe when the
					// manager serializes turns.
					s.Slots.Adults++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	snap, ok := m.Snapshot("shared")
	if !ok {
		t.Fatal("session vanished")
	}
	if snap.Slots.Adults != 4*turns {
		t.Errorf("adults = %d, want %d", snap.Slots.Adults, 4*turns)
	}
}

func TestManagerIsolatesSessions(t *testing.T) {
	t.Parallel()

	m := dialogue.NewManager()
	_ = m.WithSession("a", func(s *dialogue.Session) error {
		s.Slots.GuestName = "Alice"
		return nil
	})
	_ = m.WithSession("b", func(s *dialogue.Session) error {
		s.Slots.GuestName = "Bob"
		return nil
	})

	a, _ := m.Snapshot("a")
	b, _ := m.Snapshot("b")
	if a.Slots.GuestName != "Alice" || b.Slots.GuestName != "Bob" {
		t.Errorf("sessions bled into each other: %q / %q", a.Slots.GuestName, b.Slots.GuestName)
	}
}

func TestManagerCleanupIdle(t *testing.T) {
	t.Parallel()

	m := dialogue.NewManager()
	_ = m.WithSession("stale", func(s *dialogue.Session) error {
		s.UpdatedAt = time.Now().Add(-2 * time.Hour)
		return nil
	})
	_ = m.WithSession("fresh", func(s *dialogue.Session) error { return nil })

	removed := m.CleanupIdle(time.Hour)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := m.Snapshot("stale"); ok {
		t.Error("stale session survived cleanup")
	}
	if _, ok := m.Snapshot("fresh"); !ok {
		t.Error("fresh session removed")
	}
}

func TestSnapshotMissingSession(t *testing.T) {
	t.Parallel()

	m := dialogue.NewManager()
	if _, ok := m.Snapshot("nothing"); ok {
		t.Error("Snapshot invented a session")
	}
}
