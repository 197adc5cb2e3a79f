package game

import (
	"errors"
	"sync"
	"testing"

	"filler/internal/filler"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	g := m.NewGame(6, 4)
	if g.ID == "" {
		t.Fatalf("expected a game id")
	}
	got, err := m.Get(g.ID)
	if err != nil || got != g {
		t.Fatalf("get: %v", err)
	}

	created := g.UpdatedAt()
	err = m.Update(g.ID, func(b *filler.Board) error {
		return b.Set(1, 1, 1)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if id, _ := g.Board().Owner(1, 1); id != 1 {
		t.Fatalf("update not applied")
	}
	if g.UpdatedAt().Before(created) {
		t.Fatalf("UpdatedAt went backwards")
	}

	if err := m.Update(g.ID, func(b *filler.Board) error { return b.Set(9, 9, 1) }); !errors.Is(err, filler.ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}

	if err := m.Replace(g.ID, filler.NewBoard(2, 2)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if w := g.Board().Width(); w != 2 {
		t.Fatalf("replaced width = %d", w)
	}

	if err := m.Delete(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("manager not empty")
	}
}

func TestBoardIsACopy(t *testing.T) {
	m := NewManager()
	g := m.NewGame(3, 3)
	b := g.Board()
	_ = b.Set(0, 0, 1)
	if _, ok := g.Board().Owner(0, 0); ok {
		t.Fatalf("Board must return a copy")
	}
}

func TestSnapshotConcurrentWithUpdate(t *testing.T) {
	m := NewManager()
	g := m.NewGame(16, 16)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			x, y := i%16, (i/16)%16
			if err := m.Update(g.ID, func(b *filler.Board) error { return b.Set(x, y, 1) }); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			b, at := g.Snapshot()
			if b.Width() != 16 || at.IsZero() {
				t.Errorf("bad snapshot: width=%d at=%v", b.Width(), at)
				return
			}
			_ = g.UpdatedAt()
		}
	}()
	wg.Wait()

	b, _ := g.Snapshot()
	if n := b.Count(1); n != 256 {
		t.Fatalf("cells owned after updates = %d, want 256", n)
	}
}
