package game

import (
	"sync"
	"time"

	"filler/internal/filler"
)

// GameState is one analysis session. board and updatedAt are guarded by mu:
// searches and mutations of the same game never overlap.
type GameState struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	board     *filler.Board
	updatedAt time.Time
}

// Board returns a copy of the current board.
func (g *GameState) Board() *filler.Board {
	b, _ := g.Snapshot()
	return b
}

func (g *GameState) UpdatedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updatedAt
}

// Snapshot returns a copy of the board and the time it was last changed,
// read under one lock so the two always agree.
func (g *GameState) Snapshot() (*filler.Board, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone(), g.updatedAt
}
