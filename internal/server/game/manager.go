package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"filler/internal/filler"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// NewGame creates a session holding an empty board.
func (m *Manager) NewGame(width, height int) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
		board:     filler.NewBoard(width, height),
	}
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Read runs fn with exclusive access to the game's board without marking it
// updated. Evaluations go through here.
func (m *Manager) Read(id string, fn func(b *filler.Board) error) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.board)
}

// Update runs fn with exclusive access to the game's board and bumps
// the update time when fn succeeds.
func (m *Manager) Update(id string, fn func(b *filler.Board) error) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := fn(g.board); err != nil {
		return err
	}
	g.updatedAt = time.Now()
	return nil
}

// Replace swaps the game's board for b.
func (m *Manager) Replace(id string, b *filler.Board) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = b
	g.updatedAt = time.Now()
	return nil
}
