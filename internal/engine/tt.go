package engine

import (
	"sync"

	"filler/internal/filler"
)

// cacheKey identifies an evaluation: same occupation, same piece, same robot.
type cacheKey struct {
	Hash    uint64
	Width   int
	Height  int
	Piece   filler.Piece
	RobotID int
}

type resultCache struct {
	mu  sync.RWMutex
	cap int
	m   map[cacheKey][]Candidate
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{cap: capacity, m: make(map[cacheKey][]Candidate)}
}

func (c *resultCache) get(k cacheKey) ([]Candidate, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	return v, ok
}

// store resets the whole cache once it grows past capacity.
func (c *resultCache) store(k cacheKey, v []Candidate) {
	c.mu.Lock()
	if len(c.m) >= c.cap {
		c.m = make(map[cacheKey][]Candidate)
	}
	c.m[k] = v
	c.mu.Unlock()
}

func (c *resultCache) reset() {
	c.mu.Lock()
	c.m = make(map[cacheKey][]Candidate)
	c.mu.Unlock()
}

func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
