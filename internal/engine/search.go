package engine

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"filler/internal/filler"
)

// Candidate is one legal placement with its score.
type Candidate struct {
	Position filler.Position
	Score    float64
}

// Result of one evaluation. Candidates are ranked best first; picking one
// is left to the caller.
type Result struct {
	ID         string
	Candidates []Candidate
	Legal      int   // legal placements found, before any caller-side limit
	Nodes      int64 // anchors scanned
	TimeUsed   time.Duration
	Cached     bool
}

// Best returns the top-ranked candidate, if any.
func (r Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Evaluate refreshes the board's constrained opponent cells for robot,
// scores every legal placement of piece and ranks them. The board must not
// be used concurrently while this runs.
func (e *Engine) Evaluate(b *filler.Board, piece filler.Piece, robot filler.Robot) Result {
	start := time.Now()
	atomic.AddInt64(&e.searches, 1)

	b.UpdateOppOccupation(robot)
	res := Result{
		ID:    uuid.NewString(),
		Nodes: int64(b.Width()) * int64(b.Height()),
	}

	key := cacheKey{
		Hash:    b.Hash(),
		Width:   b.Width(),
		Height:  b.Height(),
		Piece:   piece,
		RobotID: robot.ID,
	}
	if cached, ok := e.cache.get(key); ok {
		atomic.AddInt64(&e.hits, 1)
		res.Candidates = append([]Candidate(nil), cached...)
		res.Legal = len(res.Candidates)
		res.Cached = true
		res.TimeUsed = time.Since(start)
		return res
	}

	scored := b.ScanPositions(piece, robot, e.eval, e.cfg.Workers)
	res.Candidates = Rank(scored)
	res.Legal = len(res.Candidates)
	e.cache.store(key, append([]Candidate(nil), res.Candidates...))
	res.TimeUsed = time.Since(start)
	return res
}

// Rank orders scored placements by score, then row, then column.
func Rank(scored map[filler.Position]float64) []Candidate {
	out := make([]Candidate, 0, len(scored))
	for pos, s := range scored {
		out = append(out, Candidate{Position: pos, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		return a.Position.X < b.Position.X
	})
	return out
}
