package engine

import (
	"math"
	"testing"

	"filler/internal/filler"
)

func explicitBoard(t *testing.T, w, h int) *filler.Board {
	t.Helper()
	b := filler.NewBoard(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := b.Set(x, y, filler.NoOwner); err != nil {
				t.Fatalf("set: %v", err)
			}
		}
	}
	return b
}

func TestEvaluatorHandComputed(t *testing.T) {
	b := explicitBoard(t, 3, 3)
	_ = b.Set(0, 0, 1)
	_ = b.Set(2, 2, 2)
	r := filler.Robot{ID: 1}

	e := NewEngine(Config{Workers: 2})
	res := e.Evaluate(b, filler.MustPiece("O"), r)
	best, ok := res.Best()
	if !ok || len(res.Candidates) != 1 {
		t.Fatalf("expected one candidate, got %+v", res.Candidates)
	}
	if best.Position.X != 0 || best.Position.Y != 0 {
		t.Fatalf("unexpected candidate %+v", best.Position)
	}
	// No foreign neighbors. (2,2) is constrained (3 empty neighbors) at
	// distance 4: proximity 1/5. Centrality of (0.5,0.5) on 3x3 is 1/3.
	want := 4.0*0.2 + 0.25*(1.0/3.0)
	if math.Abs(best.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", best.Score, want)
	}
	if res.Nodes != 9 || res.Legal != 1 {
		t.Fatalf("nodes = %d, legal = %d, want 9 and 1", res.Nodes, res.Legal)
	}
}

func TestForeignNeighbors(t *testing.T) {
	b := explicitBoard(t, 4, 1)
	_ = b.Set(0, 0, 1)
	_ = b.Set(2, 0, 2)
	if got := foreignNeighbors(b, filler.NewCell(1, 0, 1)); got != 1 {
		t.Fatalf("foreign neighbors = %d, want 1", got)
	}
	if got := foreignNeighbors(b, filler.NewCell(3, 0, 2)); got != 0 {
		t.Fatalf("own colour must not count, got %d", got)
	}
}

func TestProximityAndCentrality(t *testing.T) {
	if got := proximity([]filler.Coord{{X: 1, Y: 1}}, nil); got != 0 {
		t.Fatalf("proximity without targets = %v", got)
	}
	got := proximity([]filler.Coord{{X: 0, Y: 0}, {X: 3, Y: 3}}, []filler.Cell{filler.NewCell(4, 4, 2)})
	if got != 1.0/3.0 {
		t.Fatalf("proximity = %v, want 1/3", got)
	}

	b := filler.NewBoard(10, 10)
	centre := filler.Position{X: 4, Y: 4, Piece: filler.MustPiece("OO", "OO")}
	if c := centrality(b, centre); c != 1 {
		t.Fatalf("centrality at centre = %v", c)
	}
	corner := filler.Position{X: 0, Y: 0, Piece: filler.MustPiece("O")}
	if c := centrality(b, corner); c <= 0 || c >= 0.2 {
		t.Fatalf("centrality near corner = %v", c)
	}
}

func TestRankOrdersByScoreThenRowThenColumn(t *testing.T) {
	p := filler.MustPiece("O")
	scored := map[filler.Position]float64{
		{X: 3, Y: 1, RobotID: 1, Piece: p}: 1,
		{X: 1, Y: 1, RobotID: 1, Piece: p}: 1,
		{X: 0, Y: 2, RobotID: 1, Piece: p}: 5,
		{X: 0, Y: 0, RobotID: 1, Piece: p}: 1,
	}
	got := Rank(scored)
	want := []filler.Coord{{X: 0, Y: 2}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 1}}
	for i, c := range want {
		if got[i].Position.X != c.X || got[i].Position.Y != c.Y {
			t.Fatalf("rank %d = (%d,%d), want (%d,%d)", i, got[i].Position.X, got[i].Position.Y, c.X, c.Y)
		}
	}
}

func TestEvaluateCachesByBoardHash(t *testing.T) {
	b := explicitBoard(t, 8, 8)
	_ = b.Set(2, 2, 1)
	_ = b.Set(5, 5, 2)
	r := filler.Robot{ID: 1}
	piece := filler.MustPiece("OO", ".O")

	e := NewEngine(Config{})
	first := e.Evaluate(b, piece, r)
	second := e.Evaluate(b, piece, r)
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if first.ID == second.ID {
		t.Fatalf("each evaluation needs its own id")
	}
	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("cached result differs: %d vs %d", len(first.Candidates), len(second.Candidates))
	}
	if first.Legal == 0 || first.Legal != len(first.Candidates) || second.Legal != first.Legal {
		t.Fatalf("legal counts: first=%d second=%d candidates=%d", first.Legal, second.Legal, len(first.Candidates))
	}

	_ = b.Set(6, 6, 2)
	third := e.Evaluate(b, piece, r)
	if third.Cached {
		t.Fatalf("board change must miss the cache")
	}
	searches, hits := e.Stats()
	if searches != 3 || hits != 1 {
		t.Fatalf("stats = %d searches, %d hits", searches, hits)
	}
}

func TestCacheResetsAtCapacity(t *testing.T) {
	c := newResultCache(2)
	for i := 0; i < 3; i++ {
		c.store(cacheKey{Hash: uint64(i)}, nil)
	}
	if n := c.len(); n != 1 {
		t.Fatalf("cache len = %d, want 1 after reset", n)
	}
}

func TestEvaluateNoCandidates(t *testing.T) {
	e := NewEngine(DefaultConfig())
	res := e.Evaluate(filler.NewBoard(5, 5), filler.MustPiece("O"), filler.Robot{ID: 5})
	if _, ok := res.Best(); ok || res.Legal != 0 {
		t.Fatalf("empty board must yield no candidate, legal = %d", res.Legal)
	}
}
