package filler

import (
	"math/rand"
	"testing"
)

var single = MustPiece("O")

func TestCanPlaceEmptyBoardRejectsEverything(t *testing.T) {
	b := NewBoard(5, 5)
	r := Robot{ID: 5}
	got := b.PotentialPositions(single, r, nil)
	if len(got) != 0 {
		t.Fatalf("expected no candidates on an empty board, got %d", len(got))
	}
}

func TestPotentialPositionsSingleOwnCell(t *testing.T) {
	b := NewBoard(5, 5)
	if err := b.Set(2, 2, 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	r := Robot{ID: 5}
	got := b.PotentialPositions(single, r, nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(got))
	}
	want := Position{X: 2, Y: 2, RobotID: 5, Piece: single}
	if _, ok := got[want]; !ok {
		t.Fatalf("expected candidate %+v, got %+v", want, got)
	}
}

func TestCanPlaceRules(t *testing.T) {
	// 5x5, robot 1 owns (1,1), robot 2 owns (3,3), (2,1) is explicitly empty.
	b := NewBoard(5, 5)
	mustSet(t, b, 1, 1, 1)
	mustSet(t, b, 3, 3, 2)
	mustSet(t, b, 2, 1, NoOwner)
	r := Robot{ID: 1}
	bar := MustPiece("OO")
	corner := MustPiece("O.", ".O")

	tests := []struct {
		name  string
		x, y  int
		piece Piece
		want  bool
	}{
		{"covers own cell once", 1, 1, bar, true},
		{"covers own cell with second footprint cell", 0, 1, bar, true},
		{"no contact", 0, 0, bar, false},
		{"off right edge", 4, 1, bar, false},
		{"off bottom edge", 3, 4, corner, false},
		{"negative anchor", -1, 1, bar, false},
		{"opponent cell", 2, 2, corner, false},
		{"empty footprint cell over own cell", 0, 0, MustPiece(".O", "O."), false},
		{"diagonal piece touching own", 0, 0, corner, true},
		{"explicit empty entry is not a touch", 2, 1, single, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CanPlace(tc.x, tc.y, r, tc.piece); got != tc.want {
				t.Fatalf("CanPlace(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestCanPlaceRejectsDoubleTouch(t *testing.T) {
	b := NewBoard(4, 1)
	mustSet(t, b, 0, 0, 1)
	mustSet(t, b, 1, 0, 1)
	if b.CanPlace(0, 0, Robot{ID: 1}, MustPiece("OO")) {
		t.Fatalf("placement covering two own cells must be illegal")
	}
	if !b.CanPlace(1, 0, Robot{ID: 1}, MustPiece("OO")) {
		t.Fatalf("placement covering one own cell must be legal")
	}
}

func TestScanMatchesSerialCanPlace(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pieces := []Piece{
		single,
		MustPiece("OO"),
		MustPiece("O.", "OO"),
		MustPiece(".O.", "OOO", ".O."),
		MustPiece("OOOO"),
	}
	for round := 0; round < 20; round++ {
		b := randomBoard(rng, 17, 13)
		for _, piece := range pieces {
			for _, id := range []int{1, 2} {
				r := Robot{ID: id}
				want := make(map[Position]bool)
				for y := 0; y < b.Height(); y++ {
					for x := 0; x < b.Width(); x++ {
						if b.CanPlace(x, y, r, piece) {
							want[Position{X: x, Y: y, RobotID: id, Piece: piece}] = true
						}
					}
				}
				for _, workers := range []int{1, 4, 0} {
					got := b.ScanPositions(piece, r, nil, workers)
					if len(got) != len(want) {
						t.Fatalf("round %d workers %d: got %d candidates, want %d", round, workers, len(got), len(want))
					}
					for pos := range got {
						if !want[pos] {
							t.Fatalf("round %d workers %d: unexpected candidate %+v", round, workers, pos)
						}
					}
				}
			}
		}
	}
}

func TestPotentialPositionsUsesScorer(t *testing.T) {
	b := NewBoard(6, 6)
	mustSet(t, b, 2, 3, 1)
	n := 0
	s := ScorerFunc(func(b *Board, pos Position, r Robot) float64 {
		return float64(pos.X*10 + pos.Y)
	})
	got := b.ScanPositions(MustPiece("OO"), Robot{ID: 1}, s, 1)
	for pos, score := range got {
		n++
		if score != float64(pos.X*10+pos.Y) {
			t.Fatalf("score for %+v = %v", pos, score)
		}
	}
	if n != 2 {
		t.Fatalf("expected 2 candidates, got %d", n)
	}
}

func TestPlaceWritesFootprint(t *testing.T) {
	b := NewBoard(5, 5)
	mustSet(t, b, 1, 1, 1)
	pos := Position{X: 1, Y: 1, RobotID: 1, Piece: MustPiece("OO", ".O")}
	if err := b.Place(pos); err != nil {
		t.Fatalf("place: %v", err)
	}
	for _, c := range []Coord{{1, 1}, {2, 1}, {2, 2}} {
		if id, _ := b.Owner(c.X, c.Y); id != 1 {
			t.Fatalf("cell %+v owner = %d, want 1", c, id)
		}
	}
	if _, ok := b.Owner(1, 2); ok {
		t.Fatalf("empty footprint cell must not be written")
	}
	if err := b.Place(Position{X: 4, Y: 4, RobotID: 1, Piece: MustPiece("OO")}); err == nil {
		t.Fatalf("expected illegal placement error")
	}
}

func mustSet(t *testing.T, b *Board, x, y, owner int) {
	t.Helper()
	if err := b.Set(x, y, owner); err != nil {
		t.Fatalf("set (%d,%d): %v", x, y, err)
	}
}

// randomBoard fills every cell explicitly, with a few cells for robots 1 and 2.
func randomBoard(rng *rand.Rand, w, h int) *Board {
	b := NewBoard(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			owner := NoOwner
			switch v := rng.Intn(10); {
			case v == 0:
				owner = 1
			case v == 1:
				owner = 2
			}
			_ = b.Set(x, y, owner)
		}
	}
	return b
}
