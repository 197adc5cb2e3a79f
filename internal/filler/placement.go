package filler

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CanPlace reports whether piece anchored with its top-left cell at (x, y)
// is legal for r: every filled cell must be on the board and not owned by
// another robot, and exactly one filled cell must cover a cell of r.
func (b *Board) CanPlace(x, y int, r Robot, piece Piece) bool {
	touch := 0
	for i := 0; i < piece.Height; i++ {
		for j := 0; j < piece.Width; j++ {
			if !piece.Filled(j, i) {
				continue
			}
			ax, ay := x+j, y+i
			if !b.InBounds(ax, ay) {
				return false
			}
			id, ok := b.occupation[Coord{X: ax, Y: ay}]
			if !ok {
				continue
			}
			if id == r.ID {
				touch++
			} else if id != NoOwner {
				return false
			}
		}
	}
	return touch == 1
}

// PotentialPositions scores every legal placement of piece for r, using
// one worker per CPU.
func (b *Board) PotentialPositions(piece Piece, r Robot, s Scorer) map[Position]float64 {
	return b.ScanPositions(piece, r, s, 0)
}

type scoredPosition struct {
	pos   Position
	score float64
}

// ScanPositions is PotentialPositions with an explicit worker limit; a
// limit <= 0 means GOMAXPROCS. Each row is scanned independently into its
// own slot and the slots are merged once all rows are done. A nil scorer
// scores every candidate 0.
func (b *Board) ScanPositions(piece Piece, r Robot, s Scorer, workers int) map[Position]float64 {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rows := make([][]scoredPosition, b.height)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < b.height; i++ {
		i := i
		g.Go(func() error {
			rows[i] = b.scanRow(i, piece, r, s)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, row := range rows {
		n += len(row)
	}
	out := make(map[Position]float64, n)
	for _, row := range rows {
		for _, sp := range row {
			out[sp.pos] = sp.score
		}
	}
	return out
}

func (b *Board) scanRow(y int, piece Piece, r Robot, s Scorer) []scoredPosition {
	var found []scoredPosition
	for x := 0; x < b.width; x++ {
		if !b.CanPlace(x, y, r, piece) {
			continue
		}
		pos := Position{X: x, Y: y, RobotID: r.ID, Piece: piece.Clone()}
		var score float64
		if s != nil {
			score = s.Score(b, pos, r)
		}
		found = append(found, scoredPosition{pos: pos, score: score})
	}
	return found
}
