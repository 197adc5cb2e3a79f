package engine

import (
	"filler/internal/filler"
)

// Weights of the placement heuristics. Every term is "more is better" for
// the placing robot.
type Weights struct {
	Blocking  float64 `json:"blocking"`
	Proximity float64 `json:"proximity"`
	Contact   float64 `json:"contact"`
	Center    float64 `json:"center"`
}

func DefaultWeights() Weights {
	return Weights{
		Blocking:  1.0,
		Proximity: 4.0,
		Contact:   0.5,
		Center:    0.25,
	}
}

// Evaluator scores placements. It expects the board's constrained opponent
// cells to be current for the robot being scored.
type Evaluator struct {
	Weights Weights
}

var _ filler.Scorer = Evaluator{}

func (ev Evaluator) Score(b *filler.Board, pos filler.Position, r filler.Robot) float64 {
	cells := pos.Cells()

	blocking, contact := 0, 0
	for _, c := range cells {
		cell := filler.NewCell(c.X, c.Y, r.ID)
		blocking += cell.BlockingPotential(b)
		contact += foreignNeighbors(b, cell)
	}

	w := ev.Weights
	return w.Blocking*float64(blocking) +
		w.Proximity*proximity(cells, b.ConstrainedOpponentCells()) +
		w.Contact*float64(contact) +
		w.Center*centrality(b, pos)
}

// foreignNeighbors counts neighbors held by another robot.
func foreignNeighbors(b *filler.Board, c filler.Cell) int {
	n := 0
	for _, nb := range c.Neighbors(b) {
		if nb.OccupiedBy != filler.NoOwner && nb.OccupiedBy != c.OccupiedBy {
			n++
		}
	}
	return n
}

// proximity is 1/(1+d) for the Manhattan distance d between the footprint
// and the closest target, 0 without targets.
func proximity(cells []filler.Coord, targets []filler.Cell) float64 {
	if len(targets) == 0 || len(cells) == 0 {
		return 0
	}
	best := -1
	for _, c := range cells {
		for _, t := range targets {
			d := abs(c.X-t.X) + abs(c.Y-t.Y)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return 1 / float64(1+best)
}

// centrality is 1 at the board centre and 0 at a corner.
func centrality(b *filler.Board, pos filler.Position) float64 {
	hw := float64(b.Width()) / 2
	hh := float64(b.Height()) / 2
	cx := float64(pos.X) + float64(pos.Piece.Width)/2
	cy := float64(pos.Y) + float64(pos.Piece.Height)/2
	d := (absf(cx-hw)/hw + absf(cy-hh)/hh) / 2
	if d > 1 {
		d = 1
	}
	return 1 - d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
