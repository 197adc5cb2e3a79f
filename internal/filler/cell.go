package filler

// Cell is a coordinate plus its owner. It is a value produced from the
// board on demand and owns no board state.
type Cell struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	OccupiedBy int `json:"occupied_by"`
}

func NewCell(x, y, owner int) Cell {
	return Cell{X: x, Y: y, OccupiedBy: owner}
}

// Neighbors scans the 3x3 window around c row-major and returns a cell for
// every coordinate that has an entry on the board. The centre offset is part
// of the scan, so an occupied centre is returned as its own neighbor.
func (c Cell) Neighbors(b *Board) []Cell {
	out := make([]Cell, 0, 9)
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			nx, ny := c.X+dj, c.Y+di
			if id, ok := b.occupation[Coord{X: nx, Y: ny}]; ok {
				out = append(out, NewCell(nx, ny, id))
			}
		}
	}
	return out
}

// EmptyNeighbors counts neighbor entries owned by nobody.
func (c Cell) EmptyNeighbors(b *Board) int {
	n := 0
	for _, nb := range c.Neighbors(b) {
		if nb.OccupiedBy == NoOwner {
			n++
		}
	}
	return n
}

// BlockingPotential estimates how much room the foreign cells around c
// still have. Integer division is applied per neighbor, then once on the
// total.
func (c Cell) BlockingPotential(b *Board) int {
	score := 0
	for _, nb := range c.Neighbors(b) {
		if nb.OccupiedBy != c.OccupiedBy && nb.OccupiedBy != NoOwner {
			score += 20 * nb.EmptyNeighbors(b) / 8
		}
	}
	return score / 8
}
