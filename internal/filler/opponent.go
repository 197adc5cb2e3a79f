package filler

// constrainedThreshold is the empty-neighbor count an opponent cell must
// exceed to be reported.
const constrainedThreshold = 2

// UpdateOppOccupation rebuilds the constrained opponent cells as seen by r:
// every cell owned by someone other than r with more than two empty
// neighbors. The cache is always recomputed from scratch.
func (b *Board) UpdateOppOccupation(r Robot) {
	out := make([]Cell, 0)
	for c, id := range b.occupation {
		if id == NoOwner || id == r.ID {
			continue
		}
		cell := NewCell(c.X, c.Y, id)
		if cell.EmptyNeighbors(b) > constrainedThreshold {
			out = append(out, cell)
		}
	}
	sortCells(out)
	b.oppOccupation = out
}

// ConstrainedOpponentCells returns a copy of the last UpdateOppOccupation result.
func (b *Board) ConstrainedOpponentCells() []Cell {
	return append([]Cell(nil), b.oppOccupation...)
}
