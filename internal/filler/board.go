package filler

import (
	"fmt"
	"sort"
)

// Board is the occupancy grid. A coordinate with no entry is unknown and
// reads as NoOwner; an entry with NoOwner is an explicitly empty cell.
// The difference matters for neighbor queries, which only see entries.
//
// A board must not be mutated while a search over it is running.
type Board struct {
	width  int
	height int

	occupation    map[Coord]int
	oppOccupation []Cell

	hash uint64
}

// NewBoard returns an empty board. Dimensions are fixed for its lifetime.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("filler: invalid board size %dx%d", width, height))
	}
	return &Board{
		width:      width,
		height:     height,
		occupation: make(map[Coord]int, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Len is the number of explicit entries.
func (b *Board) Len() int { return len(b.occupation) }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Owner returns the owner of (x, y) and whether the coordinate has an entry.
func (b *Board) Owner(x, y int) (int, bool) {
	id, ok := b.occupation[Coord{X: x, Y: y}]
	return id, ok
}

// Set records owner at (x, y). Owner NoOwner creates an explicit empty entry.
func (b *Board) Set(x, y, owner int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	if owner < 0 {
		return ErrInvalidOwner
	}
	c := Coord{X: x, Y: y}
	if old, ok := b.occupation[c]; ok {
		b.hash ^= entryHashKey(c, old)
	}
	b.occupation[c] = owner
	b.hash ^= entryHashKey(c, owner)
	return nil
}

// Clear removes the entry at (x, y), if any.
func (b *Board) Clear(x, y int) {
	c := Coord{X: x, Y: y}
	if old, ok := b.occupation[c]; ok {
		b.hash ^= entryHashKey(c, old)
		delete(b.occupation, c)
	}
}

// Place writes a legal placement onto the board as owned by its robot.
func (b *Board) Place(pos Position) error {
	r := Robot{ID: pos.RobotID}
	if pos.RobotID == NoOwner || !b.CanPlace(pos.X, pos.Y, r, pos.Piece) {
		return fmt.Errorf("%w: piece at (%d,%d) for robot %d", ErrIllegalPlacement, pos.X, pos.Y, pos.RobotID)
	}
	for _, c := range pos.Cells() {
		if err := b.Set(c.X, c.Y, pos.RobotID); err != nil {
			return err
		}
	}
	return nil
}

// Cells returns every entry, sorted row-major.
func (b *Board) Cells() []Cell {
	out := make([]Cell, 0, len(b.occupation))
	for c, id := range b.occupation {
		out = append(out, NewCell(c.X, c.Y, id))
	}
	sortCells(out)
	return out
}

// Count returns how many entries belong to owner.
func (b *Board) Count(owner int) int {
	n := 0
	for _, id := range b.occupation {
		if id == owner {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	nb := &Board{
		width:      b.width,
		height:     b.height,
		occupation: make(map[Coord]int, len(b.occupation)),
		hash:       b.hash,
	}
	for c, id := range b.occupation {
		nb.occupation[c] = id
	}
	nb.oppOccupation = append([]Cell(nil), b.oppOccupation...)
	return nb
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
