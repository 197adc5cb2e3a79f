package filler

import (
	"errors"
	"strings"
)

// NoOwner marks an unclaimed cell. It is never a valid robot id.
const NoOwner = 0

const emptyMark = '.'

var (
	ErrInvalidRobot     = errors.New("robot id must be non-zero")
	ErrInvalidPiece     = errors.New("invalid piece")
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrInvalidOwner     = errors.New("owner id must not be negative")
	ErrIllegalPlacement = errors.New("illegal placement")
)

// Robot is a player seen from the board: only its id matters here.
type Robot struct {
	ID int
}

func NewRobot(id int) (Robot, error) {
	if id == NoOwner {
		return Robot{}, ErrInvalidRobot
	}
	return Robot{ID: id}, nil
}

// Piece is a Height x Width footprint stored row-major as a string, so
// that it stays comparable and can be part of a map key.
type Piece struct {
	Width  int
	Height int
	cells  string
}

// NewPiece builds a piece from its rows. '.' is an empty cell, any other
// byte is filled.
func NewPiece(rows []string) (Piece, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Piece{}, ErrInvalidPiece
	}
	w := len(rows[0])
	var sb strings.Builder
	sb.Grow(w * len(rows))
	for _, row := range rows {
		if len(row) != w {
			return Piece{}, ErrInvalidPiece
		}
		sb.WriteString(row)
	}
	return Piece{Width: w, Height: len(rows), cells: sb.String()}, nil
}

// MustPiece is NewPiece for literals known to be valid.
func MustPiece(rows ...string) Piece {
	p, err := NewPiece(rows)
	if err != nil {
		panic(err)
	}
	return p
}

// Filled reports whether the footprint cell at column x, row y is filled.
func (p Piece) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return false
	}
	return p.cells[y*p.Width+x] != emptyMark
}

// Footprint returns the filled cells relative to the top-left anchor,
// row-major.
func (p Piece) Footprint() []Coord {
	out := make([]Coord, 0, len(p.cells))
	for i := 0; i < p.Height; i++ {
		for j := 0; j < p.Width; j++ {
			if p.Filled(j, i) {
				out = append(out, Coord{X: j, Y: i})
			}
		}
	}
	return out
}

func (p Piece) Clone() Piece { return p }

func (p Piece) Rows() []string {
	rows := make([]string, p.Height)
	for i := range rows {
		rows[i] = p.cells[i*p.Width : (i+1)*p.Width]
	}
	return rows
}

func (p Piece) String() string { return strings.Join(p.Rows(), "\n") }

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position is one placement candidate: the piece anchored at (X, Y) by
// the robot RobotID.
type Position struct {
	X       int
	Y       int
	RobotID int
	Piece   Piece
}

// Cells returns the absolute coordinates covered by the placement.
func (p Position) Cells() []Coord {
	fp := p.Piece.Footprint()
	for i := range fp {
		fp[i].X += p.X
		fp[i].Y += p.Y
	}
	return fp
}

// Scorer assigns a desirability to a legal placement. It is called
// concurrently from the scan and must only read the board.
type Scorer interface {
	Score(b *Board, pos Position, r Robot) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(b *Board, pos Position, r Robot) float64

func (f ScorerFunc) Score(b *Board, pos Position, r Robot) float64 { return f(b, pos, r) }
