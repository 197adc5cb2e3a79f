package filler

import (
	"errors"
	"fmt"
	"strings"
)

// Grid format printed by the game server:
//
//	Anfield 20 15:
//	    01234567890123456789
//	000 ....................
//	001 ....$...............
//
// '@' and 'a' belong to player 1, '$' and 's' to player 2 (the lowercase
// form marks the last piece placed). Pieces use '.' and 'O'.

var (
	ErrInvalidAnfield = errors.New("invalid anfield")
	ErrInvalidHeader  = errors.New("invalid grid header")
)

const (
	anfieldKeyword = "Anfield"
	pieceKeyword   = "Piece"

	// MaxGridSide bounds both header dimensions.
	MaxGridSide = 4096
)

var symbolOwner = map[byte]int{
	'.': NoOwner,
	'@': 1,
	'a': 1,
	'$': 2,
	's': 2,
}

func ownerSymbol(id int) byte {
	switch id {
	case NoOwner:
		return '.'
	case 1:
		return '@'
	case 2:
		return '$'
	}
	return '?'
}

// ParseHeader reads "<keyword> <width> <height>:" and returns the size.
func ParseHeader(line, keyword string) (width, height int, err error) {
	line = strings.TrimSpace(line)
	var kw string
	if _, err := fmt.Sscanf(line, "%s %d %d:", &kw, &width, &height); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
	}
	if kw != keyword || width <= 0 || height <= 0 || !strings.HasSuffix(line, ":") {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
	}
	if width > MaxGridSide || height > MaxGridSide {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
	}
	return width, height, nil
}

// DecodeAnfieldRows builds a board from the numbered rows that follow the
// column ruler. Every cell gets an explicit entry, empty ones included.
func DecodeAnfieldRows(width, height int, rows []string) (*Board, error) {
	if len(rows) != height {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidAnfield, height, len(rows))
	}
	b := NewBoard(width, height)
	for y, row := range rows {
		cells, err := rowCells(row, width)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidAnfield, y, err)
		}
		for x := 0; x < width; x++ {
			id, ok := symbolOwner[cells[x]]
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unknown symbol %q", ErrInvalidAnfield, y, cells[x])
			}
			b.occupation[Coord{X: x, Y: y}] = id
		}
	}
	b.hash = b.CalculateHash()
	return b, nil
}

// rowCells strips the "NNN " prefix when present.
func rowCells(row string, width int) (string, error) {
	row = strings.TrimRight(row, "\r")
	if i := strings.IndexByte(row, ' '); i >= 0 {
		row = row[i+1:]
	}
	if len(row) != width {
		return "", fmt.Errorf("want %d cells, got %d", width, len(row))
	}
	return row, nil
}

// DecodeAnfield parses a whole Anfield block: header, ruler and rows.
func DecodeAnfield(text string) (*Board, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ErrInvalidAnfield
	}
	w, h, err := ParseHeader(lines[0], anfieldKeyword)
	if err != nil {
		return nil, err
	}
	return DecodeAnfieldRows(w, h, lines[2:])
}

// Encode prints the board in the game-server grid format. Owners other than
// players 1 and 2 print as '?'.
func (b *Board) Encode() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %d:\n    ", anfieldKeyword, b.width, b.height)
	for x := 0; x < b.width; x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteByte('\n')
	for y := 0; y < b.height; y++ {
		fmt.Fprintf(&sb, "%03d ", y)
		for x := 0; x < b.width; x++ {
			id := b.occupation[Coord{X: x, Y: y}]
			sb.WriteByte(ownerSymbol(id))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DecodePieceRows builds a piece from the rows following its header.
func DecodePieceRows(width, height int, rows []string) (Piece, error) {
	if len(rows) != height {
		return Piece{}, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidPiece, height, len(rows))
	}
	clean := make([]string, height)
	for i, row := range rows {
		row = strings.TrimRight(row, "\r")
		if len(row) != width {
			return Piece{}, fmt.Errorf("%w: row %d: want %d cells, got %d", ErrInvalidPiece, i, width, len(row))
		}
		clean[i] = row
	}
	return NewPiece(clean)
}

// DecodePiece parses a whole Piece block.
func DecodePiece(text string) (Piece, error) {
	lines := splitLines(text)
	if len(lines) < 1 {
		return Piece{}, ErrInvalidPiece
	}
	w, h, err := ParseHeader(lines[0], pieceKeyword)
	if err != nil {
		return Piece{}, err
	}
	return DecodePieceRows(w, h, lines[1:])
}

func (p Piece) Encode() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %d:\n", pieceKeyword, p.Width, p.Height)
	for _, row := range p.Rows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
