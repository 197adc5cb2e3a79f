// Package protocol speaks the game server's line protocol: a player
// announcement, then one Anfield block and one Piece block per turn, each
// answered with "x y".
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"filler/internal/filler"
)

var ErrUnexpectedLine = errors.New("unexpected line")

const execPrefix = "$$$ exec p"

// Turn is everything the server sends for one move.
type Turn struct {
	Board *filler.Board
	Piece filler.Piece
}

type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Reader{sc: sc}
}

// ReadPlayer consumes lines up to the "$$$ exec pN : [...]" announcement
// and returns the robot it names.
func (r *Reader) ReadPlayer() (filler.Robot, error) {
	for {
		line, err := r.next()
		if err != nil {
			return filler.Robot{}, err
		}
		if !strings.HasPrefix(line, execPrefix) {
			continue
		}
		var id int
		if _, err := fmt.Sscanf(line[len(execPrefix):], "%d", &id); err != nil {
			return filler.Robot{}, fmt.Errorf("%w: %q", ErrUnexpectedLine, line)
		}
		return filler.NewRobot(id)
	}
}

// ReadTurn reads one Anfield block followed by one Piece block. It returns
// io.EOF when the server closes the stream between turns.
func (r *Reader) ReadTurn() (Turn, error) {
	header, err := r.nextNonEmpty()
	if err != nil {
		return Turn{}, err
	}
	w, h, err := filler.ParseHeader(header, "Anfield")
	if err != nil {
		return Turn{}, err
	}
	if _, err := r.next(); err != nil { // column ruler
		return Turn{}, unexpectedEOF(err)
	}
	rows, err := r.lines(h)
	if err != nil {
		return Turn{}, err
	}
	board, err := filler.DecodeAnfieldRows(w, h, rows)
	if err != nil {
		return Turn{}, err
	}

	header, err = r.nextNonEmpty()
	if err != nil {
		return Turn{}, unexpectedEOF(err)
	}
	pw, ph, err := filler.ParseHeader(header, "Piece")
	if err != nil {
		return Turn{}, err
	}
	rows, err = r.lines(ph)
	if err != nil {
		return Turn{}, err
	}
	piece, err := filler.DecodePieceRows(pw, ph, rows)
	if err != nil {
		return Turn{}, err
	}
	return Turn{Board: board, Piece: piece}, nil
}

func (r *Reader) lines(n int) ([]string, error) {
	var out []string
	for i := 0; i < n; i++ {
		line, err := r.next()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *Reader) next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.sc.Text(), "\r"), nil
}

func (r *Reader) nextNonEmpty() (string, error) {
	for {
		line, err := r.next()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// WriteMove answers a turn with the anchor of the chosen piece.
func WriteMove(w io.Writer, x, y int) error {
	_, err := fmt.Fprintf(w, "%d %d\n", x, y)
	return err
}

// WritePass answers a turn without a legal placement; the server ends the
// robot's game on it.
func WritePass(w io.Writer) error {
	return WriteMove(w, 0, 0)
}
