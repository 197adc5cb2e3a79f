package protocol

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"filler/internal/filler"
)

const stream = `$$$ exec p2 : [robots/terminator]
Anfield 6 3:
    012345
000 ......
001 .@..$.
002 ......
Piece 2 2:
.O
OO
Anfield 6 3:
    012345
000 ......
001 .@a.$.
002 ....s.
Piece 1 1:
O
`

func TestReadPlayerAndTurns(t *testing.T) {
	r := NewReader(strings.NewReader(stream))
	robot, err := r.ReadPlayer()
	if err != nil {
		t.Fatalf("read player: %v", err)
	}
	if robot.ID != 2 {
		t.Fatalf("robot id = %d, want 2", robot.ID)
	}

	turn, err := r.ReadTurn()
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if turn.Board.Width() != 6 || turn.Board.Height() != 3 {
		t.Fatalf("board size %dx%d", turn.Board.Width(), turn.Board.Height())
	}
	if turn.Piece.Width != 2 || turn.Piece.Height != 2 || len(turn.Piece.Footprint()) != 3 {
		t.Fatalf("piece = %+v", turn.Piece)
	}
	if id, _ := turn.Board.Owner(4, 1); id != 2 {
		t.Fatalf("(4,1) owner = %d", id)
	}

	turn, err = r.ReadTurn()
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if turn.Board.Count(1) != 2 || turn.Board.Count(2) != 2 {
		t.Fatalf("counts p1=%d p2=%d", turn.Board.Count(1), turn.Board.Count(2))
	}

	if _, err := r.ReadTurn(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after last turn, got %v", err)
	}
}

func TestReadTurnTruncated(t *testing.T) {
	r := NewReader(strings.NewReader("Anfield 6 3:\n    012345\n000 ......\n"))
	if _, err := r.ReadTurn(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}

func TestReadTurnRejectsOversizedHeader(t *testing.T) {
	tests := []string{
		"Anfield 1 2000000000:\n    0\n000 .\n",
		"Anfield 5000 1:\n    0\n000 .\n",
		"Anfield 1 1:\n    0\n000 @\nPiece 1 9999999:\nO\n",
	}
	for _, text := range tests {
		r := NewReader(strings.NewReader(text))
		if _, err := r.ReadTurn(); !errors.Is(err, filler.ErrInvalidHeader) {
			t.Fatalf("%q: err = %v, want invalid header", text, err)
		}
	}
}

func TestReadPlayerRejectsZero(t *testing.T) {
	r := NewReader(strings.NewReader("$$$ exec p0 : [x]\n"))
	if _, err := r.ReadPlayer(); err == nil {
		t.Fatalf("player 0 must be rejected")
	}
}

func TestWriteMove(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMove(&buf, 7, 2); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WritePass(&buf); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if buf.String() != "7 2\n0 0\n" {
		t.Fatalf("output = %q", buf.String())
	}
}
