package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"filler/internal/engine"
	"filler/internal/filler"
	"filler/internal/protocol"
)

// Reads one turn (Anfield block + Piece block) from a file or stdin and
// prints the decoded board with the ranked candidates.
func main() {
	path := flag.String("file", "", "turn snapshot (default stdin)")
	robotID := flag.Int("robot", 1, "robot id to evaluate for")
	top := flag.Int("top", 10, "candidates to print")
	flag.Parse()

	in := os.Stdin
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	robot, err := filler.NewRobot(*robotID)
	if err != nil {
		log.Fatal(err)
	}
	turn, err := protocol.NewReader(in).ReadTurn()
	if err != nil {
		log.Fatalf("read turn: %v", err)
	}

	res := engine.NewEngine(engine.DefaultConfig()).Evaluate(turn.Board, turn.Piece, robot)

	fmt.Print(turn.Board.Encode())
	fmt.Print(turn.Piece.Encode())
	fmt.Println("Constrained opponent cells:", len(turn.Board.ConstrainedOpponentCells()))
	fmt.Printf("Legal placements: %d (scanned %d anchors in %v)\n", len(res.Candidates), res.Nodes, res.TimeUsed)
	for i, c := range res.Candidates {
		if i >= *top {
			fmt.Println(strings.Repeat(".", 3))
			break
		}
		fmt.Printf("%3d  (%d,%d)  %.4f\n", i+1, c.Position.X, c.Position.Y, c.Score)
	}
}
