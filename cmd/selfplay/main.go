package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"filler/internal/engine"
	"filler/internal/filler"
)

type PlayerConfig struct {
	Name  string
	Robot filler.Robot
	Eng   *engine.Engine
}

// pieceBag is drawn from uniformly each turn.
var pieceBag = []filler.Piece{
	filler.MustPiece("O"),
	filler.MustPiece("OO"),
	filler.MustPiece("O", "O"),
	filler.MustPiece("OO", "O."),
	filler.MustPiece(".O", "OO"),
	filler.MustPiece("OOO"),
	filler.MustPiece("O", "O", "O"),
	filler.MustPiece(".O.", "OOO"),
	filler.MustPiece("OO.", ".OO"),
	filler.MustPiece("OO", "OO"),
}

func main() {
	width := flag.Int("width", 40, "board width")
	height := flag.Int("height", 30, "board height")
	totalGames := flag.Int("games", 4, "number of games to play")
	seed := flag.Int64("seed", 1, "piece bag seed")
	bench := flag.Bool("bench", false, "compare serial and parallel scans on the final board")
	flag.Parse()

	aggressive := engine.DefaultWeights()
	aggressive.Proximity *= 3
	aggressive.Contact *= 2

	p1 := PlayerConfig{Name: "default", Robot: filler.Robot{ID: 1}, Eng: engine.NewEngine(engine.DefaultConfig())}
	p2 := PlayerConfig{Name: "aggressive", Robot: filler.Robot{ID: 2}, Eng: engine.NewEngine(engine.Config{Weights: aggressive})}

	rng := rand.New(rand.NewSource(*seed))
	wins := map[string]int{}
	var last *filler.Board

	for g := 0; g < *totalGames; g++ {
		first, second := p1, p2
		if g%2 == 1 {
			first, second = p2, p1
		}
		fmt.Printf("\n=== Game %d: %s vs %s ===\n", g+1, first.Name, second.Name)
		b := playGame(rng, *width, *height, first, second)
		n1, n2 := b.Count(p1.Robot.ID), b.Count(p2.Robot.ID)
		fmt.Printf("%s: %d cells, %s: %d cells\n", p1.Name, n1, p2.Name, n2)
		switch {
		case n1 > n2:
			wins[p1.Name]++
		case n2 > n1:
			wins[p2.Name]++
		default:
			wins["draw"]++
		}
		last = b
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n%s: %d\nDraws: %d\n", p1.Name, wins[p1.Name], p2.Name, wins[p2.Name], wins["draw"])

	if *bench && last != nil {
		if err := runBenchmark(os.Stdout, last, pieceBag, p1.Robot); err != nil {
			log.Fatalf("benchmark: %v", err)
		}
	}
}

// playGame alternates turns until neither robot can place its piece.
func playGame(rng *rand.Rand, width, height int, first, second PlayerConfig) *filler.Board {
	b := filler.NewBoard(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_ = b.Set(x, y, filler.NoOwner)
		}
	}
	_ = b.Set(width/4, height/4, first.Robot.ID)
	_ = b.Set(width-1-width/4, height-1-height/4, second.Robot.ID)

	players := []PlayerConfig{first, second}
	stuck := make([]bool, len(players))
	maxTurns := width * height // caps the game length

	for turn := 0; turn < maxTurns; turn++ {
		idx := turn % len(players)
		if stuck[idx] {
			if allStuck(stuck) {
				break
			}
			continue
		}
		p := players[idx]
		piece := pieceBag[rng.Intn(len(pieceBag))]
		res := p.Eng.Evaluate(b, piece, p.Robot)
		best, ok := res.Best()
		if !ok {
			stuck[idx] = true
			log.Printf("turn %d: %s cannot place\n%s", turn, p.Name, piece)
			if allStuck(stuck) {
				break
			}
			continue
		}
		if err := b.Place(best.Position); err != nil {
			log.Fatalf("turn %d: %s: %v", turn, p.Name, err)
		}
	}
	return b
}

func allStuck(stuck []bool) bool {
	for _, s := range stuck {
		if !s {
			return false
		}
	}
	return true
}
