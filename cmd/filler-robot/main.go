package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"filler/internal/engine"
	"filler/internal/protocol"
)

// stdout carries protocol answers only; logs go to stderr.
func main() {
	workers := flag.Int("workers", getenvInt("FILLER_WORKERS", 0), "scan goroutines (0 = GOMAXPROCS)")
	verbose := flag.Bool("v", os.Getenv("FILLER_DEBUG") == "1", "log every turn to stderr")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetPrefix("[robot] ")

	eng := engine.NewEngine(engine.Config{Workers: *workers})
	in := protocol.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	robot, err := in.ReadPlayer()
	if err != nil {
		log.Fatalf("read player: %v", err)
	}
	log.Printf("playing as p%d", robot.ID)

	for turn := 1; ; turn++ {
		t, err := in.ReadTurn()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			log.Fatalf("turn %d: %v", turn, err)
		}

		res := eng.Evaluate(t.Board, t.Piece, robot)
		best, ok := res.Best()
		if !ok {
			if *verbose {
				log.Printf("turn %d: no legal placement", turn)
			}
			err = protocol.WritePass(out)
		} else {
			if *verbose {
				log.Printf("turn %d: %d candidates, best (%d,%d) score %.3f in %v",
					turn, len(res.Candidates), best.Position.X, best.Position.Y, best.Score, res.TimeUsed)
			}
			err = protocol.WriteMove(out, best.Position.X, best.Position.Y)
		}
		if err == nil {
			err = out.Flush()
		}
		if err != nil {
			log.Fatalf("write answer: %v", err)
		}
	}
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
