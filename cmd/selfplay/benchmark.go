package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"filler/internal/engine"
	"filler/internal/filler"
)

const benchRounds = 20

// runBenchmark times serial and parallel scans of every bag piece and
// checks that both find the same placements.
func runBenchmark(w io.Writer, b *filler.Board, pieces []filler.Piece, robot filler.Robot) error {
	scorer := engine.Evaluator{Weights: engine.DefaultWeights()}
	b.UpdateOppOccupation(robot)

	var serial, parallel time.Duration
	for round := 0; round < benchRounds; round++ {
		for _, piece := range pieces {
			start := time.Now()
			a := b.ScanPositions(piece, robot, scorer, 1)
			serial += time.Since(start)

			start = time.Now()
			p := b.ScanPositions(piece, robot, scorer, 0)
			parallel += time.Since(start)

			if len(a) != len(p) {
				return fmt.Errorf("piece\n%s\nserial found %d placements, parallel %d", piece, len(a), len(p))
			}
			for pos, s := range a {
				if ps, ok := p[pos]; !ok || ps != s {
					return fmt.Errorf("placement %+v differs between scans", pos)
				}
			}
		}
	}

	n := benchRounds * len(pieces)
	fmt.Fprintf(w, "\n=== Scan benchmark (%dx%d, %d scans, GOMAXPROCS=%d) ===\n",
		b.Width(), b.Height(), n, runtime.GOMAXPROCS(0))
	fmt.Fprintf(w, "serial:   %v/scan\n", serial/time.Duration(n))
	fmt.Fprintf(w, "parallel: %v/scan\n", parallel/time.Duration(n))
	return nil
}
