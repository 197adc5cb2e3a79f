package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"filler/internal/engine"
	"filler/internal/server/game"
	httpserver "filler/internal/server/http"
)

func main() {
	addr := flag.String("addr", getenv("FILLER_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("FILLER_WEB", ""), "directory with the analysis UI (empty = API only)")
	workers := flag.Int("workers", getenvInt("FILLER_WORKERS", 0), "scan goroutines per evaluation (0 = GOMAXPROCS)")
	cacheCap := flag.Int("cache", getenvInt("FILLER_CACHE", 0), "cached evaluations before reset (0 = default)")
	flag.Parse()

	eng := engine.NewEngine(engine.Config{Workers: *workers, CacheCapacity: *cacheCap})
	cfg := eng.Config()
	log.Printf("engine: workers=%d cache=%d weights=%+v", cfg.Workers, cfg.CacheCapacity, cfg.Weights)

	hub := httpserver.NewHub()
	done := make(chan struct{})
	go hub.Run(done)

	srv := httpserver.NewServer(game.NewManager(), eng, hub)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(*addr, *webDir) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		close(done)
		if err != nil {
			log.Fatal(err)
		}
		return
	case s := <-sig:
		log.Printf("received %s, shutting down", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Close(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	close(done)
	searches, hits := eng.Stats()
	log.Printf("served %d evaluations (%d from cache)", searches, hits)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
