package engine

import (
	"runtime"
	"sync/atomic"
)

// Config tunes the engine. Zero fields fall back to DefaultConfig.
type Config struct {
	Workers       int // scan goroutines, 0 = GOMAXPROCS
	CacheCapacity int // cached results before the cache is reset
	Weights       Weights
}

func DefaultConfig() Config {
	return Config{
		Workers:       runtime.GOMAXPROCS(0),
		CacheCapacity: 4096,
		Weights:       DefaultWeights(),
	}
}

type Engine struct {
	cfg   Config
	eval  Evaluator
	cache *resultCache

	searches int64
	hits     int64
}

func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = def.CacheCapacity
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = def.Weights
	}
	return &Engine{
		cfg:   cfg,
		eval:  Evaluator{Weights: cfg.Weights},
		cache: newResultCache(cfg.CacheCapacity),
	}
}

func (e *Engine) Config() Config { return e.cfg }

// Evaluator returns the scorer used for candidates.
func (e *Engine) Evaluator() Evaluator { return e.eval }

// Stats reports how many evaluations ran and how many were served from cache.
func (e *Engine) Stats() (searches, cacheHits int64) {
	return atomic.LoadInt64(&e.searches), atomic.LoadInt64(&e.hits)
}

// ResetCache drops every cached result.
func (e *Engine) ResetCache() { e.cache.reset() }
