package growth

import (
	"fmt"
	"math/rand/v2"
)

// DefaultProgressEvery is how many pops pass between progress callbacks.
const DefaultProgressEvery = 10_000

// Config describes one run.
type Config struct {
	Width  int
	Height int
	Seeds  []Point
	Kind   Kind
	// Delta bounds the per-channel colour change between a pixel and the
	// neighbours it spawns. Must be at least 1.
	Delta int
}

// Validate checks the configuration without touching any grid state.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Delta < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDelta, c.Delta)
	}
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	for _, s := range c.Seeds {
		if s.X < 0 || s.X >= c.Width || s.Y < 0 || s.Y >= c.Height {
			return fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrSeedOutOfBounds, s.X, s.Y, c.Width, c.Height)
		}
	}
	return c.Kind.Validate()
}

// Canvas is the painted result of a run.
type Canvas struct {
	Width  int
	Height int
	// Pix holds one colour per cell, row-major, index y*Width + x.
	Pix []RGB
	// Pops is the number of points taken out of the queue.
	Pops int
	// Seeds is the number of seeds that were placed. Seeds sharing a
	// coordinate with an earlier one are absorbed.
	Seeds int
}

// At returns the colour at (x, y).
func (c *Canvas) At(x, y int) RGB {
	return c.Pix[y*c.Width+x]
}

// ProgressFunc receives the number of painted pixels and the total.
type ProgressFunc func(done, total int)

// Option configures an Engine.
type Option func(*Engine)

// WithProgress installs a progress callback invoked every n pops and once
// when the run completes. n <= 0 selects DefaultProgressEvery.
func WithProgress(fn ProgressFunc, n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = DefaultProgressEvery
		}
		e.progress = fn
		e.progressEvery = n
	}
}

// Engine grows colour across a grid. It owns its random source.
type Engine struct {
	rng           *rand.Rand
	progress      ProgressFunc
	progressEvery int

	// newQueue is swapped by tests to observe queue traffic.
	newQueue func(Kind, *rand.Rand) Queue
}

// New creates an Engine drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		rng:           rng,
		progressEvery: DefaultProgressEvery,
		newQueue:      NewQueue,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSeeded creates an Engine with a PCG source seeded from seed.
func NewSeeded(seed uint64, opts ...Option) *Engine {
	return New(rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)), opts...)
}

// Rand exposes the engine's random source so callers can draw seed positions
// and colours from the same stream.
func (e *Engine) Rand() *rand.Rand {
	return e.rng
}

// Run paints a canvas for cfg.
//
// The configuration is validated before anything is allocated, so a rejected
// config leaves no partial state behind. On success every cell of the canvas
// has been written exactly once and Pops equals Width*Height.
func (e *Engine) Run(cfg Config) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, h := cfg.Width, cfg.Height
	total := w * h
	mask := NewMask(w, h)
	canvas := &Canvas{Width: w, Height: h, Pix: make([]RGB, total)}
	queue := e.newQueue(cfg.Kind, e.rng)

	for _, s := range cfg.Seeds {
		if !mask.Mark(s.X, s.Y) {
			continue
		}
		queue.Add(s)
		canvas.Seeds++
	}

	chance := queue.ShuffleChance()
	near := make([]Coord, 0, len(neighborOffsets))
	for queue.HasAny() {
		if e.progress != nil && canvas.Pops%e.progressEvery == 0 {
			e.progress(canvas.Pops, total)
		}

		p := queue.Pop()
		c := p.Color()
		canvas.Pix[p.Y*w+p.X] = c
		canvas.Pops++

		near = Neighbors(e.rng, p.X, p.Y, w, h, chance, near[:0])
		for _, n := range near {
			if mask.Visited(n.X, n.Y) {
				continue
			}
			nc := diffuse(e.rng, c, cfg.Delta)
			mask.Mark(n.X, n.Y)
			queue.Add(Point{R: nc.R, G: nc.G, B: nc.B, X: n.X, Y: n.Y})
		}
	}

	if e.progress != nil {
		e.progress(canvas.Pops, total)
	}
	return canvas, nil
}
