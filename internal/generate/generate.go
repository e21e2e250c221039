// Package generate runs a complete fondo: options in, processed image out.
// The CLI, the MCP server and the HTTP server all go through Run.
package generate

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/fondo/internal/config"
	"github.com/ironsheep/fondo/internal/growth"
	"github.com/ironsheep/fondo/internal/render"
)

// ErrTooLarge indicates a requested image above the configured pixel limit.
var ErrTooLarge = errors.New("generate: image too large")

// Hooks are optional callbacks and limits for Run.
type Hooks struct {
	// Progress is called every ProgressEvery pops and once at the end.
	Progress      growth.ProgressFunc
	ProgressEvery int

	// MaxPixels rejects runs whose grid or scaled output has more pixels.
	// 0 means no limit.
	MaxPixels int

	// Now supplies the time based seed when Options.Seed is 0.
	Now func() time.Time
}

// Result describes a finished run.
type Result struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pops   int    `json:"pops"`
	Seeds  int    `json:"seeds"`
	Kind   string `json:"kind"`
	Seed   uint64 `json:"seed"`

	// Image is the processed image, ready for encoding.
	Image image.Image `json:"-"`
	// Canvas is the raw painted grid before post-processing.
	Canvas *growth.Canvas `json:"-"`
}

// Run fills defaults, validates opts, grows the canvas and applies the
// post-processing options.
func Run(opts config.Options, hooks Hooks) (*Result, error) {
	opts.FillDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	w, h, _ := config.ParseSize(opts.Size)
	if hooks.MaxPixels > 0 {
		if w*h > hooks.MaxPixels {
			return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, w, h, hooks.MaxPixels)
		}
		// The resized output is bounded too. Floats keep huge scales from
		// overflowing before the comparison.
		scale := opts.ScaleFactor()
		sw := math.Max(1, math.Round(float64(w)*scale))
		sh := math.Max(1, math.Round(float64(h)*scale))
		if sw*sh > float64(hooks.MaxPixels) {
			return nil, fmt.Errorf("%w: %dx%d at scale %g exceeds %d pixels",
				ErrTooLarge, w, h, scale, hooks.MaxPixels)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		now := time.Now
		if hooks.Now != nil {
			now = hooks.Now
		}
		seed = uint64(now().UnixNano())
	}

	var engineOpts []growth.Option
	if hooks.Progress != nil {
		engineOpts = append(engineOpts, growth.WithProgress(hooks.Progress, hooks.ProgressEvery))
	}
	engine := growth.NewSeeded(seed, engineOpts...)

	cfg, err := opts.Build(engine.Rand())
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"size":  opts.Size,
		"kind":  cfg.Kind.String(),
		"delta": cfg.Delta,
		"seeds": len(cfg.Seeds),
		"seed":  seed,
	}).Debug("growing fondo")

	canvas, err := engine.Run(cfg)
	if err != nil {
		return nil, err
	}

	img := render.Process(render.ToImage(canvas), render.Options{Scale: opts.ScaleFactor(), Smooth: opts.Smooth})

	return &Result{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Pops:   canvas.Pops,
		Seeds:  canvas.Seeds,
		Kind:   cfg.Kind.String(),
		Seed:   seed,
		Image:  img,
		Canvas: canvas,
	}, nil
}
