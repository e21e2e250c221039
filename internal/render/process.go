package render

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Options controls the post-processing applied by Process.
type Options struct {
	// Scale multiplies both dimensions. 1 keeps the size. Nearest-neighbour
	// sampling keeps the individual grown pixels crisp.
	Scale float64

	// Smooth is a Gaussian blur radius in source pixels. 0 disables it.
	Smooth float64
}

// Process applies smoothing and then scaling. With zero Smooth and a Scale of
// 1 (or 0) the input is returned unchanged.
func Process(img image.Image, opts Options) image.Image {
	out := img
	if opts.Smooth > 0 {
		out = blur.Gaussian(out, opts.Smooth)
	}

	if opts.Scale > 0 && opts.Scale != 1 {
		b := out.Bounds()
		w, h := ScaledSize(b.Dx(), b.Dy(), opts.Scale)
		out = imaging.Resize(out, w, h, imaging.NearestNeighbor)
	}
	return out
}

// ScaledSize returns the dimensions Process produces for a w x h image at
// the given scale. Each side is rounded and at least 1.
func ScaledSize(w, h int, scale float64) (int, int) {
	if scale <= 0 || scale == 1 {
		return w, h
	}
	sw := int(math.Max(1, math.Round(float64(w)*scale)))
	sh := int(math.Max(1, math.Round(float64(h)*scale)))
	return sw, sh
}
