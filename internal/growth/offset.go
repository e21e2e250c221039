package growth

import "math/rand/v2"

// Offset nudges one colour channel by a random non-zero amount in
// [-delta, delta] and clamps the result to [0, 255].
//
// delta must be at least 1. A smaller delta would make the non-zero draw
// impossible, so Offset panics instead of spinning forever; configuration is
// expected to reject it long before the engine runs.
func Offset(rng *rand.Rand, value uint8, delta int) uint8 {
	if delta < 1 {
		panic("growth: Offset called with delta < 1")
	}

	step := 0
	for step == 0 {
		step = rng.IntN(2*delta+1) - delta
	}

	v := int(value) + step
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// diffuse applies Offset to each channel of c independently.
func diffuse(rng *rand.Rand, c RGB, delta int) RGB {
	return RGB{
		R: Offset(rng, c.R, delta),
		G: Offset(rng, c.G, delta),
		B: Offset(rng, c.B, delta),
	}
}
