package growth

import "math/rand/v2"

// neighborOffsets lists the eight (dx, dy) steps in canonical order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors appends the in-bounds 8-connected neighbours of (x, y) to dst and
// returns the extended slice.
//
// When chance > 0 a single roll in [0, 100) decides whether the neighbours are
// shuffled: they are if the roll is below chance. Pass dst[:0] of a reused
// slice to avoid allocating on every call.
func Neighbors(rng *rand.Rand, x, y, width, height, chance int, dst []Coord) []Coord {
	start := len(dst)
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		dst = append(dst, Coord{X: nx, Y: ny})
	}

	if chance > 0 && rng.IntN(100) < chance {
		found := dst[start:]
		rng.Shuffle(len(found), func(i, j int) {
			found[i], found[j] = found[j], found[i]
		})
	}
	return dst
}
