// Package growth implements the colour growth engine that paints a fondo.
//
// A run starts from one or more seed points and repeatedly takes a pending
// point out of a queue, commits its colour to the canvas, and pushes every
// not-yet-visited 8-connected neighbour with a slightly perturbed copy of that
// colour. The run ends when the queue is empty, at which point every pixel of
// the grid has been written exactly once.
//
// # Queue Kinds
//
// The order in which pending points leave the queue is what shapes the image:
//   - KindRandom: a random pending point is taken each step (organic blobs)
//   - KindStack: the most recent point is taken, neighbours are optionally
//     shuffled before being pushed (veins, fractal-like fronts)
//   - KindTree: the smallest point by (R, G, B, X, Y) is taken
//   - KindTreeRev: the largest point by (R, G, B, X, Y) is taken
//
// The tree kinds order by colour before position. Fronts race towards the
// darkest (or brightest) red channel first, which produces the banded look.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner. The mask and the
// canvas are flat slices indexed by y*width + x.
//
// # Randomness
//
// Every random draw (colour offsets, random pops, neighbour shuffles) comes
// from the *rand.Rand owned by the Engine. Two engines built with the same
// seed and fed the same configuration produce the same canvas.
//
// # Thread Safety
//
// An Engine is single-threaded. Do not call Run concurrently on the same
// Engine; build one Engine per goroutine instead.
package growth
