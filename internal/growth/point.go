package growth

import "fmt"

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Point pairs a pixel coordinate with the colour to paint there.
//
// Field order matters: the tree queues order points lexicographically by
// (R, G, B, X, Y), colour first.
type Point struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	X int   `json:"x"`
	Y int   `json:"y"`
}

// Color returns the colour part of the point.
func (p Point) Color() RGB {
	return RGB{R: p.R, G: p.G, B: p.B}
}

// Less reports whether p sorts before q by (R, G, B, X, Y).
func (p Point) Less(q Point) bool {
	if p.R != q.R {
		return p.R < q.R
	}
	if p.G != q.G {
		return p.G < q.G
	}
	if p.B != q.B {
		return p.B < q.B
	}
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)#%02X%02X%02X", p.X, p.Y, p.R, p.G, p.B)
}

// Coord is a grid coordinate.
type Coord struct {
	X, Y int
}
