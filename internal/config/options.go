package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fondo/internal/growth"
)

const (
	// ValueSeparator splits the numbers inside one position or colour.
	ValueSeparator = ","
	// ListSeparator splits entries of a position or colour list.
	ListSeparator = ":"
)

var (
	ErrInvalidSize         = errors.New("config: size must be WxH with positive integers")
	ErrInvalidPoint        = errors.New("config: position must be x,y")
	ErrInvalidColour       = errors.New("config: colour must be r,g,b or #rrggbb")
	ErrInvalidDelta        = errors.New("config: delta must be at least 1")
	ErrInvalidNumber       = errors.New("config: number of points must be between 0 and width*height")
	ErrPositionOutOfBounds = errors.New("config: position outside image")
	ErrInvalidScale        = errors.New("config: scale must be positive")
	ErrInvalidSmooth       = errors.New("config: smooth radius must not be negative")
)

// Options are the knobs of one fondo.
type Options struct {
	// Size is the image size in WxH format.
	Size string `json:"size"`
	// Number of seed positions. Random positions are appended to the explicit
	// ones until there are Number of them.
	Number int `json:"number"`
	// Positions is a colon-separated list of x,y pairs.
	Positions string `json:"positions"`
	// Colours is a colon-separated list of r,g,b triples or hex colours. The
	// last one is repeated for the remaining positions.
	Colours string `json:"colours"`
	// RandomColours fills missing colours randomly instead of repeating.
	RandomColours bool `json:"random"`
	// Delta bounds the colour change per step. Nil selects DefaultDelta; an
	// explicit value below 1 is rejected.
	Delta *int `json:"delta,omitempty"`
	// Kind selects the growth queue, see ParseKind.
	Kind string `json:"kind"`
	// Seed for the random generator. Zero picks a time based seed.
	Seed uint64 `json:"seed"`
	// Scale resizes the result with nearest-neighbour sampling. Nil selects
	// DefaultScale.
	Scale *float64 `json:"scale,omitempty"`
	// Smooth is a Gaussian blur radius applied to the result. Zero disables it.
	Smooth float64 `json:"smooth"`
	// Output is the file name to write.
	Output string `json:"output"`
}

const (
	DefaultDelta = 4
	DefaultScale = 1.0
)

// Int returns a pointer to v, for the optional numeric fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for the optional numeric fields.
func Float(v float64) *float64 { return &v }

// Defaults returns the options used when nothing is specified.
func Defaults() Options {
	return Options{
		Size:   "500x500",
		Delta:  Int(DefaultDelta),
		Kind:   "default",
		Scale:  Float(DefaultScale),
		Output: "output.png",
	}
}

// FillDefaults sets every unset field to its default. Delta and Scale count
// as unset only when nil, so an explicit 0 is kept and fails Validate.
func (o *Options) FillDefaults() {
	d := Defaults()
	if o.Size == "" {
		o.Size = d.Size
	}
	if o.Delta == nil {
		o.Delta = d.Delta
	}
	if o.Kind == "" {
		o.Kind = d.Kind
	}
	if o.Scale == nil {
		o.Scale = d.Scale
	}
	if o.Output == "" {
		o.Output = d.Output
	}
}

// StepDelta is the effective delta.
func (o Options) StepDelta() int {
	if o.Delta == nil {
		return DefaultDelta
	}
	return *o.Delta
}

// ScaleFactor is the effective scale.
func (o Options) ScaleFactor() float64 {
	if o.Scale == nil {
		return DefaultScale
	}
	return *o.Scale
}

// Validate checks the options that do not depend on randomness.
func (o Options) Validate() error {
	w, h, err := ParseSize(o.Size)
	if err != nil {
		return err
	}
	if d := o.StepDelta(); d < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDelta, d)
	}
	if o.Number < 0 || o.Number > w*h {
		return fmt.Errorf("%w: got %d for %dx%d", ErrInvalidNumber, o.Number, w, h)
	}
	if s := o.ScaleFactor(); !(s > 0) || math.IsInf(s, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidScale, s)
	}
	if o.Smooth < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSmooth, o.Smooth)
	}
	positions, err := ParsePositions(o.Positions)
	if err != nil {
		return err
	}
	for _, p := range positions {
		if p.X >= w || p.Y >= h {
			return fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrPositionOutOfBounds, p.X, p.Y, w, h)
		}
	}
	if _, err := ParseColours(o.Colours); err != nil {
		return err
	}
	return nil
}

// Build validates the options and produces the growth configuration. Random
// positions and colours are drawn from rng.
func (o Options) Build(rng *rand.Rand) (growth.Config, error) {
	if err := o.Validate(); err != nil {
		return growth.Config{}, err
	}
	w, h, _ := ParseSize(o.Size)
	positions, _ := ParsePositions(o.Positions)
	colours, _ := ParseColours(o.Colours)

	return growth.Config{
		Width:  w,
		Height: h,
		Seeds:  Seeds(rng, w, h, o.Number, positions, colours, o.RandomColours),
		Kind:   ParseKind(o.Kind),
		Delta:  o.StepDelta(),
	}, nil
}

// Seeds combines positions and colours into seed points.
//
// With number == 0 and no positions the single seed sits at the centre.
// Otherwise random positions are appended until there are number of them.
// Missing colours are random when randomColours is set, else the last colour
// given (black if none) is repeated.
func Seeds(rng *rand.Rand, w, h, number int, positions []growth.Coord, colours []growth.RGB, randomColours bool) []growth.Point {
	positions = append([]growth.Coord(nil), positions...)
	colours = append([]growth.RGB(nil), colours...)

	if number == 0 && len(positions) == 0 {
		positions = append(positions, growth.Coord{X: w / 2, Y: h / 2})
	}
	for len(positions) < number {
		positions = append(positions, growth.Coord{X: rng.IntN(w), Y: rng.IntN(h)})
	}

	if randomColours {
		for len(colours) < len(positions) {
			colours = append(colours, growth.RGB{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
			})
		}
	} else {
		var last growth.RGB
		if len(colours) > 0 {
			last = colours[len(colours)-1]
		}
		for len(colours) < len(positions) {
			colours = append(colours, last)
		}
	}

	seeds := make([]growth.Point, len(positions))
	for i, p := range positions {
		c := colours[i]
		seeds[i] = growth.Point{R: c.R, G: c.G, B: c.B, X: p.X, Y: p.Y}
	}
	return seeds
}

// ParseSize parses "WxH".
func ParseSize(s string) (w, h int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q: %v", ErrInvalidSize, parts[0], err)
	}
	h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q: %v", ErrInvalidSize, parts[1], err)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return w, h, nil
}

// ParsePositions parses "x,y:x,y". An empty string yields no positions.
func ParsePositions(s string) ([]growth.Coord, error) {
	if s == "" {
		return nil, nil
	}
	var out []growth.Coord
	for _, entry := range strings.Split(s, ListSeparator) {
		parts := strings.Split(entry, ValueSeparator)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPoint, entry)
		}
		x, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: x coordinate %q: %v", ErrInvalidPoint, parts[0], err)
		}
		y, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: y coordinate %q: %v", ErrInvalidPoint, parts[1], err)
		}
		out = append(out, growth.Coord{X: int(x), Y: int(y)})
	}
	return out, nil
}

// ParseColours parses "r,g,b:#rrggbb:...". An empty string yields no colours.
func ParseColours(s string) ([]growth.RGB, error) {
	if s == "" {
		return nil, nil
	}
	var out []growth.RGB
	for _, entry := range strings.Split(s, ListSeparator) {
		c, err := ParseColour(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColour parses a single "r,g,b" triple or "#rrggbb" hex colour.
func ParseColour(s string) (growth.RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return growth.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return growth.RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColour, s, err)
		}
		r, g, b := c.RGB255()
		return growth.RGB{R: r, G: g, B: b}, nil
	}

	parts := strings.Split(s, ValueSeparator)
	if len(parts) != 3 {
		return growth.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	var ch [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return growth.RGB{}, fmt.Errorf("%w: %s channel %q: %v", ErrInvalidColour, name, parts[i], err)
		}
		ch[i] = uint8(v)
	}
	return growth.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ParseKind maps a kind selector to a queue kind. An integer in [0,100]
// selects the stack with that shuffle chance; "tree" and "treerev" select the
// ordered queues; any other value falls back to the random queue.
func ParseKind(s string) growth.Kind {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 100 {
		return growth.StackKind(n)
	}
	switch s {
	case "tree":
		return growth.KindTree
	case "treerev":
		return growth.KindTreeRev
	default:
		return growth.KindRandom
	}
}

// KindInfo describes a kind selector for help output and tool listings.
type KindInfo struct {
	Selector    string `json:"selector"`
	Description string `json:"description"`
}

// Kinds lists the accepted kind selectors.
func Kinds() []KindInfo {
	return []KindInfo{
		{"0-100", "depth-first stack; the number is the chance (percent) to shuffle neighbours before pushing them"},
		{"tree", "ordered set, always grows from the smallest (r,g,b,x,y) point"},
		{"treerev", "ordered set, always grows from the largest (r,g,b,x,y) point"},
		{"default", "random pending point each step (any other value selects this too)"},
	}
}
