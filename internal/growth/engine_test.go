package growth

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQueue wraps a real queue and fails the test if a coordinate is
// ever added twice.
type recordingQueue struct {
	Queue
	t     *testing.T
	added map[Coord]bool
	adds  []Point
	pops  []Point
}

func (q *recordingQueue) Add(p Point) {
	c := Coord{p.X, p.Y}
	require.False(q.t, q.added[c], "coordinate %v added twice", c)
	q.added[c] = true
	q.adds = append(q.adds, p)
	q.Queue.Add(p)
}

func (q *recordingQueue) Pop() Point {
	p := q.Queue.Pop()
	q.pops = append(q.pops, p)
	return p
}

// recordingEngine returns an engine whose queues are wrapped; the returned
// slice collects every queue built.
func recordingEngine(t *testing.T, seed uint64) (*Engine, *[]*recordingQueue) {
	e := NewSeeded(seed)
	var built []*recordingQueue
	e.newQueue = func(k Kind, rng *rand.Rand) Queue {
		q := &recordingQueue{Queue: NewQueue(k, rng), t: t, added: map[Coord]bool{}}
		built = append(built, q)
		return q
	}
	return e, &built
}

var allKinds = []Kind{KindRandom, StackKind(0), StackKind(50), StackKind(100), KindTree, KindTreeRev}

func TestRun_CoversEveryPixelOnce(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			e, built := recordingEngine(t, 7)
			cfg := Config{
				Width:  13,
				Height: 7,
				Kind:   kind,
				Delta:  3,
				Seeds: []Point{
					{R: 10, G: 200, B: 30, X: 0, Y: 0},
					{R: 250, G: 5, B: 128, X: 12, Y: 6},
					{R: 128, G: 128, B: 128, X: 6, Y: 3},
				},
			}
			canvas, err := e.Run(cfg)
			require.NoError(t, err)
			require.Len(t, *built, 1)
			q := (*built)[0]

			total := cfg.Width * cfg.Height
			assert.Equal(t, total, canvas.Pops)
			assert.Len(t, canvas.Pix, total)
			assert.Equal(t, 3, canvas.Seeds)
			assert.Len(t, q.adds, total)
			require.Len(t, q.pops, total)

			written := make(map[Coord]bool, total)
			for _, p := range q.pops {
				c := Coord{p.X, p.Y}
				require.False(t, written[c], "pixel %v committed twice", c)
				written[c] = true
				assert.Equal(t, p.Color(), canvas.At(p.X, p.Y))
			}
			assert.Len(t, written, total)
			assert.False(t, q.HasAny())
		})
	}
}

func TestRun_SeedColoursCommittedUnchanged(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			seeds := []Point{{R: 1, G: 2, B: 3, X: 2, Y: 2}, {R: 200, G: 100, B: 50, X: 0, Y: 4}}
			canvas, err := NewSeeded(8).Run(Config{Width: 5, Height: 5, Kind: kind, Delta: 4, Seeds: seeds})
			require.NoError(t, err)
			for _, s := range seeds {
				assert.Equal(t, s.Color(), canvas.At(s.X, s.Y))
			}
		})
	}
}

// Scenario A: every pixel but the seed descends from an 8-neighbour and so
// differs from at least one neighbour by at most delta per channel.
func TestRun_SmallGridDiffusion(t *testing.T) {
	canvas, err := NewSeeded(9).Run(Config{
		Width:  4,
		Height: 4,
		Kind:   KindRandom,
		Delta:  1,
		Seeds:  []Point{{X: 0, Y: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 16, canvas.Pops)
	assert.Equal(t, RGB{}, canvas.At(0, 0))

	within := func(a, b uint8) bool { return int(a)-int(b) <= 1 && int(b)-int(a) <= 1 }
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 && y == 0 {
				continue
			}
			c := canvas.At(x, y)
			ok := false
			for _, n := range Neighbors(testRand(0), x, y, 4, 4, 0, nil) {
				nc := canvas.At(n.X, n.Y)
				if within(c.R, nc.R) && within(c.G, nc.G) && within(c.B, nc.B) {
					ok = true
					break
				}
			}
			assert.Truef(t, ok, "pixel (%d,%d) %v has no neighbour within 1", x, y, c)
		}
	}
}

// Scenario B: in a 2x2 grid the seed pop inserts each other cell once.
func TestRun_TwoByTwoExpandsOnce(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			e, built := recordingEngine(t, 10)
			canvas, err := e.Run(Config{Width: 2, Height: 2, Kind: kind, Delta: 2, Seeds: []Point{{X: 0, Y: 0}}})
			require.NoError(t, err)
			q := (*built)[0]

			require.Len(t, q.adds, 4)
			assert.Equal(t, Point{X: 0, Y: 0}, q.adds[0])
			var expanded []Coord
			for _, p := range q.adds[1:] {
				expanded = append(expanded, Coord{p.X, p.Y})
			}
			assert.ElementsMatch(t, []Coord{{1, 0}, {0, 1}, {1, 1}}, expanded)
			assert.Equal(t, 4, canvas.Pops)
		})
	}
}

// Scenario C: a zero delta is rejected before any state is built.
func TestRun_RejectsZeroDelta(t *testing.T) {
	e, built := recordingEngine(t, 11)
	canvas, err := e.Run(Config{Width: 3, Height: 3, Kind: KindRandom, Delta: 0, Seeds: []Point{{X: 1, Y: 1}}})
	assert.ErrorIs(t, err, ErrInvalidDelta)
	assert.Nil(t, canvas)
	assert.Empty(t, *built, "no queue should be built for an invalid config")
}

func TestRun_ValidationErrors(t *testing.T) {
	seed := []Point{{X: 0, Y: 0}}
	cases := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"ZeroWidth", Config{Width: 0, Height: 3, Delta: 1, Seeds: seed}, ErrInvalidSize},
		{"NegativeHeight", Config{Width: 3, Height: -1, Delta: 1, Seeds: seed}, ErrInvalidSize},
		{"NoSeeds", Config{Width: 3, Height: 3, Delta: 1}, ErrNoSeeds},
		{"SeedRight", Config{Width: 3, Height: 3, Delta: 1, Seeds: []Point{{X: 3, Y: 0}}}, ErrSeedOutOfBounds},
		{"SeedBelow", Config{Width: 3, Height: 3, Delta: 1, Seeds: []Point{{X: 0, Y: 3}}}, ErrSeedOutOfBounds},
		{"SeedNegative", Config{Width: 3, Height: 3, Delta: 1, Seeds: []Point{{X: -1, Y: 0}}}, ErrSeedOutOfBounds},
		{"BadChance", Config{Width: 3, Height: 3, Delta: 1, Seeds: seed, Kind: StackKind(101)}, ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, built := recordingEngine(t, 12)
			canvas, err := e.Run(tc.cfg)
			assert.ErrorIs(t, err, tc.err)
			assert.Nil(t, canvas)
			assert.Empty(t, *built)
		})
	}
}

func TestRun_DuplicateSeedFirstWins(t *testing.T) {
	e, built := recordingEngine(t, 13)
	canvas, err := e.Run(Config{
		Width:  3,
		Height: 3,
		Kind:   KindTree,
		Delta:  1,
		Seeds: []Point{
			{R: 255, X: 1, Y: 1},
			{B: 255, X: 1, Y: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, canvas.Seeds)
	assert.Equal(t, RGB{R: 255}, canvas.At(1, 1))
	assert.Len(t, (*built)[0].adds, 9)
}

func TestRun_TreeOrderingInsideEngine(t *testing.T) {
	for _, rev := range []bool{false, true} {
		kind := KindTree
		if rev {
			kind = KindTreeRev
		}
		t.Run(kind.String(), func(t *testing.T) {
			e := NewSeeded(14)
			pending := map[Coord]Point{}
			e.newQueue = func(k Kind, rng *rand.Rand) Queue {
				return &orderCheckQueue{Queue: NewQueue(k, rng), t: t, rev: rev, pending: pending}
			}
			_, err := e.Run(Config{
				Width: 9, Height: 9, Kind: kind, Delta: 5,
				Seeds: []Point{{R: 100, G: 100, B: 100, X: 4, Y: 4}, {R: 30, X: 0, Y: 8}},
			})
			require.NoError(t, err)
			assert.Empty(t, pending)
		})
	}
}

// orderCheckQueue asserts that every pop returns the current extreme.
type orderCheckQueue struct {
	Queue
	t       *testing.T
	rev     bool
	pending map[Coord]Point
}

func (q *orderCheckQueue) Add(p Point) {
	q.pending[Coord{p.X, p.Y}] = p
	q.Queue.Add(p)
}

func (q *orderCheckQueue) Pop() Point {
	p := q.Queue.Pop()
	for _, other := range q.pending {
		if q.rev {
			require.False(q.t, p.Less(other), "popped %v while %v pending", p, other)
		} else {
			require.False(q.t, other.Less(p), "popped %v while %v pending", p, other)
		}
	}
	delete(q.pending, Coord{p.X, p.Y})
	return p
}

func TestRun_DeterministicForSeed(t *testing.T) {
	cfg := Config{Width: 20, Height: 15, Kind: StackKind(40), Delta: 6, Seeds: []Point{{R: 90, G: 20, B: 200, X: 10, Y: 7}}}
	a, err := NewSeeded(99).Run(cfg)
	require.NoError(t, err)
	b, err := NewSeeded(99).Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	c, err := NewSeeded(100).Run(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestRun_Progress(t *testing.T) {
	var calls [][2]int
	e := NewSeeded(15, WithProgress(func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}, 5))
	_, err := e.Run(Config{Width: 4, Height: 4, Delta: 1, Seeds: []Point{{X: 0, Y: 0}}})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 16}, {5, 16}, {10, 16}, {15, 16}, {16, 16}}, calls)
}

func TestRun_SingleCell(t *testing.T) {
	canvas, err := NewSeeded(16).Run(Config{Width: 1, Height: 1, Delta: 1, Seeds: []Point{{R: 7, G: 8, B: 9}}})
	require.NoError(t, err)
	assert.Equal(t, 1, canvas.Pops)
	assert.Equal(t, []RGB{{7, 8, 9}}, canvas.Pix)
}

func TestMask(t *testing.T) {
	m := NewMask(3, 2)
	assert.False(t, m.Visited(2, 1))
	assert.True(t, m.Mark(2, 1))
	assert.True(t, m.Visited(2, 1))
	assert.False(t, m.Mark(2, 1), "second mark must report already visited")
	assert.False(t, m.Visited(1, 1))
	assert.Equal(t, 1, m.Count())
}
