package growth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors_CanonicalOrder(t *testing.T) {
	rng := testRand(10)
	got := Neighbors(rng, 1, 1, 3, 3, 0, nil)
	want := []Coord{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}
	assert.Equal(t, want, got)
}

func TestNeighbors_Bounds(t *testing.T) {
	rng := testRand(11)
	cases := []struct {
		name       string
		x, y, w, h int
		want       []Coord
	}{
		{"TopLeft", 0, 0, 4, 4, []Coord{{0, 1}, {1, 0}, {1, 1}}},
		{"BottomRight", 3, 3, 4, 4, []Coord{{2, 2}, {2, 3}, {3, 2}}},
		{"TopEdge", 2, 0, 4, 4, []Coord{{1, 0}, {1, 1}, {2, 1}, {3, 0}, {3, 1}}},
		{"SingleCell", 0, 0, 1, 1, nil},
		{"Row", 1, 0, 3, 1, []Coord{{0, 0}, {2, 0}}},
		{"Column", 0, 1, 1, 3, []Coord{{0, 0}, {0, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Neighbors(rng, tc.x, tc.y, tc.w, tc.h, 0, nil)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNeighbors_ShuffleKeepsSet(t *testing.T) {
	rng := testRand(12)
	canonical := Neighbors(rng, 5, 5, 10, 10, 0, nil)
	reordered := false
	for i := 0; i < 50; i++ {
		got := Neighbors(rng, 5, 5, 10, 10, 100, nil)
		require.ElementsMatch(t, canonical, got)
		if !assert.ObjectsAreEqual(canonical, got) {
			reordered = true
		}
	}
	assert.True(t, reordered, "chance 100 never changed the order in 50 calls")
}

func TestNeighbors_AppendsToDst(t *testing.T) {
	rng := testRand(13)
	dst := []Coord{{9, 9}}
	got := Neighbors(rng, 0, 0, 2, 2, 100, dst)
	require.Len(t, got, 4)
	assert.Equal(t, Coord{9, 9}, got[0], "prefix must survive shuffling")
	assert.ElementsMatch(t, []Coord{{0, 1}, {1, 0}, {1, 1}}, got[1:])
}
