package growth

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/btree"
)

// Queue holds the points that have been discovered but not yet painted.
// The removal policy of the implementation decides the growth pattern.
type Queue interface {
	// Add inserts a point. Tree queues ignore a point equal to one they hold.
	Add(p Point)

	// Pop removes and returns one point. It panics on an empty queue; callers
	// check HasAny first.
	Pop() Point

	// HasAny reports whether at least one point is pending.
	HasAny() bool

	// ShuffleChance is the 0-100 chance of shuffling neighbours before they
	// are added. Only the stack queue returns a non-zero value.
	ShuffleChance() int
}

// Policy names a queue removal policy.
type Policy int

const (
	// Random takes a uniformly random pending point.
	Random Policy = iota
	// Stack takes the most recently added point.
	Stack
	// Tree takes the smallest point by (R, G, B, X, Y).
	Tree
	// TreeRev takes the largest point by (R, G, B, X, Y).
	TreeRev
)

func (p Policy) String() string {
	switch p {
	case Random:
		return "random"
	case Stack:
		return "stack"
	case Tree:
		return "tree"
	case TreeRev:
		return "treerev"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Kind selects the queue used for a run.
type Kind struct {
	Policy Policy `json:"policy"`
	// Chance is the neighbour shuffle chance (0-100), used by Stack only.
	Chance int `json:"chance,omitempty"`
}

var (
	KindRandom  = Kind{Policy: Random}
	KindTree    = Kind{Policy: Tree}
	KindTreeRev = Kind{Policy: TreeRev}
)

// StackKind returns the stack kind with the given shuffle chance.
func StackKind(chance int) Kind {
	return Kind{Policy: Stack, Chance: chance}
}

func (k Kind) String() string {
	if k.Policy == Stack {
		return fmt.Sprintf("stack(%d%%)", k.Chance)
	}
	return k.Policy.String()
}

// Validate checks that the kind names a known policy and, for Stack, that the
// chance lies in [0, 100].
func (k Kind) Validate() error {
	switch k.Policy {
	case Random, Tree, TreeRev:
		return nil
	case Stack:
		if k.Chance < 0 || k.Chance > 100 {
			return fmt.Errorf("%w: shuffle chance %d not in [0,100]", ErrInvalidKind, k.Chance)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKind, k.Policy)
	}
}

// NewQueue builds an empty queue for kind. The random queue draws from rng.
func NewQueue(kind Kind, rng *rand.Rand) Queue {
	switch kind.Policy {
	case Stack:
		return &stackQueue{chance: kind.Chance}
	case Tree:
		return newTreeQueue(false)
	case TreeRev:
		return newTreeQueue(true)
	default:
		return &randomQueue{rng: rng}
	}
}

// randomQueue is an unordered bag.
type randomQueue struct {
	rng    *rand.Rand
	points []Point
}

func (q *randomQueue) Add(p Point) { q.points = append(q.points, p) }

func (q *randomQueue) Pop() Point {
	n := len(q.points)
	if n == 0 {
		panic("growth: Pop on empty random queue")
	}
	i := q.rng.IntN(n)
	p := q.points[i]
	// Order inside the bag is irrelevant, so swap-remove keeps Pop O(1).
	q.points[i] = q.points[n-1]
	q.points = q.points[:n-1]
	return p
}

func (q *randomQueue) HasAny() bool       { return len(q.points) > 0 }
func (q *randomQueue) ShuffleChance() int { return 0 }

// stackQueue is LIFO.
type stackQueue struct {
	chance int
	points []Point
}

func (q *stackQueue) Add(p Point) { q.points = append(q.points, p) }

func (q *stackQueue) Pop() Point {
	n := len(q.points)
	if n == 0 {
		panic("growth: Pop on empty stack queue")
	}
	p := q.points[n-1]
	q.points = q.points[:n-1]
	return p
}

func (q *stackQueue) HasAny() bool       { return len(q.points) > 0 }
func (q *stackQueue) ShuffleChance() int { return q.chance }

// treeDegree is the B-tree node degree used by the ordered queues.
const treeDegree = 32

// treeQueue is an ordered set; rev selects max-first removal.
type treeQueue struct {
	rev  bool
	tree *btree.BTreeG[Point]
}

func newTreeQueue(rev bool) *treeQueue {
	return &treeQueue{
		rev:  rev,
		tree: btree.NewG(treeDegree, Point.Less),
	}
}

func (q *treeQueue) Add(p Point) { q.tree.ReplaceOrInsert(p) }

func (q *treeQueue) Pop() Point {
	var (
		p  Point
		ok bool
	)
	if q.rev {
		p, ok = q.tree.DeleteMax()
	} else {
		p, ok = q.tree.DeleteMin()
	}
	if !ok {
		panic("growth: Pop on empty tree queue")
	}
	return p
}

func (q *treeQueue) HasAny() bool       { return q.tree.Len() > 0 }
func (q *treeQueue) ShuffleChance() int { return 0 }
