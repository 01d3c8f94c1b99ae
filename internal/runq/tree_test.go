package runq

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// check verifies the red-black and search-tree invariants and returns the
// black height of the tree.
func (t *Tree[V]) check() (int, error) {
	if t.nodes[nilNode].color != black {
		return 0, fmt.Errorf("sentinel is not black")
	}
	if t.root != nilNode {
		if t.nodes[t.root].color != black {
			return 0, fmt.Errorf("root is red")
		}
		if t.nodes[t.root].parent != nilNode {
			return 0, fmt.Errorf("root has a parent")
		}
	}
	count := 0
	var walk func(idx int32, lo, hi *Key) (int, error)
	walk = func(idx int32, lo, hi *Key) (int, error) {
		if idx == nilNode {
			return 1, nil
		}
		count++
		n := t.nodes[idx]
		if lo != nil && Compare(n.key, *lo) <= 0 {
			return 0, fmt.Errorf("node %q out of order", n.key.ID)
		}
		if hi != nil && Compare(n.key, *hi) >= 0 {
			return 0, fmt.Errorf("node %q out of order", n.key.ID)
		}
		for _, child := range []int32{n.left, n.right} {
			if child == nilNode {
				continue
			}
			if t.nodes[child].parent != idx {
				return 0, fmt.Errorf("broken parent link under %q", n.key.ID)
			}
			if n.color == red && t.nodes[child].color == red {
				return 0, fmt.Errorf("red node %q has a red child", n.key.ID)
			}
		}
		lh, err := walk(n.left, lo, &n.key)
		if err != nil {
			return 0, err
		}
		rh, err := walk(n.right, &n.key, hi)
		if err != nil {
			return 0, err
		}
		if lh != rh {
			return 0, fmt.Errorf("black height mismatch at %q: %d vs %d", n.key.ID, lh, rh)
		}
		if n.color == black {
			lh++
		}
		return lh, nil
	}
	h, err := walk(t.root, nil, nil)
	if err != nil {
		return 0, err
	}
	if count != t.size {
		return 0, fmt.Errorf("size %d but %d reachable nodes", t.size, count)
	}
	return h, nil
}

func TestCompare_OrdersByVruntimeThenID(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{Key{1, "B"}, Key{2, "A"}, -1},
		{Key{2, "A"}, Key{1, "B"}, 1},
		{Key{1, "A"}, Key{1, "B"}, -1},
		{Key{1, "b"}, Key{1, "B"}, 1},
		{Key{1, "P10"}, Key{1, "P2"}, -1},
		{Key{0.5, "X"}, Key{0.5, "X"}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.a, tt.b), "Compare(%v, %v)", tt.a, tt.b)
	}
}

func TestTree_Empty(t *testing.T) {
	var tr Tree[string]
	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 0, tr.Len())

	_, _, ok := tr.PopMin()
	assert.False(t, ok, "PopMin on an empty tree must report empty")
	_, _, ok = tr.Min()
	assert.False(t, ok)
}

func TestTree_PopMinReturnsAscendingKeys(t *testing.T) {
	// GIVEN entries inserted out of order, including vruntime ties
	tr := New[int]()
	keys := []Key{{5, "E"}, {1, "B"}, {3, "C"}, {1, "A"}, {0, "Z"}, {3, "B"}}
	for i, k := range keys {
		tr.Insert(k, i)
		_, err := tr.check()
		require.NoError(t, err)
	}

	// WHEN every entry is popped
	var got []Key
	for !tr.IsEmpty() {
		k, v, ok := tr.PopMin()
		require.True(t, ok)
		assert.Equal(t, keys[v], k, "value must travel with its key")
		got = append(got, k)
		_, err := tr.check()
		require.NoError(t, err)
	}

	// THEN keys come out in comparator order
	want := []Key{{0, "Z"}, {1, "A"}, {1, "B"}, {3, "B"}, {3, "C"}, {5, "E"}}
	assert.Equal(t, want, got)
	assert.True(t, tr.IsEmpty())
}

func TestTree_DuplicateKeyPanics(t *testing.T) {
	tr := New[int]()
	tr.Insert(Key{1, "A"}, 1)
	assert.Panics(t, func() { tr.Insert(Key{1, "A"}, 2) })
}

func TestTree_ReusesReleasedSlots(t *testing.T) {
	tr := New[int]()
	for i := 0; i < 8; i++ {
		tr.Insert(Key{float64(i), "P"}, i)
	}
	for i := 0; i < 8; i++ {
		tr.PopMin()
	}
	arena := len(tr.nodes)
	for i := 0; i < 8; i++ {
		tr.Insert(Key{float64(i), "Q"}, i)
	}
	assert.Equal(t, arena, len(tr.nodes), "arena must not grow while free slots exist")
	_, err := tr.check()
	assert.NoError(t, err)
}

func TestTree_HeightStaysLogarithmic(t *testing.T) {
	// GIVEN a strictly increasing insert sequence, the worst case for an
	// unbalanced BST
	tr := New[int]()
	const n = 1 << 12
	for i := 0; i < n; i++ {
		tr.Insert(Key{float64(i), "P"}, i)
	}

	// THEN the black height is bounded by log2(n+1)
	bh, err := tr.check()
	require.NoError(t, err)
	assert.LessOrEqual(t, bh, 13)
}

// TestTree_MatchesReferenceTree drives the arena tree and a reference
// red-black tree with the same random insert / pop-min sequence.
func TestTree_MatchesReferenceTree(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			tr := New[string]()
			ref := redblacktree.NewWith(func(a, b interface{}) int {
				return Compare(a.(Key), b.(Key))
			})

			next := 0
			for step := 0; step < 2000; step++ {
				if ref.Empty() || rng.Intn(3) != 0 {
					// few distinct vruntimes so the ID tie-break is exercised
					k := Key{Vruntime: float64(rng.Intn(50)) / 4, ID: fmt.Sprintf("P%d", next)}
					next++
					tr.Insert(k, k.ID)
					ref.Put(k, k.ID)
				} else {
					k, v, ok := tr.PopMin()
					require.True(t, ok)
					left := ref.Left()
					require.Equal(t, left.Key, k, "step %d", step)
					require.Equal(t, left.Value, v)
					ref.Remove(left.Key)
				}
				require.Equal(t, ref.Size(), tr.Len())
				if step%50 == 0 {
					_, err := tr.check()
					require.NoError(t, err, "step %d", step)
				}
			}

			// drain both
			for !ref.Empty() {
				k, _, ok := tr.PopMin()
				require.True(t, ok)
				left := ref.Left()
				require.Equal(t, left.Key, k)
				ref.Remove(left.Key)
			}
			assert.True(t, tr.IsEmpty())
		})
	}
}

func TestTree_NInsertsNPopsLeavesEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := New[int]()
	keys := make([]Key, 0, 500)
	for i := 0; i < 500; i++ {
		k := Key{Vruntime: rng.Float64() * 100, ID: fmt.Sprintf("P%03d", i)}
		keys = append(keys, k)
		tr.Insert(k, i)
	}
	sort.Slice(keys, func(i, j int) bool { return Compare(keys[i], keys[j]) < 0 })

	for _, want := range keys {
		got, _, ok := tr.PopMin()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, tr.IsEmpty())
	_, _, ok := tr.PopMin()
	assert.False(t, ok)
}
