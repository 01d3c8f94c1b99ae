// internal/runq/tree.go

package runq

import (
	"fmt"
	"strings"
)

// Key orders run-queue entries by virtual runtime, then by process ID.
type Key struct {
	Vruntime float64
	ID       string
}

// Compare is the total order used by the tree. Ties on vruntime fall back to
// a byte-wise comparison of the IDs, so two live entries never compare equal.
func Compare(a, b Key) int {
	switch {
	case a.Vruntime < b.Vruntime:
		return -1
	case a.Vruntime > b.Vruntime:
		return 1
	default:
		return strings.Compare(a.ID, b.ID)
	}
}

type color uint8

const (
	red color = iota
	black
)

// nilNode is the arena slot of the shared black sentinel leaf.
const nilNode int32 = 0

type node[V any] struct {
	key    Key
	value  V
	parent int32
	left   int32
	right  int32
	color  color
}

// Tree is a red-black tree of run-queue entries. Nodes live in an arena and
// reference each other by index; slot 0 is the sentinel leaf. The zero value
// is an empty tree. Not safe for concurrent use.
type Tree[V any] struct {
	nodes []node[V]
	free  []int32
	root  int32
	size  int
}

// New returns an empty tree.
func New[V any]() *Tree[V] {
	t := &Tree[V]{}
	t.init()
	return t
}

func (t *Tree[V]) init() {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node[V]{color: black})
	}
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[V]) IsEmpty() bool { return t.size == 0 }

// Len returns the number of entries.
func (t *Tree[V]) Len() int { return t.size }

// Insert adds an entry. Inserting a key equal to a live key panics.
func (t *Tree[V]) Insert(key Key, value V) {
	t.init()

	parent, cur := nilNode, t.root
	for cur != nilNode {
		parent = cur
		switch c := Compare(key, t.nodes[cur].key); {
		case c < 0:
			cur = t.nodes[cur].left
		case c > 0:
			cur = t.nodes[cur].right
		default:
			panic(fmt.Sprintf("runq: duplicate key (%v, %q)", key.Vruntime, key.ID))
		}
	}

	z := t.alloc(key, value)
	t.nodes[z].parent = parent
	switch {
	case parent == nilNode:
		t.root = z
	case Compare(key, t.nodes[parent].key) < 0:
		t.nodes[parent].left = z
	default:
		t.nodes[parent].right = z
	}
	t.size++
	t.insertFixup(z)
}

// Min returns the smallest entry without removing it.
func (t *Tree[V]) Min() (Key, V, bool) {
	if t.size == 0 {
		var zero V
		return Key{}, zero, false
	}
	n := t.nodes[t.minimum(t.root)]
	return n.key, n.value, true
}

// PopMin removes and returns the smallest entry. ok is false when the tree is
// empty.
func (t *Tree[V]) PopMin() (key Key, value V, ok bool) {
	if t.size == 0 {
		return key, value, false
	}
	z := t.minimum(t.root)
	key, value = t.nodes[z].key, t.nodes[z].value
	t.delete(z)
	t.release(z)
	t.size--
	return key, value, true
}

func (t *Tree[V]) alloc(key Key, value V) int32 {
	n := node[V]{key: key, value: value, color: red}
	if l := len(t.free); l > 0 {
		idx := t.free[l-1]
		t.free = t.free[:l-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (t *Tree[V]) release(idx int32) {
	t.nodes[idx] = node[V]{}
	t.free = append(t.free, idx)
}

func (t *Tree[V]) minimum(idx int32) int32 {
	for t.nodes[idx].left != nilNode {
		idx = t.nodes[idx].left
	}
	return idx
}

// replaceChild points parent's link to old at repl instead.
func (t *Tree[V]) replaceChild(parent, old, repl int32) {
	switch {
	case parent == nilNode:
		t.root = repl
	case t.nodes[parent].left == old:
		t.nodes[parent].left = repl
	default:
		t.nodes[parent].right = repl
	}
}

func (t *Tree[V]) rotateLeft(x int32) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != nilNode {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

func (t *Tree[V]) rotateRight(x int32) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if t.nodes[y].right != nilNode {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y
}

func (t *Tree[V]) insertFixup(z int32) {
	for t.nodes[t.nodes[z].parent].color == red {
		p := t.nodes[z].parent
		g := t.nodes[p].parent
		if p == t.nodes[g].left {
			if u := t.nodes[g].right; t.nodes[u].color == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateRight(g)
		} else {
			if u := t.nodes[g].left; t.nodes[u].color == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].color = black
}

// transplant replaces the subtree rooted at u with the one rooted at v. The
// sentinel's parent is written too; deleteFixup relies on it.
func (t *Tree[V]) transplant(u, v int32) {
	t.replaceChild(t.nodes[u].parent, u, v)
	t.nodes[v].parent = t.nodes[u].parent
}

func (t *Tree[V]) delete(z int32) {
	y := z
	removed := t.nodes[y].color
	var x int32

	switch {
	case t.nodes[z].left == nilNode:
		x = t.nodes[z].right
		t.transplant(z, x)
	case t.nodes[z].right == nilNode:
		x = t.nodes[z].left
		t.transplant(z, x)
	default:
		y = t.minimum(t.nodes[z].right)
		removed = t.nodes[y].color
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			t.nodes[x].parent = y
		} else {
			t.transplant(y, t.nodes[y].right)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.transplant(z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].color = t.nodes[z].color
	}

	if removed == black {
		t.deleteFixup(x)
	}
	t.nodes[nilNode] = node[V]{color: black}
}

// deleteFixup resolves the double-black left at x after removing a black node.
func (t *Tree[V]) deleteFixup(x int32) {
	for x != t.root && t.nodes[x].color == black {
		p := t.nodes[x].parent
		if x == t.nodes[p].left {
			w := t.nodes[p].right
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateLeft(p)
				w = t.nodes[p].right
			}
			if t.nodes[t.nodes[w].left].color == black && t.nodes[t.nodes[w].right].color == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.nodes[t.nodes[w].right].color == black {
				t.nodes[t.nodes[w].left].color = black
				t.nodes[w].color = red
				t.rotateRight(w)
				w = t.nodes[p].right
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].right].color = black
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.nodes[p].left
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateRight(p)
				w = t.nodes[p].left
			}
			if t.nodes[t.nodes[w].right].color == black && t.nodes[t.nodes[w].left].color == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.nodes[t.nodes[w].left].color == black {
				t.nodes[t.nodes[w].right].color = black
				t.nodes[w].color = red
				t.rotateLeft(w)
				w = t.nodes[p].left
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].left].color = black
			t.rotateRight(p)
			x = t.root
		}
	}
	t.nodes[x].color = black
}
