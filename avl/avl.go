// Package avl implements a height-balanced binary search tree over ordered keys.
//
// Every node keeps the height of its subtree and after each mutation the heights
// of the two subtrees of any node differ by at most one, so search, insert and
// delete run in O(log n) in the worst case.
//
// Nodes are stored in a slice owned by the tree and linked by index instead of
// by pointer. Insert and delete walk down once recording the path and walk back
// up along it, so the call stack does not grow with the tree.
package avl

import (
	"cmp"
	"iter"

	"github.com/yeqown/ordtree/internal/render"
)

// null is the index of the sentinel slot, it stands for an absent subtree.
const null int32 = 0

type node[K cmp.Ordered] struct {
	key    K
	height int32 // leaf height is 1, the sentinel keeps 0.
	left   int32
	right  int32
}

// Entry is a (key, height) pair exposed by PreOrder for structural inspection.
type Entry[K cmp.Ordered] struct {
	Key    K
	Height int
}

// Tree is an AVL tree holding a set of distinct keys.
//
// Tree is not safe for concurrent use. If one goroutine modifies the tree while
// others read it, access must be synchronized externally.
//
// The zero value is an empty tree ready to use.
type Tree[K cmp.Ordered] struct {
	nodes []node[K]
	free  []int32
	root  int32
	count int
}

// New returns an empty AVL tree.
func New[K cmp.Ordered]() *Tree[K] {
	t := &Tree[K]{}
	t.init()
	return t
}

func (t *Tree[K]) init() {
	if len(t.nodes) == 0 {
		t.nodes = make([]node[K], 1, 64)
	}
}

// step is one hop of a root-to-node path: the node and the side taken from it.
type step struct {
	idx  int32
	left bool
}

func (t *Tree[K]) height(n int32) int32 {
	return t.nodes[n].height
}

func (t *Tree[K]) update(n int32) {
	nd := &t.nodes[n]
	nd.height = 1 + max(t.nodes[nd.left].height, t.nodes[nd.right].height)
}

// balance returns height(left) - height(right), 0 for the sentinel.
func (t *Tree[K]) balance(n int32) int32 {
	if n == null {
		return 0
	}
	nd := &t.nodes[n]
	return t.nodes[nd.left].height - t.nodes[nd.right].height
}

// rotateRight promotes z's left child y into z's place and returns y.
// y's right subtree becomes z's left subtree.
func (t *Tree[K]) rotateRight(z int32) int32 {
	y := t.nodes[z].left
	t.nodes[z].left = t.nodes[y].right
	t.nodes[y].right = z

	// z first, y's height depends on it.
	t.update(z)
	t.update(y)
	return y
}

// rotateLeft is the mirror of rotateRight.
func (t *Tree[K]) rotateLeft(z int32) int32 {
	y := t.nodes[z].right
	t.nodes[z].right = t.nodes[y].left
	t.nodes[y].left = z

	t.update(z)
	t.update(y)
	return y
}

// relink makes sub the child of the path entry above position i, or the root.
func (t *Tree[K]) relink(path []step, i int, sub int32) {
	if i == 0 {
		t.root = sub
		return
	}
	parent := path[i-1]
	if parent.left {
		t.nodes[parent.idx].left = sub
	} else {
		t.nodes[parent.idx].right = sub
	}
}

func (t *Tree[K]) alloc(key K) int32 {
	nd := node[K]{key: key, height: 1}
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = nd
		return idx
	}
	t.nodes = append(t.nodes, nd)
	return int32(len(t.nodes) - 1)
}

func (t *Tree[K]) release(idx int32) {
	t.nodes[idx] = node[K]{}
	t.free = append(t.free, idx)
}

// Search reports whether key is present.
func (t *Tree[K]) Search(key K) bool {
	if len(t.nodes) == 0 {
		return false
	}
	n := t.root
	for n != null {
		nd := &t.nodes[n]
		switch c := cmp.Compare(key, nd.key); {
		case c == 0:
			return true
		case c < 0:
			n = nd.left
		default:
			n = nd.right
		}
	}
	return false
}

// Insert adds key to the tree. Inserting a key already present leaves the tree
// unchanged.
func (t *Tree[K]) Insert(key K) {
	t.init()

	path := make([]step, 0, t.height(t.root)+1)
	n := t.root
	for n != null {
		nd := &t.nodes[n]
		c := cmp.Compare(key, nd.key)
		if c == 0 {
			return
		}
		path = append(path, step{idx: n, left: c < 0})
		if c < 0 {
			n = nd.left
		} else {
			n = nd.right
		}
	}

	leaf := t.alloc(key)
	t.count++
	if len(path) == 0 {
		t.root = leaf
		return
	}
	last := path[len(path)-1]
	if last.left {
		t.nodes[last.idx].left = leaf
	} else {
		t.nodes[last.idx].right = leaf
	}

	for i := len(path) - 1; i >= 0; i-- {
		sub := t.rebalanceInsert(path[i].idx, key)
		if sub != path[i].idx {
			t.relink(path, i, sub)
		}
	}
}

// rebalanceInsert refreshes n's height and applies at most one of the four
// rotation cases, chosen by comparing the inserted key with the child's key.
// It returns the root of the rebalanced subtree.
func (t *Tree[K]) rebalanceInsert(n int32, key K) int32 {
	t.update(n)
	bf := t.balance(n)

	switch {
	case bf > 1:
		left := t.nodes[n].left
		if cmp.Compare(key, t.nodes[left].key) > 0 {
			t.nodes[n].left = t.rotateLeft(left)
		}
		return t.rotateRight(n)
	case bf < -1:
		right := t.nodes[n].right
		if cmp.Compare(key, t.nodes[right].key) < 0 {
			t.nodes[n].right = t.rotateRight(right)
		}
		return t.rotateLeft(n)
	}
	return n
}

// Delete removes key from the tree. Deleting an absent key leaves the tree
// unchanged.
//
// A node with two children takes over the key of its in-order successor and the
// successor node is spliced out of the right subtree instead.
func (t *Tree[K]) Delete(key K) {
	if len(t.nodes) == 0 {
		return
	}

	path := make([]step, 0, t.height(t.root)+1)
	n := t.root
	for n != null {
		nd := &t.nodes[n]
		c := cmp.Compare(key, nd.key)
		if c == 0 {
			break
		}
		path = append(path, step{idx: n, left: c < 0})
		if c < 0 {
			n = nd.left
		} else {
			n = nd.right
		}
	}
	if n == null {
		return
	}

	victim := n
	if t.nodes[n].left != null && t.nodes[n].right != null {
		// the successor is the leftmost node of the right subtree.
		path = append(path, step{idx: n, left: false})
		s := t.nodes[n].right
		for t.nodes[s].left != null {
			path = append(path, step{idx: s, left: true})
			s = t.nodes[s].left
		}
		t.nodes[n].key = t.nodes[s].key
		victim = s
	}

	// victim has at most one child now.
	child := t.nodes[victim].left
	if child == null {
		child = t.nodes[victim].right
	}
	t.relink(path, len(path), child)
	t.release(victim)
	t.count--

	for i := len(path) - 1; i >= 0; i-- {
		sub := t.rebalanceDelete(path[i].idx)
		if sub != path[i].idx {
			t.relink(path, i, sub)
		}
	}
}

// rebalanceDelete is like rebalanceInsert, but the rotation case is chosen by the
// balance factor of the heavier child.
func (t *Tree[K]) rebalanceDelete(n int32) int32 {
	t.update(n)
	bf := t.balance(n)

	switch {
	case bf > 1:
		left := t.nodes[n].left
		if t.balance(left) < 0 {
			t.nodes[n].left = t.rotateLeft(left)
		}
		return t.rotateRight(n)
	case bf < -1:
		right := t.nodes[n].right
		if t.balance(right) > 0 {
			t.nodes[n].right = t.rotateRight(right)
		}
		return t.rotateLeft(n)
	}
	return n
}

// Size returns the number of keys in the tree.
func (t *Tree[K]) Size() int {
	return t.count
}

// Height returns the height of the tree, 0 when empty.
func (t *Tree[K]) Height() int {
	if len(t.nodes) == 0 {
		return 0
	}
	return int(t.height(t.root))
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K]) IsEmpty() bool {
	return t.count == 0
}

// All returns an iterator over the keys in ascending order. The tree must not
// be modified while iterating.
func (t *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if len(t.nodes) == 0 {
			return
		}
		stack := make([]int32, 0, t.height(t.root))
		n := t.root
		for n != null || len(stack) > 0 {
			for n != null {
				stack = append(stack, n)
				n = t.nodes[n].left
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(t.nodes[n].key) {
				return
			}
			n = t.nodes[n].right
		}
	}
}

// InOrder returns all keys in ascending order.
func (t *Tree[K]) InOrder() []K {
	keys := make([]K, 0, t.count)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// PreOrder returns (key, height) pairs in node, left, right order.
func (t *Tree[K]) PreOrder() []Entry[K] {
	entries := make([]Entry[K], 0, t.count)
	if t.count == 0 {
		return entries
	}
	stack := []int32{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[n]
		entries = append(entries, Entry[K]{Key: nd.key, Height: int(nd.height)})
		if nd.right != null {
			stack = append(stack, nd.right)
		}
		if nd.left != null {
			stack = append(stack, nd.left)
		}
	}
	return entries
}

// IsBalanced walks the whole tree and reports whether every node satisfies the
// AVL bound, stores the correct height and respects key order. The operations
// keep these properties incrementally; IsBalanced is meant for verification.
func (t *Tree[K]) IsBalanced() bool {
	if t.count == 0 {
		return true
	}
	_, ok := t.check(t.root, nil, nil)
	return ok
}

func (t *Tree[K]) check(n int32, lo, hi *K) (int32, bool) {
	if n == null {
		return 0, true
	}
	nd := &t.nodes[n]
	if (lo != nil && nd.key <= *lo) || (hi != nil && nd.key >= *hi) {
		return 0, false
	}
	lh, ok := t.check(nd.left, lo, &nd.key)
	if !ok {
		return 0, false
	}
	rh, ok := t.check(nd.right, &nd.key, hi)
	if !ok {
		return 0, false
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, false
	}
	h := 1 + max(lh, rh)
	return h, h == nd.height
}

// String renders the tree sideways, right subtree on top.
// Should not be used to print out large trees.
func (t *Tree[K]) String() string {
	if t == nil || t.count == 0 {
		return render.Empty
	}
	return render.Tree(t.root, null, render.Accessors{
		Left:  func(n int32) int32 { return t.nodes[n].left },
		Right: func(n int32) int32 { return t.nodes[n].right },
		Label: func(n int32) string {
			return render.Label(t.nodes[n].key, "h=%d", t.nodes[n].height)
		},
	})
}
