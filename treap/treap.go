// Package treap implements a randomized binary search tree over ordered keys.
//
// Each node carries a priority drawn at insertion time and the tree is kept
// in max-heap order by priority, which gives an expected O(log n) depth. A
// pathological sequence of priorities can still degrade it to O(n).
//
// Like package avl, nodes live in a slice owned by the tree and are linked by
// index, and insert/delete are iterative.
package treap

import (
	"cmp"
	"iter"

	"github.com/yeqown/ordtree/internal/render"
)

const null int32 = 0

type node[K cmp.Ordered] struct {
	key      K
	priority float64
	left     int32
	right    int32
}

// Entry is a (key, priority) pair exposed by PreOrder.
type Entry[K cmp.Ordered] struct {
	Key      K
	Priority float64
}

// Treap is a set of distinct keys kept as a treap.
//
// Treap is not safe for concurrent use. Unlike avl.Tree, its zero value is not
// usable: create it with New.
type Treap[K cmp.Ordered] struct {
	nodes []node[K]
	free  []int32
	root  int32
	count int

	priorities PrioritySource
}

// New returns an empty treap.
func New[K cmp.Ordered](options ...Option) *Treap[K] {
	opt := defaultOptions()
	for _, o := range options {
		o.apply(opt)
	}

	return &Treap[K]{
		nodes:      make([]node[K], 1, 64),
		priorities: opt.priorities,
	}
}

type step struct {
	idx  int32
	left bool
}

func (t *Treap[K]) priority(n int32) float64 {
	return t.nodes[n].priority
}

// rotateRight promotes n's left child and returns it.
func (t *Treap[K]) rotateRight(n int32) int32 {
	l := t.nodes[n].left
	t.nodes[n].left = t.nodes[l].right
	t.nodes[l].right = n
	return l
}

// rotateLeft promotes n's right child and returns it.
func (t *Treap[K]) rotateLeft(n int32) int32 {
	r := t.nodes[n].right
	t.nodes[n].right = t.nodes[r].left
	t.nodes[r].left = n
	return r
}

func (t *Treap[K]) relink(path []step, i int, sub int32) {
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

func (t *Treap[K]) child(s step) int32 {
	if s.left {
		return t.nodes[s.idx].left
	}
	return t.nodes[s.idx].right
}

func (t *Treap[K]) alloc(key K, priority float64) int32 {
	nd := node[K]{key: key, priority: priority}
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = nd
		return idx
	}
	t.nodes = append(t.nodes, nd)
	return int32(len(t.nodes) - 1)
}

func (t *Treap[K]) release(idx int32) {
	t.nodes[idx] = node[K]{}
	t.free = append(t.free, idx)
}

// Search reports whether key is present.
func (t *Treap[K]) Search(key K) bool {
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

// Insert adds key with a priority drawn from the treap's PrioritySource.
// Inserting a key already present leaves the treap unchanged and consumes no
// priority.
func (t *Treap[K]) Insert(key K) {
	t.insert(key, 0, false)
}

// InsertWithPriority adds key with the given priority. It is mostly useful to
// build a known shape.
func (t *Treap[K]) InsertWithPriority(key K, priority float64) {
	t.insert(key, priority, true)
}

func (t *Treap[K]) insert(key K, priority float64, explicit bool) {
	var path []step
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

	if !explicit {
		priority = t.priorities.Float64()
	}
	leaf := t.alloc(key, priority)
	t.count++
	t.relink(path, len(path), leaf)

	// bubble the new node up while it outranks its parent.
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		c := t.child(p)
		if t.priority(c) <= t.priority(p.idx) {
			break
		}
		var sub int32
		if p.left {
			sub = t.rotateRight(p.idx)
		} else {
			sub = t.rotateLeft(p.idx)
		}
		t.relink(path, i, sub)
	}
}

// Delete removes key from the treap. Deleting an absent key leaves the treap
// unchanged.
//
// A node with two children is rotated down towards its higher priority child
// until it has at most one child, then spliced out.
func (t *Treap[K]) Delete(key K) {
	var path []step
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

	for t.nodes[n].left != null && t.nodes[n].right != null {
		l, r := t.nodes[n].left, t.nodes[n].right
		var sub int32
		var s step
		if t.priority(l) > t.priority(r) {
			sub = t.rotateRight(n)
			s = step{idx: sub, left: false}
		} else {
			sub = t.rotateLeft(n)
			s = step{idx: sub, left: true}
		}
		t.relink(path, len(path), sub)
		path = append(path, s)
	}

	child := t.nodes[n].left
	if child == null {
		child = t.nodes[n].right
	}
	t.relink(path, len(path), child)
	t.release(n)
	t.count--
}

// Size returns the number of keys in the treap.
func (t *Treap[K]) Size() int {
	return t.count
}

// IsEmpty reports whether the treap holds no keys.
func (t *Treap[K]) IsEmpty() bool {
	return t.count == 0
}

// Height returns the number of nodes on the longest root-to-leaf path, 0 when
// empty. The treap does not cache heights, so this walks every node.
func (t *Treap[K]) Height() int {
	if t.root == null {
		return 0
	}
	type frame struct {
		idx   int32
		depth int
	}
	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, f.depth)
		if l := t.nodes[f.idx].left; l != null {
			stack = append(stack, frame{l, f.depth + 1})
		}
		if r := t.nodes[f.idx].right; r != null {
			stack = append(stack, frame{r, f.depth + 1})
		}
	}
	return height
}

// All returns an iterator over the keys in ascending order. The treap must not
// be modified while iterating.
func (t *Treap[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		var stack []int32
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
func (t *Treap[K]) InOrder() []K {
	keys := make([]K, 0, t.count)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// PreOrder returns (key, priority) pairs in node, left, right order.
func (t *Treap[K]) PreOrder() []Entry[K] {
	entries := make([]Entry[K], 0, t.count)
	if t.root == null {
		return entries
	}
	stack := []int32{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[n]
		entries = append(entries, Entry[K]{Key: nd.key, Priority: nd.priority})
		if nd.right != null {
			stack = append(stack, nd.right)
		}
		if nd.left != null {
			stack = append(stack, nd.left)
		}
	}
	return entries
}

// IsHeapOrdered reports whether every node's priority is at least the
// priorities of its children and keys respect BST order.
func (t *Treap[K]) IsHeapOrdered() bool {
	return t.check(t.root, nil, nil)
}

func (t *Treap[K]) check(n int32, lo, hi *K) bool {
	if n == null {
		return true
	}
	nd := &t.nodes[n]
	if (lo != nil && nd.key <= *lo) || (hi != nil && nd.key >= *hi) {
		return false
	}
	if nd.left != null && t.priority(nd.left) > nd.priority {
		return false
	}
	if nd.right != null && t.priority(nd.right) > nd.priority {
		return false
	}
	return t.check(nd.left, lo, &nd.key) && t.check(nd.right, &nd.key, hi)
}

// String renders the treap sideways, right subtree on top.
// Should not be used to print out large treaps.
func (t *Treap[K]) String() string {
	if t == nil || t.root == null {
		return render.Empty
	}
	return render.Tree(t.root, null, render.Accessors{
		Left:  func(n int32) int32 { return t.nodes[n].left },
		Right: func(n int32) int32 { return t.nodes[n].right },
		Label: func(n int32) string {
			return render.Label(t.nodes[n].key, "%.3f", t.nodes[n].priority)
		},
	})
}
