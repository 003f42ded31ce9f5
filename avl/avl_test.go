package avl

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var demoKeys = []int{10, 5, 15, 3, 7, 12, 18, 1, 4, 6, 8}

type avlTestSuite struct {
	suite.Suite

	tree *Tree[int]
}

func (su *avlTestSuite) SetupTest() {
	su.tree = New[int]()
	for _, k := range demoKeys {
		su.tree.Insert(k)
	}
}

func (su *avlTestSuite) Test_Tree_Build() {
	su.Equal([]int{1, 3, 4, 5, 6, 7, 8, 10, 12, 15, 18}, su.tree.InOrder())
	su.Equal(11, su.tree.Size())
	su.Equal(4, su.tree.Height())
	su.True(su.tree.IsBalanced())
	su.False(su.tree.IsEmpty())
}

func (su *avlTestSuite) Test_Tree_Search() {
	for _, k := range demoKeys {
		su.True(su.tree.Search(k), "key %d", k)
	}
	for _, k := range []int{0, 2, 9, 20, 25} {
		su.False(su.tree.Search(k), "key %d", k)
	}
}

func (su *avlTestSuite) Test_Tree_DeleteTwoChildren() {
	su.tree.Delete(10)

	su.Equal([]int{1, 3, 4, 5, 6, 7, 8, 12, 15, 18}, su.tree.InOrder())
	su.Equal(10, su.tree.Size())
	su.True(su.tree.IsBalanced())
	su.False(su.tree.Search(10))

	// the successor took over the root.
	pre := su.tree.PreOrder()
	su.Require().NotEmpty(pre)
	su.Equal(12, pre[0].Key)
}

func (su *avlTestSuite) Test_Tree_DeleteSequence() {
	su.tree.Delete(1)
	su.Equal([]int{3, 4, 5, 6, 7, 8, 10, 12, 15, 18}, su.tree.InOrder())
	su.True(su.tree.IsBalanced())

	su.tree.Delete(15)
	su.Equal([]int{3, 4, 5, 6, 7, 8, 10, 12, 18}, su.tree.InOrder())
	su.True(su.tree.IsBalanced())

	su.tree.Delete(10)
	su.Equal([]int{3, 4, 5, 6, 7, 8, 12, 18}, su.tree.InOrder())
	su.Equal(8, su.tree.Size())
	su.True(su.tree.IsBalanced())
}

func (su *avlTestSuite) Test_Tree_Idempotence() {
	before := su.tree.InOrder()

	su.tree.Insert(7)
	su.Equal(before, su.tree.InOrder())
	su.Equal(11, su.tree.Size())

	su.tree.Delete(100)
	su.Equal(before, su.tree.InOrder())
	su.Equal(11, su.tree.Size())
}

func (su *avlTestSuite) Test_Tree_RoundTrip() {
	before := su.tree.InOrder()

	su.tree.Insert(9)
	su.True(su.tree.Search(9))
	su.tree.Delete(9)

	su.Equal(before, su.tree.InOrder())
	su.True(su.tree.IsBalanced())
}

func (su *avlTestSuite) Test_Tree_PreOrder() {
	want := []Entry[int]{
		{10, 4}, {5, 3}, {3, 2}, {1, 1}, {4, 1}, {7, 2}, {6, 1}, {8, 1},
		{15, 2}, {12, 1}, {18, 1},
	}
	su.Equal(want, su.tree.PreOrder())
}

func (su *avlTestSuite) Test_Tree_DrainAll() {
	for _, k := range demoKeys {
		su.tree.Delete(k)
		su.True(su.tree.IsBalanced())
	}
	su.True(su.tree.IsEmpty())
	su.Equal(0, su.tree.Height())
	su.Empty(su.tree.InOrder())

	// freed slots are reused.
	slots := len(su.tree.nodes)
	for _, k := range demoKeys {
		su.tree.Insert(k)
	}
	su.Equal(slots, len(su.tree.nodes))
	su.Equal(11, su.tree.Size())
}

func Test_Tree(t *testing.T) {
	suite.Run(t, new(avlTestSuite))
}

func Test_Tree_rotationCases(t *testing.T) {
	tests := []struct {
		name    string
		keys    []int
		wantPre []Entry[int]
	}{
		{
			name:    "left-left",
			keys:    []int{3, 2, 1},
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
		{
			name:    "left-right",
			keys:    []int{3, 1, 2},
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
		{
			name:    "right-right",
			keys:    []int{1, 2, 3},
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
		{
			name:    "right-left",
			keys:    []int{1, 3, 2},
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New[int]()
			for _, k := range tt.keys {
				tree.Insert(k)
			}
			assert.Equal(t, tt.wantPre, tree.PreOrder())
			assert.True(t, tree.IsBalanced())
		})
	}
}

func Test_Tree_deleteRebalance(t *testing.T) {
	tests := []struct {
		name    string
		keys    []int
		del     int
		wantPre []Entry[int]
	}{
		{
			// removing 4 leaves 3 with a left-heavy left child.
			name:    "left-left",
			keys:    []int{3, 2, 4, 1},
			del:     4,
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
		{
			name:    "left-right",
			keys:    []int{3, 1, 4, 2},
			del:     4,
			wantPre: []Entry[int]{{2, 2}, {1, 1}, {3, 1}},
		},
		{
			name:    "right-right",
			keys:    []int{2, 1, 3, 4},
			del:     1,
			wantPre: []Entry[int]{{3, 2}, {2, 1}, {4, 1}},
		},
		{
			name:    "right-left",
			keys:    []int{2, 1, 4, 3},
			del:     1,
			wantPre: []Entry[int]{{3, 2}, {2, 1}, {4, 1}},
		},
		{
			// balance(left) == 0 must still pick a single rotation.
			name:    "left-left with balanced child",
			keys:    []int{5, 3, 6, 2, 4},
			del:     6,
			wantPre: []Entry[int]{{3, 3}, {2, 1}, {5, 2}, {4, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New[int]()
			for _, k := range tt.keys {
				tree.Insert(k)
			}
			tree.Delete(tt.del)
			assert.Equal(t, tt.wantPre, tree.PreOrder())
			assert.True(t, tree.IsBalanced())
		})
	}
}

func Test_Tree_zeroValue(t *testing.T) {
	var tree Tree[string]

	assert.True(t, tree.IsEmpty())
	assert.False(t, tree.Search("a"))
	assert.Equal(t, 0, tree.Height())
	tree.Delete("a")
	assert.Empty(t, tree.InOrder())
	assert.Empty(t, tree.PreOrder())
	assert.True(t, tree.IsBalanced())

	tree.Insert("b")
	tree.Insert("a")
	tree.Insert("c")
	assert.Equal(t, []string{"a", "b", "c"}, tree.InOrder())
}

func Test_Tree_sortedInput(t *testing.T) {
	tree := New[int]()
	n := 1 << 12
	for i := 1; i <= n; i++ {
		tree.Insert(i)
	}

	require.True(t, tree.IsBalanced())
	require.Equal(t, n, tree.Size())
	// AVL height is below 1.44*log2(n+2).
	assert.LessOrEqual(t, tree.Height(), 17)

	for i := n; i >= 1; i -= 2 {
		tree.Delete(i)
	}
	require.True(t, tree.IsBalanced())
	assert.Equal(t, n/2, tree.Size())
}

func Test_Tree_All_earlyBreak(t *testing.T) {
	tree := New[int]()
	for _, k := range demoKeys {
		tree.Insert(k)
	}

	var got []int
	for k := range tree.All() {
		if k > 6 {
			break
		}
		got = append(got, k)
	}
	assert.Equal(t, []int{1, 3, 4, 5, 6}, got)

	// restartable.
	assert.Equal(t, tree.InOrder(), slices.Collect(tree.All()))
}

func Test_Tree_randomOperations(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	tree := New[int]()
	model := make(map[int]struct{})

	for i := 0; i < 5000; i++ {
		k := rnd.IntN(500)
		if rnd.IntN(3) == 0 {
			tree.Delete(k)
			delete(model, k)
		} else {
			tree.Insert(k)
			model[k] = struct{}{}
		}
		require.True(t, tree.IsBalanced(), "step %d", i)
		require.Equal(t, len(model), tree.Size(), "step %d", i)
	}

	want := make([]int, 0, len(model))
	for k := range model {
		want = append(want, k)
	}
	slices.Sort(want)
	assert.Equal(t, want, tree.InOrder())
}

func Test_Tree_String(t *testing.T) {
	tree := New[int]()
	assert.Equal(t, "────┤ empty", tree.String())

	tree.Insert(2)
	tree.Insert(1)
	tree.Insert(3)
	want := "\t┌───┤ (3, h=1)\n" +
		"────┤ (2, h=2)\n" +
		"\t└───┤ (1, h=1)\n"
	assert.Equal(t, want, tree.String())
}

func Benchmark_Tree_Insert(b *testing.B) {
	rnd := rand.New(rand.NewPCG(1, 2))
	keys := rnd.Perm(100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := New[int]()
		for _, k := range keys {
			tree.Insert(k)
		}
	}
}

func Benchmark_Tree_Search(b *testing.B) {
	rnd := rand.New(rand.NewPCG(1, 2))
	keys := rnd.Perm(100_000)
	tree := New[int]()
	for _, k := range keys {
		tree.Insert(k)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(keys[i%len(keys)])
	}
}
