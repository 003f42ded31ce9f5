package bench

import (
	"io"
	"slices"

	"github.com/yeqown/ordtree/avl"
	"github.com/yeqown/ordtree/treap"
)

// TreeProperties describes one tree built from a key sequence.
type TreeProperties struct {
	Size     int
	Height   int
	InOrder  []int
	Rendered string
}

// Properties puts a treap and an AVL tree built from the same keys side by side.
type Properties struct {
	Keys  []int
	Treap TreeProperties
	AVL   TreeProperties
}

// CompareProperties inserts keys, in order, into a new treap and a new AVL
// tree. options configure the treap.
func CompareProperties(keys []int, options ...treap.Option) Properties {
	tr := treap.New[int](options...)
	av := avl.New[int]()
	for _, k := range keys {
		tr.Insert(k)
		av.Insert(k)
	}

	return Properties{
		Keys: slices.Clone(keys),
		Treap: TreeProperties{
			Size:     tr.Size(),
			Height:   tr.Height(),
			InOrder:  tr.InOrder(),
			Rendered: tr.String(),
		},
		AVL: TreeProperties{
			Size:     av.Size(),
			Height:   av.Height(),
			InOrder:  av.InOrder(),
			Rendered: av.String(),
		},
	}
}

// OrderPreserved reports whether both trees list the same keys in the same order.
func (p Properties) OrderPreserved() bool {
	return slices.Equal(p.Treap.InOrder, p.AVL.InOrder)
}

// Render writes a property table, followed by both trees when showTrees is set.
func (p Properties) Render(w io.Writer, showTrees bool) error {
	ew := &errWriter{w: w}
	ew.printf("keys: %v\n\n", p.Keys)
	ew.printf("%-16s %-18s %-18s\n", "Property", "Treap", "AVL")
	ew.printf("%s\n", separator)
	ew.printf("%-16s %-18d %-18d\n", "Size", p.Treap.Size, p.AVL.Size)
	ew.printf("%-16s %-18d %-18d\n", "Height", p.Treap.Height, p.AVL.Height)
	ew.printf("%-16s %-18s %-18s\n", "Balancing", "probabilistic", "guaranteed")
	ew.printf("%-16s %-18s %-18s\n", "Worst case", "O(n)", "O(log n)")
	ew.printf("%-16s %-18s %-18s\n", "Average case", "O(log n)", "O(log n)")
	ew.printf("%s\n", separator)
	ew.printf("in-order identical: %t\n", p.OrderPreserved())

	if showTrees {
		ew.printf("\ntreap (key, priority):\n%s", p.Treap.Rendered)
		ew.printf("\navl (key, height):\n%s", p.AVL.Rendered)
	}
	return ew.err
}
