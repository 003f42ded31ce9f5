package ordtree

import (
	"cmp"
	"iter"
	"strings"

	"github.com/pkg/errors"

	"github.com/yeqown/ordtree/avl"
	"github.com/yeqown/ordtree/treap"
)

var (
	_ Set[int] = (*avl.Tree[int])(nil)
	_ Set[int] = (*treap.Treap[int])(nil)
)

// Set is an ordered set of distinct keys.
type Set[K cmp.Ordered] interface {
	Insert(key K)      // no-op if key is present
	Search(key K) bool // reports whether key is present
	Delete(key K)      // no-op if key is absent

	InOrder() []K      // keys in ascending order, len == Size()
	All() iter.Seq[K]  // same as InOrder, lazily
	Size() int         // number of keys
	Height() int       // 0 for an empty set
	IsEmpty() bool
}

// Kind names a Set implementation.
type Kind string

const (
	KindAVL   Kind = "avl"
	KindTreap Kind = "treap"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindAVL, KindTreap}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAVL, KindTreap:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "parse %q", s)
}

// New creates an empty Set of the given kind. Treap options are ignored for
// other kinds.
func New[K cmp.Ordered](kind Kind, options ...treap.Option) (Set[K], error) {
	switch kind {
	case KindAVL:
		return avl.New[K](), nil
	case KindTreap:
		return treap.New[K](options...), nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "new %q", kind)
}
