package bench

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/yeqown/ordtree"
	"github.com/yeqown/ordtree/avl"
	"github.com/yeqown/ordtree/treap"
)

// Phase is one of the timed operations.
type Phase string

const (
	PhaseInsert Phase = "insert"
	PhaseSearch Phase = "search"
	PhaseDelete Phase = "delete"
)

// Runner times the treap against the AVL tree over generated datasets. Every
// trial builds its trees from scratch, so trials never share structure.
type Runner struct {
	opt *options
}

// NewRunner creates a Runner, options are validated here.
func NewRunner(options ...Option) (*Runner, error) {
	opt := defaultOptions()
	for _, o := range options {
		o.apply(opt)
	}

	if err := opt.validate(); err != nil {
		return nil, err
	}

	return &Runner{opt: opt}, nil
}

// Datasets returns the datasets Run works on.
func (r *Runner) Datasets() []Dataset {
	return Datasets(r.opt.datasetSize, r.opt.runs, r.opt.seed, r.opt.patterns...)
}

// Run times insert, search and delete for every dataset. Both trees are checked
// against the sorted dataset and their own invariant after being built; a
// failed check aborts the run. ctx is checked between datasets.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		DatasetSize:    r.opt.datasetSize,
		Runs:           r.opt.runs,
		Seed:           r.opt.seed,
		DeleteFraction: r.opt.deleteFraction,
		Phases: []PhaseResult{
			{Phase: PhaseInsert},
			{Phase: PhaseSearch},
			{Phase: PhaseDelete},
		},
	}

	for i, ds := range r.Datasets() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "bench interrupted")
		}

		prio := r.opt.seed + uint64(i)
		rows, err := r.runDataset(ds, prio)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset %s", ds.Name)
		}
		for j := range report.Phases {
			report.Phases[j].Rows = append(report.Phases[j].Rows, rows[j])
		}

		r.opt.logger.Log("dataset %s: insert %.2f, search %.2f, delete %.2f (treap/avl)",
			ds.Name, rows[0].Ratio(), rows[1].Ratio(), rows[2].Ratio())
	}

	return report, nil
}

func (r *Runner) runDataset(ds Dataset, prio uint64) ([3]Row, error) {
	var rows [3]Row
	for i := range rows {
		rows[i].Dataset = ds.Name
	}
	want := ds.sorted()
	newTreap := func() *treap.Treap[int] { return treap.New[int](treap.WithSeed(prio)) }

	// insert
	tr, av := newTreap(), avl.New[int]()
	rows[0].Treap = timeIt(func() { insertAll(tr, ds.Keys) })
	rows[0].AVL = timeIt(func() { insertAll(av, ds.Keys) })
	if err := verify(tr, av, want); err != nil {
		return rows, err
	}

	// search
	tr, av = newTreap(), avl.New[int]()
	insertAll(tr, ds.Keys)
	insertAll(av, ds.Keys)
	rows[1].Treap = timeIt(func() { searchAll(tr, ds.Keys) })
	rows[1].AVL = timeIt(func() { searchAll(av, ds.Keys) })

	// delete
	victims := ds.Keys[:int(math.Ceil(float64(len(ds.Keys))*r.opt.deleteFraction))]
	tr = newTreap()
	insertAll(tr, ds.Keys)
	rows[2].Treap = timeIt(func() { deleteAll(tr, victims) })
	av = avl.New[int]()
	insertAll(av, ds.Keys)
	rows[2].AVL = timeIt(func() { deleteAll(av, victims) })

	if !tr.IsHeapOrdered() || !av.IsBalanced() {
		return rows, errors.Wrap(ErrInvariantBroken, "after delete")
	}
	if tr.Size() != av.Size() {
		return rows, errors.Wrapf(ErrTraversalMismatch, "after delete: treap holds %d keys, avl %d", tr.Size(), av.Size())
	}

	return rows, nil
}

func verify(tr *treap.Treap[int], av *avl.Tree[int], want []int) error {
	if !slices.Equal(tr.InOrder(), want) {
		return errors.Wrap(ErrTraversalMismatch, "treap")
	}
	if !slices.Equal(av.InOrder(), want) {
		return errors.Wrap(ErrTraversalMismatch, "avl")
	}
	if !tr.IsHeapOrdered() {
		return errors.Wrap(ErrInvariantBroken, "treap heap order")
	}
	if !av.IsBalanced() {
		return errors.Wrap(ErrInvariantBroken, "avl balance")
	}
	return nil
}

func timeIt(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

func insertAll(s ordtree.Set[int], keys []int) {
	for _, k := range keys {
		s.Insert(k)
	}
}

func searchAll(s ordtree.Set[int], keys []int) {
	for _, k := range keys {
		s.Search(k)
	}
}

func deleteAll(s ordtree.Set[int], keys []int) {
	for _, k := range keys {
		s.Delete(k)
	}
}
