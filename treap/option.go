package treap

import (
	"math/rand/v2"
	"time"
)

// PrioritySource draws node priorities. Values are expected to come from a
// continuous distribution so that ties are practically impossible.
// *rand.Rand from math/rand/v2 satisfies it.
type PrioritySource interface {
	Float64() float64
}

type options struct {
	// The source of priorities for Insert. The default source is a PCG generator
	// seeded from the wall clock.
	priorities PrioritySource
}

func defaultOptions() *options {
	seed := uint64(time.Now().UnixNano())
	return &options{
		priorities: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

type Option interface {
	apply(*options)
}

type funcOption struct {
	fn func(*options)
}

func (funcOpt funcOption) apply(o *options) {
	funcOpt.fn(o)
}

func newFuncOption(fn func(*options)) *funcOption {
	return &funcOption{
		fn: fn,
	}
}

// WithPrioritySource set the source of priorities used by Insert.
// A nil source keeps the default one.
func WithPrioritySource(src PrioritySource) Option {
	return newFuncOption(func(o *options) {
		if src != nil {
			o.priorities = src
		}
	})
}

// WithSeed makes the priorities, and so the shape of the treap, reproducible.
func WithSeed(seed uint64) Option {
	return newFuncOption(func(o *options) {
		o.priorities = rand.New(rand.NewPCG(seed, seed))
	})
}
