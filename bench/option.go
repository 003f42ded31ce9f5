package bench

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	defaultDatasetSize    = 100_000
	defaultRuns           = 10
	defaultSeed           = uint64(42)
	defaultDeleteFraction = 0.5
)

type options struct {
	// The number of keys in each dataset. The default value is 100000.
	datasetSize int
	// The number of datasets generated per pattern. The default value is 10.
	runs int
	// The seed of dataset shuffles and treap priorities. The default value is 42.
	seed uint64
	// The key orders to generate datasets for. The default is random only.
	patterns []Pattern
	// The leading share of each dataset deleted in the delete phase.
	// The default value is 0.5.
	deleteFraction float64

	// The file system reports are saved to. The default file system is implemented by os package.
	fs FileSystem

	logger Logger
}

func defaultOptions() *options {
	return &options{
		datasetSize:    defaultDatasetSize,
		runs:           defaultRuns,
		seed:           defaultSeed,
		patterns:       []Pattern{PatternRandom},
		deleteFraction: defaultDeleteFraction,
		fs:             afero.NewOsFs(),
		logger:         defaultLogger,
	}
}

func (o *options) validate() error {
	if o.datasetSize <= 0 {
		return errors.Wrapf(ErrInvalidOption, "dataset size must be positive, got %d", o.datasetSize)
	}
	if o.runs <= 0 {
		return errors.Wrapf(ErrInvalidOption, "runs must be positive, got %d", o.runs)
	}
	if len(o.patterns) == 0 {
		return errors.Wrap(ErrInvalidOption, "no dataset pattern")
	}
	if o.deleteFraction <= 0 || o.deleteFraction > 1 {
		return errors.Wrapf(ErrInvalidOption, "delete fraction must be in (0, 1], got %v", o.deleteFraction)
	}
	if o.fs == nil {
		return errors.Wrap(ErrInvalidOption, "nil file system")
	}
	return nil
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

// WithDatasetSize set the number of keys in each dataset.
func WithDatasetSize(size int) Option {
	return newFuncOption(func(o *options) {
		o.datasetSize = size
	})
}

// WithRuns set the number of datasets generated per pattern.
func WithRuns(runs int) Option {
	return newFuncOption(func(o *options) {
		o.runs = runs
	})
}

// WithSeed set the seed of dataset shuffles and treap priorities.
func WithSeed(seed uint64) Option {
	return newFuncOption(func(o *options) {
		o.seed = seed
	})
}

// WithPatterns set the key orders to generate datasets for.
func WithPatterns(patterns ...Pattern) Option {
	return newFuncOption(func(o *options) {
		o.patterns = patterns
	})
}

// WithDeleteFraction set the leading share of each dataset that the delete
// phase removes.
func WithDeleteFraction(fraction float64) Option {
	return newFuncOption(func(o *options) {
		o.deleteFraction = fraction
	})
}

// WithFileSystem set the file system to save reports to.
func WithFileSystem(fs FileSystem) Option {
	return newFuncOption(func(o *options) {
		o.fs = fs
	})
}

// WithLogger set the logger for progress messages. A nil logger mutes them.
func WithLogger(logger Logger) Option {
	return newFuncOption(func(o *options) {
		if logger == nil {
			logger = &nopLogger{}
		}
		o.logger = logger
	})
}
