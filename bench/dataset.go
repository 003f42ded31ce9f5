package bench

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is the order in which a dataset presents its keys.
type Pattern string

const (
	PatternRandom   Pattern = "random"   // shuffled 1..n
	PatternSorted   Pattern = "sorted"   // 1..n
	PatternReversed Pattern = "reversed" // n..1
)

// Patterns lists every supported pattern.
func Patterns() []Pattern {
	return []Pattern{PatternRandom, PatternSorted, PatternReversed}
}

// ParsePattern parses a pattern name, case-insensitively.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case PatternRandom, PatternSorted, PatternReversed:
		return p, nil
	}
	return "", errors.Wrapf(ErrUnknownPattern, "parse %q", s)
}

// Dataset is one sequence of keys fed to both trees.
type Dataset struct {
	Name    string
	Pattern Pattern
	Keys    []int
}

// sorted returns the distinct keys in ascending order.
func (d Dataset) sorted() []int {
	keys := slices.Clone(d.Keys)
	slices.Sort(keys)
	return slices.Compact(keys)
}

// Datasets builds runs datasets of size keys for every pattern. The i-th random
// dataset is shuffled with seed+i, so the same arguments give the same keys.
func Datasets(size, runs int, seed uint64, patterns ...Pattern) []Dataset {
	datasets := make([]Dataset, 0, runs*len(patterns))
	for _, p := range patterns {
		for i := 0; i < runs; i++ {
			datasets = append(datasets, Dataset{
				Name:    fmt.Sprintf("%s_%d", p, i),
				Pattern: p,
				Keys:    generate(p, size, seed+uint64(i)),
			})
		}
	}
	return datasets
}

func generate(p Pattern, size int, seed uint64) []int {
	keys := make([]int, size)
	for i := range keys {
		keys[i] = i + 1
	}

	switch p {
	case PatternRandom:
		rnd := rand.New(rand.NewPCG(seed, seed))
		rnd.Shuffle(len(keys), func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})
	case PatternReversed:
		slices.Reverse(keys)
	}
	return keys
}
