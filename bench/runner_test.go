package bench

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yeqown/ordtree/avl"
	"github.com/yeqown/ordtree/treap"
)

type runnerTestSuite struct {
	suite.Suite

	fs     afero.Fs
	runner *Runner
}

func (su *runnerTestSuite) SetupTest() {
	su.fs = afero.NewMemMapFs()

	var err error
	su.runner, err = NewRunner(
		WithDatasetSize(500),
		WithRuns(2),
		WithPatterns(PatternRandom, PatternSorted),
		WithFileSystem(su.fs),
		WithLogger(&nopLogger{}),
	)
	su.Require().NoError(err)
}

func (su *runnerTestSuite) Test_Runner_Run() {
	report, err := su.runner.Run(context.Background())
	su.Require().NoError(err)

	su.Equal(500, report.DatasetSize)
	su.Equal(2, report.Runs)
	su.Equal(uint64(42), report.Seed)
	su.Require().Len(report.Phases, 3)

	phases := []Phase{PhaseInsert, PhaseSearch, PhaseDelete}
	for i, p := range report.Phases {
		su.Equal(phases[i], p.Phase)
		su.Require().Len(p.Rows, 4)
		su.Equal("random_0", p.Rows[0].Dataset)
		su.Equal("sorted_1", p.Rows[3].Dataset)
		for _, row := range p.Rows {
			su.Positive(int64(row.Treap), "%s %s", p.Phase, row.Dataset)
			su.Positive(int64(row.AVL), "%s %s", p.Phase, row.Dataset)
		}
	}
}

func (su *runnerTestSuite) Test_Runner_Save() {
	report, err := su.runner.Run(context.Background())
	su.Require().NoError(err)

	err = su.runner.Save(report, "/reports/run.yaml", FormatYAML)
	su.Require().NoError(err)

	data, err := afero.ReadFile(su.fs, "/reports/run.yaml")
	su.Require().NoError(err)
	su.Contains(string(data), "dataset_size: 500")
	su.Contains(string(data), "phase: delete")
}

func (su *runnerTestSuite) Test_Runner_Run_canceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := su.runner.Run(ctx)
	su.Nil(report)
	su.True(errors.Is(err, context.Canceled))
}

func Test_Runner(t *testing.T) {
	suite.Run(t, new(runnerTestSuite))
}

func Test_NewRunner_invalidOption(t *testing.T) {
	runner, err := NewRunner(WithRuns(0))

	assert.Nil(t, runner)
	assert.True(t, errors.Is(err, ErrInvalidOption))
}

func Test_Runner_runDataset_deleteAll(t *testing.T) {
	runner, err := NewRunner(WithDeleteFraction(1), WithLogger(nil))
	require.NoError(t, err)

	ds := Datasets(200, 1, 1, PatternReversed)[0]
	rows, err := runner.runDataset(ds, 1)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "reversed_0", row.Dataset)
	}
}

func Test_verify(t *testing.T) {
	ds := Dataset{Keys: []int{5, 2, 8, 1}}
	tr, av := treap.New[int](treap.WithSeed(1)), avl.New[int]()
	insertAll(tr, ds.Keys)
	insertAll(av, ds.Keys)

	assert.NoError(t, verify(tr, av, ds.sorted()))

	err := verify(tr, av, []int{1, 2, 5})
	assert.True(t, errors.Is(err, ErrTraversalMismatch))
}
