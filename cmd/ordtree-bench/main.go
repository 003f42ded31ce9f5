package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v2"

	"github.com/yeqown/ordtree/bench"
	"github.com/yeqown/ordtree/treap"
)

// ordtree-bench compares the treap with the AVL tree.
// Usage:
// $ ordtree-bench [global flags] sub-command [sub-command flags]
// It has sub-commands:
// - compare: time insert, search and delete over generated datasets
// - props: build both trees from a few keys and print their properties
//
// Global flags (also read from ORDTREE_* environment variables):
// - size, runs, seed, pattern, delete-fraction, log-level

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newCliApp()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ordtree-bench failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCliApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ordtree-bench"
	app.Usage = "treap versus AVL tree comparison tool"
	app.Version = "0.0.1"
	app.Commands = []*cli.Command{
		newCompareCommand(),
		newPropsCommand(),
	}
	app.Before = func(c *cli.Context) error {
		logger, err := newLogger(c.App.ErrWriter, c.String("log-level"))
		if err != nil {
			return errors.Wrap(err, "log-level")
		}

		patterns := make([]bench.Pattern, 0, len(c.StringSlice("pattern")))
		for _, s := range c.StringSlice("pattern") {
			p, err := bench.ParsePattern(s)
			if err != nil {
				return err
			}
			patterns = append(patterns, p)
		}

		runner, err := bench.NewRunner(
			bench.WithDatasetSize(c.Int("size")),
			bench.WithRuns(c.Int("runs")),
			bench.WithSeed(c.Uint64("seed")),
			bench.WithPatterns(patterns...),
			bench.WithDeleteFraction(c.Float64("delete-fraction")),
			bench.WithFileSystem(afero.NewOsFs()),
			bench.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		c.Context = contextWithRunner(c.Context, runner)
		return nil
	}
	// global flags
	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"n"},
			Usage:   "number of keys in each dataset",
			Value:   100_000,
			EnvVars: []string{"ORDTREE_SIZE"},
		},
		&cli.IntFlag{
			Name:    "runs",
			Aliases: []string{"r"},
			Usage:   "number of datasets per pattern",
			Value:   10,
			EnvVars: []string{"ORDTREE_RUNS"},
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "seed of dataset shuffles and treap priorities",
			Value:   42,
			EnvVars: []string{"ORDTREE_SEED"},
		},
		&cli.StringSliceFlag{
			Name:    "pattern",
			Aliases: []string{"p"},
			Usage:   "dataset key order: random, sorted or reversed",
			Value:   cli.NewStringSlice(string(bench.PatternRandom)),
			EnvVars: []string{"ORDTREE_PATTERN"},
		},
		&cli.Float64Flag{
			Name:    "delete-fraction",
			Usage:   "leading share of each dataset removed in the delete phase",
			Value:   0.5,
			EnvVars: []string{"ORDTREE_DELETE_FRACTION"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "trace, debug, info, warn, error or disabled",
			Value:   "info",
			EnvVars: []string{"ORDTREE_LOG_LEVEL"},
		},
	}

	return app
}

func newCompareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "time insert, search and delete on both trees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "report format: text or yaml",
				Value:   string(bench.FormatText),
				EnvVars: []string{"ORDTREE_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "also save the report to this file",
				EnvVars: []string{"ORDTREE_OUT"},
			},
		},
		Action: func(c *cli.Context) error {
			format, err := bench.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			runner := runnerFromContext(c.Context)
			report, err := runner.Run(c.Context)
			if err != nil {
				return err
			}

			data, err := report.Encode(format)
			if err != nil {
				return err
			}
			if _, err = c.App.Writer.Write(data); err != nil {
				return err
			}

			if out := c.String("out"); out != "" {
				return runner.Save(report, out, format)
			}
			return nil
		},
	}
}

func newPropsCommand() *cli.Command {
	return &cli.Command{
		Name:  "props",
		Usage: "print height and balancing properties of both trees",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "keys to insert, in order",
				Value:   cli.NewIntSlice(10, 5, 15, 3, 7, 12, 18, 1, 4, 6, 8, 20, 25, 30),
			},
			&cli.BoolFlag{
				Name:  "show-trees",
				Usage: "draw both trees",
			},
		},
		Action: func(c *cli.Context) error {
			props := bench.CompareProperties(c.IntSlice("keys"), treap.WithSeed(c.Uint64("seed")))
			return props.Render(c.App.Writer, c.Bool("show-trees"))
		},
	}
}
