package main

import (
	"context"

	"github.com/yeqown/ordtree/bench"
)

type runnerType uint

var runnerContextKey runnerType = 0

func contextWithRunner(ctx context.Context, runner *bench.Runner) context.Context {
	return context.WithValue(ctx, runnerContextKey, runner)
}

func runnerFromContext(ctx context.Context) *bench.Runner {
	v := ctx.Value(runnerContextKey)
	if v == nil {
		panic("no runner in context")
	}

	return v.(*bench.Runner)
}
