package main

import (
	"testing"

	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// danceSingleArrows mirrors the layout internal/bench builds under the
// same name; duplicated here because test binaries in this directory
// cannot import another main package.
var danceSingleArrows = []pad.Position{
	{X: 0, Y: 1},
	{X: 1, Y: 2},
	{X: 1, Y: 0},
	{X: 2, Y: 1},
}

// TestBuildIsDeterministic guards against accidental nondeterminism in
// StepGraph construction: rebuilding the same layout twice must produce
// exactly the same state and edge counts, the way the chess engine this
// tool was adapted from pinned its search node counts across runs.
func TestBuildIsDeterministic(t *testing.T) {
	build := func() stepgraph.GraphStats {
		model, err := pad.Derive(danceSingleArrows, pad.DefaultThresholds)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}
		g, err := stepgraph.Build(model, nil)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return g.Stats()
	}

	first := build()
	second := build()
	if first != second {
		t.Fatalf("nondeterministic build: %+v vs %+v", first, second)
	}
	if first.NumStates == 0 {
		t.Fatalf("expected a non-empty state space")
	}
}
