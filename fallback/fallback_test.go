package fallback

import (
	"testing"

	"github.com/padstep/padstep/stepgraph"
)

// minimalRaw builds a raw table where every StepType falls back only to
// itself; the tests below override the entries they need.
func minimalRaw() map[stepgraph.StepType][]rawEntry {
	raw := make(map[stepgraph.StepType][]rawEntry)
	for st := range stepgraph.AllStepTypes() {
		raw[st] = []rawEntry{{literal: st}}
	}
	return raw
}

func TestBuildRejectsCycle(t *testing.T) {
	raw := minimalRaw()
	raw[stepgraph.NewArrow] = []rawEntry{{splice: stepgraph.CrossoverFront, isSplice: true}}
	raw[stepgraph.CrossoverFront] = []rawEntry{{splice: stepgraph.NewArrow, isSplice: true}}

	if _, err := Build(raw); err == nil {
		t.Fatal("expected a cycle error, got nil")
	}
}

func TestSpliceExpandsInOrder(t *testing.T) {
	raw := minimalRaw()
	raw[stepgraph.NewArrowStretch] = []rawEntry{{literal: stepgraph.NewArrow}, {literal: stepgraph.SameArrow}}
	raw[stepgraph.CrossoverFront] = []rawEntry{
		{literal: stepgraph.CrossoverFront},
		{splice: stepgraph.NewArrowStretch, isSplice: true},
	}

	table, err := Build(raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := table.FallbacksFor(stepgraph.CrossoverFront)
	want := []stepgraph.StepType{stepgraph.CrossoverFront, stepgraph.NewArrow, stepgraph.SameArrow}
	if len(got) != len(want) {
		t.Fatalf("FallbacksFor = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FallbacksFor[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestFallbackCostMonotonic covers testable property 5: for a precedes
// b in a StepType's fallback list, cost(a) < cost(b).
func TestFallbackCostMonotonic(t *testing.T) {
	raw := minimalRaw()
	raw[stepgraph.NewArrow] = []rawEntry{
		{literal: stepgraph.NewArrow},
		{literal: stepgraph.NewArrowStretch},
		{literal: stepgraph.SameArrow},
	}
	table, err := Build(raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	costA := table.Cost(stepgraph.NewArrow, stepgraph.NewArrow)
	costB := table.Cost(stepgraph.NewArrow, stepgraph.NewArrowStretch)
	costC := table.Cost(stepgraph.NewArrow, stepgraph.SameArrow)
	if !(costA < costB && costB < costC) {
		t.Fatalf("costs not monotonic: %v, %v, %v", costA, costB, costC)
	}
}

func TestBuildRejectsMissingKey(t *testing.T) {
	raw := minimalRaw()
	delete(raw, stepgraph.FootSwap)

	if _, err := Build(raw); err == nil {
		t.Fatal("expected an error for a missing StepType key")
	}
}
