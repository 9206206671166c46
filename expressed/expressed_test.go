package expressed

import (
	"testing"

	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

func danceSingleModel(t *testing.T) *pad.PadModel {
	t.Helper()
	arrows := []pad.Position{
		{X: 0, Y: 1}, // L
		{X: 1, Y: 2}, // D
		{X: 1, Y: 0}, // U
		{X: 2, Y: 1}, // R
	}
	pm, err := pad.Derive(arrows, pad.DefaultThresholds)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return pm
}

func TestBuildExpressedChartSimpleAlternation(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := stepgraph.Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root := pm.Root()
	events := []event.LaneEvent{
		{Kind: event.Tap, Position: event.NewChartPosition(1, 1), Lane: root.Right},
		{Kind: event.Tap, Position: event.NewChartPosition(2, 1), Lane: root.Left},
	}

	chart, err := BuildExpressedChart(pm, g, events, Balanced, nil)
	if err != nil {
		t.Fatalf("BuildExpressedChart: %v", err)
	}
	steps := chart.Steps()
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2: %+v", len(steps), steps)
	}
	if steps[0].Position.Cmp(event.NewChartPosition(1, 1)) != 0 {
		t.Fatalf("first step at wrong position: %+v", steps[0].Position)
	}
}

func TestBuildExpressedChartHoldThenRelease(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := stepgraph.Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := pm.Root()
	events := []event.LaneEvent{
		{Kind: event.HoldStart, Position: event.NewChartPosition(0, 1), Lane: root.Left},
		{Kind: event.HoldEnd, Position: event.NewChartPosition(1, 1), Lane: root.Left},
	}

	chart, err := BuildExpressedChart(pm, g, events, Balanced, nil)
	if err != nil {
		t.Fatalf("BuildExpressedChart: %v", err)
	}
	steps := chart.Steps()
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2 (hold start + release): %+v", len(steps), steps)
	}
}

func TestBuildExpressedChartUnreachableBatchFails(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := stepgraph.Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// A release with nothing ever held on that lane cannot be matched.
	events := []event.LaneEvent{
		{Kind: event.HoldEnd, Position: event.NewChartPosition(0, 1), Lane: pm.Root().Left},
	}
	if _, err := BuildExpressedChart(pm, g, events, Balanced, nil); err == nil {
		t.Fatalf("expected an expression failure for an unmatched release")
	}
}

func TestMatchesBatchRejectsSilentRelease(t *testing.T) {
	pm := danceSingleModel(t)
	from := stepgraph.RootState(pm)
	from.Feet[pad.Right][0].State = stepgraph.Held
	// Destination drops the right foot's arrow entirely without it being
	// in the requested batch: must be rejected.
	to := from
	to.Feet[pad.Right] = stepgraph.FootState{
		{Arrow: stepgraph.NoArrow}, {Arrow: stepgraph.NoArrow},
	}

	req := map[int]reqKind{}
	if matchesBatch(pm, from, to, req) {
		t.Fatalf("matchesBatch should reject a destination that silently drops a held arrow")
	}
}
