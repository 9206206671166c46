package performed

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/fallback"
	"github.com/padstep/padstep/mineassoc"
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

// identityFallbackTable builds a Table where every StepType's only
// acceptable replacement is itself: enough to drive the search without
// the literal move being substitutable for anything else.
func identityFallbackTable(t *testing.T) *fallback.Table {
	t.Helper()
	wire := struct {
		StepTypeFallbacks map[string][]string `json:"StepTypeFallbacks"`
	}{StepTypeFallbacks: make(map[string][]string)}
	for st := range stepgraph.AllStepTypes() {
		wire.StepTypeFallbacks[st.String()] = []string{st.String()}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	tbl, err := fallback.LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	return tbl
}

func TestGeneratePerformedChartSimpleAlternation(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := stepgraph.Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fb := identityFallbackTable(t)

	root := pm.Root()
	rootState := stepgraph.StartingBodyState(root)
	rootIdx, ok := g.Index(rootState)
	if !ok {
		t.Fatalf("root state not found in graph")
	}

	// Find two real single-foot edges out of root to build a two-step
	// expressed chart that is certainly realizable without fallback.
	var firstLabel stepgraph.MoveLabel
	var firstDest int
	for label, dest := range g.Links(rootIdx) {
		if label.Feet[pad.Right].Moved && !label.Feet[pad.Left].Moved {
			firstLabel, firstDest = label, dest
			break
		}
	}
	if firstLabel.Feet[pad.Right].StepType == stepgraph.InvalidStepType {
		t.Fatalf("no single right-foot edge found out of root")
	}
	var secondLabel stepgraph.MoveLabel
	found := false
	for label := range g.Links(firstDest) {
		if label.Feet[pad.Left].Moved && !label.Feet[pad.Right].Moved {
			secondLabel = label
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no single left-foot edge found out of first step")
	}

	chart := &event.ExpressedChart{
		Events: []event.ExpressedEvent{
			event.StepEvent{Position: event.NewChartPosition(1, 1), MoveLabel: firstLabel},
			event.StepEvent{Position: event.NewChartPosition(2, 1), MoveLabel: secondLabel},
		},
	}

	cfg := DefaultConfig()
	perf, err := GeneratePerformedChart(context.Background(), pm, g, fb, chart, cfg, nil)
	if err != nil {
		t.Fatalf("GeneratePerformedChart: %v", err)
	}
	var steps int
	for _, e := range perf.Events {
		if _, ok := e.(event.PerformedStep); ok {
			steps++
		}
	}
	if steps != 2 {
		t.Fatalf("got %d performed steps, want 2", steps)
	}
}

func TestGeneratePerformedChartRespectsCancellation(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := stepgraph.Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fb := identityFallbackTable(t)

	root := pm.Root()
	rootState := stepgraph.StartingBodyState(root)
	rootIdx, _ := g.Index(rootState)
	var label stepgraph.MoveLabel
	for l := range g.Links(rootIdx) {
		label = l
		break
	}

	chart := &event.ExpressedChart{
		Events: []event.ExpressedEvent{
			event.StepEvent{Position: event.NewChartPosition(1, 1), MoveLabel: label},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := DefaultConfig()
	if _, err := GeneratePerformedChart(ctx, pm, g, fb, chart, cfg, nil); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestUnusedLaneSkipsSteppedArrows(t *testing.T) {
	pm := danceSingleModel(t)
	steps := []mineassoc.ReleaseOrStep{
		{Position: event.NewChartPosition(1, 1), Foot: pad.Left, Arrow: 0},
		{Position: event.NewChartPosition(2, 1), Foot: pad.Right, Arrow: 1},
	}
	lane, ok := unusedLane(pm, steps, map[int]bool{})
	if !ok {
		t.Fatalf("expected an unused lane")
	}
	if lane == 0 || lane == 1 {
		t.Fatalf("returned lane %d was stepped on", lane)
	}
}
