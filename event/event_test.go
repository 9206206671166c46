package event

import (
	"testing"

	"github.com/padstep/padstep/stepgraph"
)

func TestChartPositionOrdering(t *testing.T) {
	a := NewChartPosition(1, 4)
	b := NewChartPosition(1, 2)
	if a.Cmp(b) >= 0 {
		t.Fatalf("1/4 should order before 1/2")
	}
	if !NewChartPosition(2, 4).Equal(NewChartPosition(1, 2)) {
		t.Fatalf("2/4 should equal 1/2")
	}
}

func TestSortLaneEventsReleaseThenMineThenStep(t *testing.T) {
	pos := NewChartPosition(0, 1)
	events := []LaneEvent{
		{Kind: Tap, Position: pos, Lane: 2},
		{Kind: Mine, Position: pos, Lane: 1},
		{Kind: HoldEnd, Position: pos, Lane: 0},
	}
	sorted := SortLaneEvents(events)
	if sorted[0].Kind != HoldEnd || sorted[1].Kind != Mine || sorted[2].Kind != Tap {
		t.Fatalf("unexpected order: %+v", sorted)
	}
}

func TestExpressedChartStepsAndMines(t *testing.T) {
	chart := &ExpressedChart{
		Events: []ExpressedEvent{
			StepEvent{Position: NewChartPosition(0, 1)},
			MineEvent{Position: NewChartPosition(1, 1), MineType: NoArrow},
			StepEvent{Position: NewChartPosition(2, 1)},
		},
	}
	if len(chart.Steps()) != 2 {
		t.Fatalf("Steps() = %d, want 2", len(chart.Steps()))
	}
	if len(chart.Mines()) != 1 {
		t.Fatalf("Mines() = %d, want 1", len(chart.Mines()))
	}
}

func TestPerformedChartReleaseUsesPriorLane(t *testing.T) {
	held := stepgraph.BodyState{}
	held.Feet[0][0] = stepgraph.FootArrowAttachment{Arrow: 3, State: stepgraph.Held}
	held.Feet[0][1] = stepgraph.FootArrowAttachment{Arrow: stepgraph.NoArrow, State: stepgraph.Resting}
	held.Feet[1][0] = stepgraph.FootArrowAttachment{Arrow: 1, State: stepgraph.Resting}
	held.Feet[1][1] = stepgraph.FootArrowAttachment{Arrow: stepgraph.NoArrow, State: stepgraph.Resting}

	released := held
	released.Feet[0][0] = stepgraph.FootArrowAttachment{Arrow: stepgraph.NoArrow, State: stepgraph.Resting}

	chart := &PerformedChart{
		Events: []PerformedEvent{
			PerformedStep{Position: NewChartPosition(0, 1), State: held, MoveLabel: stepgraph.MoveLabel{
				Feet: [2]stepgraph.FootMove{{Moved: true, StepType: stepgraph.NewArrow, Actions: [2]stepgraph.FootAction{stepgraph.Hold, stepgraph.Hold}}},
			}},
			PerformedStep{Position: NewChartPosition(1, 1), State: released, MoveLabel: stepgraph.MoveLabel{
				Feet: [2]stepgraph.FootMove{{Moved: true, StepType: stepgraph.SameArrow, Actions: [2]stepgraph.FootAction{stepgraph.Release, stepgraph.Release}}},
			}},
		},
	}

	lanes := chart.ToLaneEvents()
	var sawHoldEndOn3 bool
	for _, l := range lanes {
		if l.Kind == HoldEnd && l.Lane == 3 {
			sawHoldEndOn3 = true
		}
	}
	if !sawHoldEndOn3 {
		t.Fatalf("expected a HoldEnd on lane 3, got %+v", lanes)
	}
}
