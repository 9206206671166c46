package mineassoc

import (
	"testing"

	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

func state(leftArrow, rightArrow int, leftState stepgraph.ArrowAttachmentState) stepgraph.BodyState {
	var b stepgraph.BodyState
	b.Feet[pad.Left][0] = stepgraph.FootArrowAttachment{Arrow: leftArrow, State: leftState}
	b.Feet[pad.Left][1] = stepgraph.FootArrowAttachment{Arrow: stepgraph.NoArrow, State: stepgraph.Resting}
	b.Feet[pad.Right][0] = stepgraph.FootArrowAttachment{Arrow: rightArrow, State: stepgraph.Resting}
	b.Feet[pad.Right][1] = stepgraph.FootArrowAttachment{Arrow: stepgraph.NoArrow, State: stepgraph.Resting}
	return b
}

func TestReleasesAndStepsSkipsRoot(t *testing.T) {
	root := state(0, 1, stepgraph.Resting)
	held := state(2, 1, stepgraph.Held)
	released := state(stepgraph.NoArrow, 1, stepgraph.Resting)

	path := []PathNode{
		{Position: event.NewChartPosition(0, 1), State: root},
		{
			Position: event.NewChartPosition(1, 1),
			State:    held,
			Incoming: stepgraph.MoveLabel{Feet: [2]stepgraph.FootMove{
				pad.Left: {Moved: true, StepType: stepgraph.NewArrow, Actions: [2]stepgraph.FootAction{stepgraph.Hold, stepgraph.Hold}},
			}},
		},
		{
			Position: event.NewChartPosition(2, 1),
			State:    released,
			Incoming: stepgraph.MoveLabel{Feet: [2]stepgraph.FootMove{
				pad.Left: {Moved: true, StepType: stepgraph.SameArrow, Actions: [2]stepgraph.FootAction{stepgraph.Release, stepgraph.Release}},
			}},
		},
	}

	releases, steps := ReleasesAndSteps(path)
	if len(steps) != 1 || steps[0].Arrow != 2 {
		t.Fatalf("steps = %+v, want one step on arrow 2", steps)
	}
	if len(releases) != 1 || releases[0].Arrow != 2 {
		t.Fatalf("releases = %+v, want one release on arrow 2", releases)
	}
}

func TestNthMostRecentCountsDistinctPositions(t *testing.T) {
	events := []ReleaseOrStep{
		{Position: event.NewChartPosition(0, 1), Foot: pad.Left, Arrow: 0},
		{Position: event.NewChartPosition(1, 1), Foot: pad.Right, Arrow: 1},
		{Position: event.NewChartPosition(1, 1), Foot: pad.Left, Arrow: 2},
		{Position: event.NewChartPosition(2, 1), Foot: pad.Right, Arrow: 3},
	}

	n, foot, ok := NthMostRecent(Backward, 3, 2, events)
	if !ok {
		t.Fatalf("expected to find arrow 2")
	}
	if n != 1 || foot != pad.Left {
		t.Fatalf("NthMostRecent = (%d, %v), want (1, Left)", n, foot)
	}

	if _, _, ok := NthMostRecent(Backward, 3, 99, events); ok {
		t.Fatalf("expected no match for an arrow never stepped on")
	}
}

func TestFindBestNthPrefersDesiredFootThenFallsBackToAny(t *testing.T) {
	events := []ReleaseOrStep{
		{Position: event.NewChartPosition(0, 1), Foot: pad.Left, Arrow: 0},
		{Position: event.NewChartPosition(1, 1), Foot: pad.Right, Arrow: 1},
	}

	lane, ok := FindBestNth(Backward, 0, pad.Right, events, map[int]bool{})
	if !ok || lane != 1 {
		t.Fatalf("FindBestNth = (%d, %v), want (1, true)", lane, ok)
	}

	lane, ok = FindBestNth(Backward, 0, pad.Left, events, map[int]bool{1: true})
	if !ok || lane != 0 {
		t.Fatalf("falling back past an occupied nearest arrow: got (%d, %v)", lane, ok)
	}

	if _, ok := FindBestNth(Backward, 0, pad.Left, events, map[int]bool{0: true, 1: true}); ok {
		t.Fatalf("expected no free lane when every candidate is occupied")
	}
}
