package stepgraph

import (
	"testing"

	"github.com/padstep/padstep/pad"
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

func TestRootStateIsValid(t *testing.T) {
	pm := danceSingleModel(t)
	root := RootState(pm)
	if !root.Valid(pm) {
		t.Fatalf("root state %+v is not valid", root)
	}
}

func TestBodyStateCanonicalEquality(t *testing.T) {
	// Building the same two-portion foot from attachments in either
	// order must produce an identical BodyState, since equality is
	// structural (§3's canonicalization invariant).
	a := newFootState(
		FootArrowAttachment{Arrow: 2, State: Resting},
		FootArrowAttachment{Arrow: 0, State: Held},
	)
	b := newFootState(
		FootArrowAttachment{Arrow: 0, State: Held},
		FootArrowAttachment{Arrow: 2, State: Resting},
	)
	if a != b {
		t.Fatalf("canonicalization did not normalize portion order: %+v vs %+v", a, b)
	}
}

func TestBuildReachesMultipleStates(t *testing.T) {
	pm := danceSingleModel(t)
	g, err := Build(pm, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NumStates() < 2 {
		t.Fatalf("expected more than the root state to be reachable, got %d", g.NumStates())
	}
	root := g.Root()
	rootIdx, ok := g.Index(root)
	if !ok || rootIdx != 0 {
		t.Fatalf("root index = %d, ok=%v, want 0, true", rootIdx, ok)
	}
	links := g.Links(rootIdx)
	if len(links) == 0 {
		t.Fatalf("root state has no outgoing moves")
	}
	for mv, dst := range links {
		if dst == rootIdx && !mv.Feet[0].Moved && !mv.Feet[1].Moved {
			t.Fatalf("found a self-loop move label with no foot marked Moved")
		}
	}
}

func TestReleaseRequiresPriorCommitment(t *testing.T) {
	pm := danceSingleModel(t)
	root := RootState(pm)
	// Both feet start Resting; a Release is not legal from Resting.
	out := fillSameArrow(root, pad.Left, Release)
	if out != nil {
		t.Fatalf("Release from a Resting arrow should be illegal, got %d transitions", len(out))
	}

	held := root.withFoot(pad.Left, singleArrow(FootArrowAttachment{Arrow: root.Foot(pad.Left).Arrows()[0], State: Held}))
	out = fillSameArrow(held, pad.Left, Release)
	if len(out) != 1 {
		t.Fatalf("Release from a Held arrow should be legal, got %d transitions", len(out))
	}
	if arrows := out[0].to.Foot(pad.Left).Arrows(); len(arrows) != 0 {
		t.Fatalf("released foot should have no committed arrows, got %v", arrows)
	}
}

func TestBracketFillRespectsBracketability(t *testing.T) {
	pm := danceSingleModel(t)
	root := RootState(pm)
	transitions := fillBracket(pm, root, pad.Left, BracketHeelNewToeNew, Tap, Tap)
	for _, tr := range transitions {
		arrows := tr.to.Foot(pad.Left).Arrows()
		if len(arrows) != 2 {
			t.Fatalf("bracket transition left foot arrows = %v, want 2", arrows)
		}
		if !pm.Bracketable(pad.Left, arrows[0], arrows[1]) {
			t.Errorf("fillBracket produced non-bracketable pair %v", arrows)
		}
	}
}
