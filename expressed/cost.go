package expressed

import (
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// stepCost implements the §4.E cost table. Magnitudes are kept as
// written there; only the bracket/jump heuristic bias is an
// approximation, since the source heuristic's exact "amount of
// movement" formula is not specified.
func stepCost(model *pad.PadModel, from stepgraph.BodyState, label stepgraph.MoveLabel, prev stepgraph.MoveLabel, havePrev bool, policy BracketPolicy, hasHint bool) int {
	if isPureRelease(label) {
		return 0
	}
	if label.IsJump() {
		return jumpCost(policy)
	}

	foot, fm := movedFoot(label)
	switch {
	case fm.StepType.IsSameArrow():
		return 0
	case fm.StepType.IsSingleArrowBracket():
		return 7
	case fm.StepType.IsBracket():
		return bracketCost(label, policy, havePrev && doubleStep(prev, foot))
	case fm.StepType.IsFootSwap():
		return footSwapCost(prev, havePrev, foot, hasHint)
	case fm.StepType.IsCrossover():
		return crossoverCost(from, foot, prev, havePrev, hasHint)
	case fm.StepType.IsInvert():
		return 25
	default:
		return newArrowCost(from, foot, prev, havePrev, hasHint)
	}
}

func isPureRelease(label stepgraph.MoveLabel) bool {
	moved := false
	for _, fm := range label.Feet {
		if !fm.Moved {
			continue
		}
		moved = true
		for i := 0; i < fm.StepType.ArrowCount(); i++ {
			if fm.Actions[i] != stepgraph.Release {
				return false
			}
		}
	}
	return moved
}

func movedFoot(label stepgraph.MoveLabel) (pad.Foot, stepgraph.FootMove) {
	for i, fm := range label.Feet {
		if fm.Moved {
			return pad.Foot(i), fm
		}
	}
	return pad.Left, stepgraph.FootMove{}
}

func prevMovedFoot(prev stepgraph.MoveLabel) (pad.Foot, bool) {
	for i, fm := range prev.Feet {
		if fm.Moved {
			return pad.Foot(i), true
		}
	}
	return pad.Left, false
}

func doubleStep(prev stepgraph.MoveLabel, foot pad.Foot) bool {
	pf, ok := prevMovedFoot(prev)
	return ok && !prev.IsJump() && pf == foot
}

func otherFootHoldingEverything(from stepgraph.BodyState, foot pad.Foot) bool {
	other := from.Foot(foot.Other())
	arrows := other.Arrows()
	if len(arrows) == 0 {
		return false
	}
	for _, a := range arrows {
		att, ok := other.AttachmentFor(a)
		if !ok || att.State == stepgraph.Resting {
			return false
		}
	}
	return true
}

func newArrowCost(from stepgraph.BodyState, foot pad.Foot, prev stepgraph.MoveLabel, havePrev bool, hasHint bool) int {
	if otherFootHoldingEverything(from, foot) {
		return 0
	}
	if havePrev {
		if pf, ok := prevMovedFoot(prev); ok && !prev.IsJump() && pf == foot.Other() {
			return 0 // alternation
		}
		if doubleStep(prev, foot) {
			if hasHint {
				return 50
			}
			return 100
		}
	}
	return 0
}

func crossoverCost(from stepgraph.BodyState, foot pad.Foot, prev stepgraph.MoveLabel, havePrev bool, hasHint bool) int {
	if otherFootHoldingEverything(from, foot) {
		return 5
	}
	if havePrev && doubleStep(prev, foot) {
		if hasHint {
			return 100
		}
		return 200
	}
	return 25
}

func footSwapCost(prev stepgraph.MoveLabel, havePrev bool, foot pad.Foot, hasHint bool) int {
	if hasHint {
		return 15
	}
	if havePrev {
		if pf, ok := prevMovedFoot(prev); ok && prev.Feet[pf].StepType.IsFootSwap() {
			return 20
		}
		if doubleStep(prev, foot) {
			return 100
		}
	}
	return 30
}

// bracketCost applies the bracket-vs-jump heuristic bias: a bracket that
// the policy would rather have seen as a jump is penalized, more so when
// it is also a double step.
func bracketCost(label stepgraph.MoveLabel, policy BracketPolicy, isDoubleStep bool) int {
	if policy == NoBrackets {
		if isDoubleStep {
			return 100
		}
		return 10
	}
	if policy == Aggressive {
		return 0
	}
	return 2
}

// jumpCost applies the opposite bias: under Aggressive (brackets
// preferred) a plain jump carries a small non-zero penalty against the
// bracket alternative; otherwise jumps are free.
func jumpCost(policy BracketPolicy) int {
	if policy == Aggressive {
		return 5
	}
	return 0
}
