package stepgraph

import (
	cartesian "github.com/schwarmco/go-cartesian-product"

	"github.com/padstep/padstep/pad"
)

// jumpStepTypes are the only StepTypes a jump's half may use (§4.C "Jump
// enumeration"): the comfortable single-foot and bracket moves. Stretch,
// crossover, invert and foot-swap moves are excluded from jumps.
var jumpStepTypes = []StepType{
	SameArrow,
	NewArrow,
	BracketHeelNewToeNew,
	BracketHeelNewToeSame,
	BracketHeelSameToeNew,
	BracketHeelSameToeSame,
}

// footCandidate is a raw, other-foot-agnostic half of a jump: a FootMove
// plus the resulting FootState it would leave this foot in.
type footCandidate struct {
	move   FootMove
	result FootState
}

// rawCandidates enumerates every footCandidate for foot, without
// checking the relation to the other foot (that check happens once both
// halves of the jump are known, since in a true jump both feet land
// simultaneously and the relation is judged against landing arrows, not
// pre-jump ones).
func rawCandidates(model *pad.PadModel, state BodyState, foot pad.Foot, action FootAction) []footCandidate {
	var out []footCandidate
	fs := state.Foot(foot)
	n := model.NumArrows()

	if fs.Count() == 1 {
		cur := fs.Arrows()[0]
		out = append(out, footCandidate{
			move:   FootMove{StepType: SameArrow, Actions: [2]FootAction{action, action}},
			result: singleArrow(attachmentForAction(cur, action)),
		})
		for a := 0; a < n; a++ {
			if a == cur {
				continue
			}
			out = append(out, footCandidate{
				move:   FootMove{StepType: NewArrow, Actions: [2]FootAction{action, action}},
				result: singleArrow(attachmentForAction(a, action)),
			})
		}
		curArrows := fs.Arrows()
		for _, st := range []StepType{BracketHeelNewToeNew, BracketHeelNewToeSame, BracketHeelSameToeNew, BracketHeelSameToeSame} {
			spec := bracketSpecs[st]
			for heel := 0; heel < n; heel++ {
				if spec.heelNew == contains(curArrows, heel) {
					continue
				}
				for toe := 0; toe < n; toe++ {
					if toe == heel {
						continue
					}
					if spec.toeNew == contains(curArrows, toe) {
						continue
					}
					if !model.Bracketable(foot, heel, toe) {
						continue
					}
					out = append(out, footCandidate{
						move: FootMove{StepType: st, Actions: [2]FootAction{action, action}},
						result: newFootState(
							attachmentForAction(heel, action),
							attachmentForAction(toe, action),
						),
					})
				}
			}
		}
	}
	return out
}

// EnumerateJumps produces every transition where both feet move at once,
// landing simultaneously, via the cartesian product of each foot's raw
// candidates, pruned down to pairs whose halves satisfy the relevant
// relation against each other's landing arrows and whose combined
// BodyState is valid against model.
func EnumerateJumps(model *pad.PadModel, state BodyState, leftAction, rightAction FootAction) []transition {
	left := rawCandidates(model, state, pad.Left, leftAction)
	right := rawCandidates(model, state, pad.Right, rightAction)
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	leftIdx := make([]interface{}, len(left))
	for i := range left {
		leftIdx[i] = i
	}
	rightIdx := make([]interface{}, len(right))
	for i := range right {
		rightIdx[i] = i
	}

	var out []transition
	for combo := range cartesian.Iter(leftIdx, rightIdx) {
		l := left[combo[0].(int)]
		r := right[combo[1].(int)]

		candidate := state
		candidate.Feet[pad.Left] = l.result
		candidate.Feet[pad.Right] = r.result

		if !jumpHalvesAgree(model, pad.Left, l, r) || !jumpHalvesAgree(model, pad.Right, r, l) {
			continue
		}
		if !candidate.Valid(model) {
			continue
		}

		out = append(out, transition{
			to: candidate,
			move: MoveLabel{
				Feet: [2]FootMove{
					pad.Left:  withMoved(l.move),
					pad.Right: withMoved(r.move),
				},
			},
		})
	}
	return out
}

func withMoved(m FootMove) FootMove {
	m.Moved = true
	return m
}

// jumpHalvesAgree checks mover's landing arrow(s) satisfy the relation
// implied by its StepType against other's landing arrow(s).
func jumpHalvesAgree(model *pad.PadModel, foot pad.Foot, mover, other footCandidate) bool {
	otherArrows := other.result.Arrows()
	moverArrows := mover.result.Arrows()

	rel, stretch := relNatural, false
	if spec, ok := singleFootSpecs[mover.move.StepType]; ok {
		rel, stretch = spec.relation, spec.stretch
	} else if spec, ok := bracketSpecs[mover.move.StepType]; ok {
		rel, stretch = spec.relation, spec.stretch
	}
	for _, a := range moverArrows {
		if !relationHolds(model, foot, a, otherArrows, rel, stretch) {
			return false
		}
	}
	return true
}
