package stepgraph

import "github.com/padstep/padstep/pad"

// transition is one candidate (new state, move) pair produced by filling
// a foot's StepType against a BodyState.
type transition struct {
	to   BodyState
	move MoveLabel
}

func relationTable(model *pad.PadModel, foot pad.Foot, rel relation, stretch bool) pad.BoolTable {
	switch rel {
	case relCrossoverFront:
		if stretch {
			return model.OtherFootPairingsCrossoverFrontStretch[foot]
		}
		return model.OtherFootPairingsCrossoverFront[foot]
	case relCrossoverBehind:
		if stretch {
			return model.OtherFootPairingsCrossoverBehindStretch[foot]
		}
		return model.OtherFootPairingsCrossoverBehind[foot]
	case relInvert:
		if stretch {
			return model.OtherFootPairingsInvertedStretch[foot]
		}
		return model.OtherFootPairingsInverted[foot]
	default:
		if stretch {
			return model.OtherFootPairingsStretch[foot]
		}
		return model.OtherFootPairings[foot]
	}
}

// relationHolds reports whether candidate satisfies rel against every
// arrow the other foot currently occupies. A foot with no committed
// arrows (as after a release) imposes no constraint.
func relationHolds(model *pad.PadModel, foot pad.Foot, candidate int, otherArrows []int, rel relation, stretch bool) bool {
	if len(otherArrows) == 0 {
		return true
	}
	t := relationTable(model, foot, rel, stretch)
	for _, oa := range otherArrows {
		if !t.Get(candidate, oa) {
			return false
		}
	}
	return true
}

func attachmentForAction(arrow int, action FootAction) FootArrowAttachment {
	switch action {
	case Hold:
		return FootArrowAttachment{Arrow: arrow, State: Held}
	case Roll:
		return FootArrowAttachment{Arrow: arrow, State: Rolling}
	case Release:
		return emptyAttachment
	default:
		return FootArrowAttachment{Arrow: arrow, State: Resting}
	}
}

// fillSameArrow re-triggers, holds, rolls or releases the arrow a
// single-portion foot already occupies.
func fillSameArrow(state BodyState, foot pad.Foot, action FootAction) []transition {
	fs := state.Foot(foot)
	if fs.Count() != 1 {
		return nil
	}
	cur := fs[0]
	if cur.Arrow == NoArrow {
		cur = fs[1]
	}
	if action == Release && cur.State == Resting {
		return nil // nothing committed enough to release
	}
	next := singleArrow(attachmentForAction(cur.Arrow, action))
	return []transition{{
		to: state.withFoot(foot, next),
		move: singleFoot(int(foot), FootMove{
			StepType: SameArrow,
			Actions:  [2]FootAction{action, action},
		}),
	}}
}

// fillSingleFoot enumerates every arrow a foot with one free (or freshly
// vacated) portion can move to under spec's st, i.e. NewArrow, its
// crossover/invert cousins, and their stretch variants.
func fillSingleFoot(model *pad.PadModel, state BodyState, foot pad.Foot, st StepType, action FootAction) []transition {
	spec, ok := singleFootSpecs[st]
	if !ok {
		return nil
	}
	fs := state.Foot(foot)
	if fs.Count() != 1 {
		return nil
	}
	other := foot.Other()
	otherArrows := state.Foot(other).Arrows()
	currentArrow := fs.Arrows()[0]

	var out []transition
	for candidate := 0; candidate < model.NumArrows(); candidate++ {
		if candidate == currentArrow {
			continue
		}
		if !relationHolds(model, foot, candidate, otherArrows, spec.relation, spec.stretch) {
			continue
		}
		next := singleArrow(attachmentForAction(candidate, action))
		out = append(out, transition{
			to: state.withFoot(foot, next),
			move: singleFoot(int(foot), FootMove{
				StepType: st,
				Actions:  [2]FootAction{action, action},
			}),
		})
	}
	return out
}

// fillFootSwap moves a single-portion foot onto the arrow the other foot
// currently occupies, while the other foot simultaneously has to vacate
// it; StepGraph models this as two coordinated single-foot moves inside
// one jump-shaped MoveLabel, built by jump.go, so fillFootSwap only
// produces this foot's half: land on the other foot's current arrow.
func fillFootSwap(state BodyState, foot pad.Foot, action FootAction) []transition {
	fs := state.Foot(foot)
	if fs.Count() != 1 {
		return nil
	}
	other := foot.Other()
	otherArrows := state.Foot(other).Arrows()
	if len(otherArrows) != 1 {
		return nil
	}
	next := singleArrow(attachmentForAction(otherArrows[0], action))
	return []transition{{
		to: state.withFoot(foot, next),
		move: singleFoot(int(foot), FootMove{
			StepType: FootSwap,
			Actions:  [2]FootAction{action, action},
		}),
	}}
}

// fillBracket enumerates every (heel, toe) arrow pair a foot can land
// a full two-portion bracket on, per st's spec.
func fillBracket(model *pad.PadModel, state BodyState, foot pad.Foot, st StepType, heelAction, toeAction FootAction) []transition {
	spec, ok := bracketSpecs[st]
	if !ok {
		return nil
	}
	other := foot.Other()
	otherArrows := state.Foot(other).Arrows()
	cur := state.Foot(foot)
	curArrows := cur.Arrows()

	var out []transition
	n := model.NumArrows()
	for heel := 0; heel < n; heel++ {
		if !relationHolds(model, foot, heel, otherArrows, spec.relation, spec.stretch) {
			continue
		}
		if spec.heelNew == contains(curArrows, heel) {
			continue
		}
		for toe := 0; toe < n; toe++ {
			if toe == heel {
				continue
			}
			if !relationHolds(model, foot, toe, otherArrows, spec.relation, spec.stretch) {
				continue
			}
			if spec.toeNew == contains(curArrows, toe) {
				continue
			}
			if !model.Bracketable(foot, heel, toe) {
				continue
			}
			next := newFootState(
				attachmentForAction(heel, heelAction),
				attachmentForAction(toe, toeAction),
			)
			actions := [2]FootAction{heelAction, toeAction}
			if next[0].Arrow != heel {
				actions = [2]FootAction{toeAction, heelAction}
			}
			out = append(out, transition{
				to: state.withFoot(foot, next),
				move: singleFoot(int(foot), FootMove{
					StepType: st,
					Actions:  actions,
				}),
			})
		}
	}
	return out
}

// fillSingleArrowBracket handles the case where a foot already has both
// portions committed and only one portion (heel or toe) acts, leaving
// the other portion's attachment untouched.
func fillSingleArrowBracket(model *pad.PadModel, state BodyState, foot pad.Foot, st StepType, action FootAction) []transition {
	spec, ok := singleArrowBracketSpecs[st]
	if !ok {
		return nil
	}
	fs := state.Foot(foot)
	if fs.Count() != 2 {
		return nil
	}
	other := foot.Other()
	otherArrows := state.Foot(other).Arrows()

	movingIdx, staticIdx := 0, 1
	if !portionIsFirst(fs, spec.moving) {
		movingIdx, staticIdx = 1, 0
	}
	static := fs[staticIdx]
	movingCur := fs[movingIdx]

	var out []transition
	n := model.NumArrows()
	for candidate := 0; candidate < n; candidate++ {
		if spec.newArrow == (candidate == movingCur.Arrow) {
			continue
		}
		if !relationHolds(model, foot, candidate, otherArrows, spec.relation, spec.stretch) {
			continue
		}
		if !model.Bracketable(foot, candidate, static.Arrow) {
			continue
		}
		next := newFootState(attachmentForAction(candidate, action), static)
		out = append(out, transition{
			to: state.withFoot(foot, next),
			move: singleFoot(int(foot), FootMove{
				StepType: st,
				Actions:  actionsFor(spec.moving, action, static.State.asAction()),
			}),
		})
	}
	return out
}

// portionIsFirst reports whether the portion semantically identified as
// "moving" (heel or toe by relative front/back position, heel = smaller
// Y / nearer front in this model's convention of "OtherHeel" requiring
// otherPos.Y <= thisPos.Y) corresponds to fs[0] rather than fs[1]. Since
// FootState only stores arrow indices and commitment state (not a
// heel/toe label), and newFootState keeps its two slots in ascending
// arrow-index order, fs[0] (the lower arrow index) is treated as "heel"
// and fs[1] as "toe", whatever the arrows' actual positions.
func portionIsFirst(fs FootState, portion pad.FootPortion) bool {
	return portion == pad.Heel
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (s ArrowAttachmentState) asAction() FootAction {
	switch s {
	case Held:
		return Hold
	case Rolling:
		return Roll
	default:
		return Tap
	}
}

func actionsFor(moving pad.FootPortion, movingAction, staticAction FootAction) [2]FootAction {
	if moving == pad.Heel {
		return [2]FootAction{movingAction, staticAction}
	}
	return [2]FootAction{staticAction, movingAction}
}
