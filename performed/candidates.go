package performed

import (
	"sort"

	cartesian "github.com/schwarmco/go-cartesian-product"

	"github.com/padstep/padstep/fallback"
	"github.com/padstep/padstep/stepgraph"
)

// candidateSpec is one cross-product combination of per-foot fallback
// StepTypes tried against an expressed MoveLabel (§4.F "Search").
type candidateSpec struct {
	stepTypes [2]stepgraph.StepType
	moved     [2]bool
	cost      float64
}

// buildCandidates enumerates the cross product over each moved foot's
// fallback list (an unmoved foot contributes a single placeholder), costs
// each combination via the fallback table plus the dropped-arrow
// penalty, and returns them cheapest first.
func buildCandidates(original stepgraph.MoveLabel, fb *fallback.Table) []candidateSpec {
	var lists [2][]stepgraph.StepType
	var moved [2]bool
	for i := 0; i < 2; i++ {
		moved[i] = original.Feet[i].Moved
		if moved[i] {
			lists[i] = fb.FallbacksFor(original.Feet[i].StepType)
		} else {
			lists[i] = []stepgraph.StepType{stepgraph.InvalidStepType}
		}
	}

	aIdx := make([]interface{}, len(lists[0]))
	for i := range lists[0] {
		aIdx[i] = i
	}
	bIdx := make([]interface{}, len(lists[1]))
	for i := range lists[1] {
		bIdx[i] = i
	}

	var out []candidateSpec
	for combo := range cartesian.Iter(aIdx, bIdx) {
		spec := candidateSpec{
			stepTypes: [2]stepgraph.StepType{lists[0][combo[0].(int)], lists[1][combo[1].(int)]},
			moved:     moved,
		}
		spec.cost = candidateCost(original, spec, fb)
		out = append(out, spec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].cost < out[j].cost })
	return out
}

// candidateCost is the §4.D fallback cost plus a flat penalty per arrow
// the candidate drops relative to the expressed StepType.
func candidateCost(original stepgraph.MoveLabel, spec candidateSpec, fb *fallback.Table) float64 {
	var total float64
	for i := 0; i < 2; i++ {
		if !spec.moved[i] {
			continue
		}
		om := original.Feet[i].StepType
		total += fb.Cost(om, spec.stepTypes[i])
		if dropped := om.ArrowCount() - spec.stepTypes[i].ArrowCount(); dropped > 0 {
			total += float64(dropped) * fallback.DroppedArrowPenalty
		}
	}
	return total
}

// requiredAction extracts the single FootAction a fallback candidate
// must reproduce for a moved foot: the common action across its expressed
// portions, or its first portion's when they disagree (an edge case a
// bracket with mixed hold/tap actions can produce).
func requiredAction(fm stepgraph.FootMove) stepgraph.FootAction {
	n := fm.StepType.ArrowCount()
	if n == 0 {
		return stepgraph.Tap
	}
	a := fm.Actions[0]
	for i := 1; i < n; i++ {
		if fm.Actions[i] != a {
			return fm.Actions[0]
		}
	}
	return a
}

func labelMatchesAction(fm stepgraph.FootMove, action stepgraph.FootAction) bool {
	n := fm.StepType.ArrowCount()
	for i := 0; i < n; i++ {
		if fm.Actions[i] != action {
			return false
		}
	}
	return true
}

// matchingEdge is one real StepGraph edge out of the current state that
// satisfies a candidateSpec.
type matchingEdge struct {
	label stepgraph.MoveLabel
	dest  int
}

// matchingEdges filters the real outgoing edges of stateIdx down to
// those whose label matches spec's per-foot StepTypes and whose actions
// reproduce original's intent (hold stays a hold, a tap stays a tap).
// Matching against real edges (rather than hand-constructing a MoveLabel
// to look up) guarantees every returned candidate is actually reachable.
func matchingEdges(graph *stepgraph.StepGraph, stateIdx int, original stepgraph.MoveLabel, spec candidateSpec) []matchingEdge {
	var out []matchingEdge
	for label, dest := range graph.Links(stateIdx) {
		ok := true
		for i := 0; i < 2; i++ {
			if label.Feet[i].Moved != spec.moved[i] {
				ok = false
				break
			}
			if !spec.moved[i] {
				continue
			}
			if label.Feet[i].StepType != spec.stepTypes[i] {
				ok = false
				break
			}
			if label.Feet[i].StepType == original.Feet[i].StepType && label.Feet[i].Actions == original.Feet[i].Actions {
				continue
			}
			if !labelMatchesAction(label.Feet[i], requiredAction(original.Feet[i])) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, matchingEdge{label: label, dest: dest})
		}
	}
	return out
}
