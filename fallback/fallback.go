// Package fallback implements StepTypeFallbacks: ordered replacement
// lists telling PerformedChart generation what to try when the target
// pad cannot express a move's StepType literally (§4.D).
package fallback

import (
	"github.com/pkg/errors"

	"github.com/padstep/padstep"
	"github.com/padstep/padstep/stepgraph"
)

// DroppedArrowPenalty is the flat cost added per arrow that a fallback
// drops relative to the StepType it replaces (e.g. a bracket falling
// back to a single step drops one arrow).
const DroppedArrowPenalty = 100.0

// Table is a validated, depth-first-expanded StepTypeFallbacks table.
// It is immutable after Build/Load succeeds.
type Table struct {
	// fallbacks[s] is the fully expanded, splice-resolved ordered list of
	// acceptable replacements for s, always starting with s itself unless
	// the source data chose otherwise.
	fallbacks map[stepgraph.StepType][]stepgraph.StepType
}

// rawEntry is one StepTypeFallbacks value before splice expansion: a
// literal StepType, or a reference (splice) to another key's list.
type rawEntry struct {
	literal stepgraph.StepType
	splice  stepgraph.StepType
	isSplice bool
}

// Build validates and expands raw (one ordered list of rawEntry per
// StepType) into a Table, rejecting missing keys and splice cycles.
func Build(raw map[stepgraph.StepType][]rawEntry) (*Table, error) {
	for st := range stepgraph.AllStepTypes() {
		if _, ok := raw[st]; !ok {
			return nil, padstep.NewConfigError(st.String(), errors.Wrap(padstep.ErrMissingFallback, "no fallback entry"))
		}
		if len(raw[st]) == 0 {
			return nil, padstep.NewConfigError(st.String(), errors.Wrap(padstep.ErrMissingFallback, "empty fallback list"))
		}
	}

	t := &Table{fallbacks: make(map[stepgraph.StepType][]stepgraph.StepType, len(raw))}
	for st := range raw {
		expanded, err := expand(st, raw, make(map[stepgraph.StepType]bool))
		if err != nil {
			return nil, padstep.NewConfigError(st.String(), err)
		}
		t.fallbacks[st] = expanded
	}
	return t, nil
}

// expand depth-first resolves splices for st, detecting cycles via the
// visiting set passed down the recursion.
func expand(st stepgraph.StepType, raw map[stepgraph.StepType][]rawEntry, visiting map[stepgraph.StepType]bool) ([]stepgraph.StepType, error) {
	if visiting[st] {
		return nil, padstep.ErrFallbackCycle
	}
	visiting[st] = true
	defer delete(visiting, st)

	entries, ok := raw[st]
	if !ok {
		return nil, errors.Wrapf(padstep.ErrMissingFallback, "step type %s", st)
	}

	var out []stepgraph.StepType
	seen := make(map[stepgraph.StepType]bool)
	for _, e := range entries {
		if !e.isSplice {
			if !seen[e.literal] {
				seen[e.literal] = true
				out = append(out, e.literal)
			}
			continue
		}
		spliced, err := expand(e.splice, raw, visiting)
		if err != nil {
			return nil, err
		}
		for _, s := range spliced {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// FallbacksFor returns the ordered replacement list for st, or nil if
// st has no entry (the table is malformed; Build should have rejected
// that already).
func (t *Table) FallbacksFor(st stepgraph.StepType) []stepgraph.StepType {
	return t.fallbacks[st]
}

// FallbackIndex returns candidate's position within st's fallback list,
// or -1 if candidate does not appear there.
func (t *Table) FallbackIndex(st, candidate stepgraph.StepType) int {
	for i, c := range t.fallbacks[st] {
		if c == candidate {
			return i
		}
	}
	return -1
}

// Cost returns the §4.D fallback cost of replacing st with candidate:
// fallback_index / max(1, len(fallbacks)-1), a value in [0, 1]. A
// candidate that is not in st's fallback list costs DroppedArrowPenalty.
// Otherwise the cost does not include the dropped-arrow penalty; callers add
// DroppedArrowPenalty * droppedArrows themselves, since only the caller
// knows how many arrows a specific candidate actually dropped for a
// specific move.
func (t *Table) Cost(st, candidate stepgraph.StepType) float64 {
	idx := t.FallbackIndex(st, candidate)
	if idx < 0 {
		return DroppedArrowPenalty
	}
	denom := len(t.fallbacks[st]) - 1
	if denom < 1 {
		denom = 1
	}
	return float64(idx) / float64(denom)
}
