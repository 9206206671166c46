// Package stepgraph enumerates the exhaustive reachability graph over
// body states for one PadModel: which arrows each foot occupies, and the
// labeled moves that connect one body state to the next (§4.C).
package stepgraph

import (
	"sort"

	"github.com/padstep/padstep/pad"
)

// NoArrow marks a FootArrowAttachment portion that has nothing committed
// to it.
const NoArrow = -1

// ArrowAttachmentState is how committed a foot's portion is to the arrow
// it occupies. Held and Rolling both mean "still committed"; the
// distinction exists only so charts round-trip (§3).
type ArrowAttachmentState uint8

const (
	Resting ArrowAttachmentState = iota
	Held
	Rolling
)

func (s ArrowAttachmentState) String() string {
	switch s {
	case Resting:
		return "resting"
	case Held:
		return "held"
	case Rolling:
		return "rolling"
	default:
		return "invalid"
	}
}

// FootArrowAttachment is one portion (heel or toe) of a foot: which
// arrow it occupies (or NoArrow) and how committed it is.
type FootArrowAttachment struct {
	Arrow int
	State ArrowAttachmentState
}

var emptyAttachment = FootArrowAttachment{Arrow: NoArrow, State: Resting}

// FootState is both portions of one foot, always stored with the
// canonicalization invariant: if both portions are committed, they are
// ordered by ascending arrow index, so structural equality of BodyState
// does not depend on which physical portion (heel/toe) produced which
// slot (§3).
type FootState [2]FootArrowAttachment

func newFootState(a, b FootArrowAttachment) FootState {
	if b.Arrow == NoArrow || (a.Arrow != NoArrow && a.Arrow <= b.Arrow) {
		return FootState{a, b}
	}
	return FootState{b, a}
}

// singleArrow returns a FootState with only one committed portion.
func singleArrow(a FootArrowAttachment) FootState {
	return FootState{a, emptyAttachment}
}

// Arrows returns the committed arrow indices for this foot, in
// canonical order. Length 0, 1 or 2.
func (f FootState) Arrows() []int {
	var out []int
	for _, a := range f {
		if a.Arrow != NoArrow {
			out = append(out, a.Arrow)
		}
	}
	return out
}

// Count returns how many portions are committed (0, 1 or 2).
func (f FootState) Count() int {
	return len(f.Arrows())
}

// Has reports whether this foot has a (possibly either-portion)
// commitment to arrow.
func (f FootState) Has(arrow int) bool {
	return f[0].Arrow == arrow || f[1].Arrow == arrow
}

// AttachmentFor returns the attachment committed to arrow and whether
// one exists.
func (f FootState) AttachmentFor(arrow int) (FootArrowAttachment, bool) {
	if f[0].Arrow == arrow {
		return f[0], true
	}
	if f[1].Arrow == arrow {
		return f[1], true
	}
	return FootArrowAttachment{}, false
}

// BodyState is the full per-foot, per-portion attachment snapshot (§3).
// It is comparable (usable as a map key and with ==) because every field
// is a fixed-size array of comparable values; the canonicalization
// invariant in FootState is what makes that comparison structural.
type BodyState struct {
	Feet [2]FootState // indexed by pad.Left / pad.Right
}

// Foot returns the FootState for f.
func (b BodyState) Foot(f pad.Foot) FootState {
	return b.Feet[f]
}

// withFoot returns a copy of b with foot f replaced.
func (b BodyState) withFoot(f pad.Foot, fs FootState) BodyState {
	b.Feet[f] = fs
	return b
}

// occupants returns, for every committed arrow, which (foot, portion
// index within FootState) holds it. When two portions share an arrow,
// the later one wins.
func (b BodyState) occupants() map[int][2]int {
	out := make(map[int][2]int, 4)
	for f := 0; f < 2; f++ {
		for p := 0; p < 2; p++ {
			a := b.Feet[f][p]
			if a.Arrow != NoArrow {
				out[a.Arrow] = [2]int{f, p}
			}
		}
	}
	return out
}

// Valid reports whether b satisfies the §3 BodyState validity contract
// against model: no arrow double-occupied, no committed arrow both
// crossover and inverted with the same other-foot arrow, and any
// two-portion foot's portion-to-arrow mapping is bracketable.
func (b BodyState) Valid(model *pad.PadModel) bool {
	seen := make(map[int]bool, 4)
	for f := pad.Left; f <= pad.Right; f++ {
		fs := b.Feet[f]
		arrows := fs.Arrows()
		for _, a := range arrows {
			if seen[a] {
				return false
			}
			seen[a] = true
		}
		if len(arrows) == 2 {
			if !model.Bracketable(f, arrows[0], arrows[1]) {
				return false
			}
		}
	}

	for f := pad.Left; f <= pad.Right; f++ {
		other := f.Other()
		for _, a := range b.Feet[f].Arrows() {
			for _, oa := range b.Feet[other].Arrows() {
				crossed := model.OtherFootPairingsCrossoverFront[f].Get(a, oa) ||
					model.OtherFootPairingsCrossoverFrontStretch[f].Get(a, oa) ||
					model.OtherFootPairingsCrossoverBehind[f].Get(a, oa) ||
					model.OtherFootPairingsCrossoverBehindStretch[f].Get(a, oa)
				inverted := model.OtherFootPairingsInverted[f].Get(a, oa) ||
					model.OtherFootPairingsInvertedStretch[f].Get(a, oa)
				if crossed && inverted {
					return false
				}
			}
		}
	}
	return true
}

// RootState builds the canonical starting BodyState for model: both
// feet Resting on model.Root()'s arrows.
func RootState(model *pad.PadModel) BodyState {
	return StartingBodyState(model.Root())
}

// StartingBodyState builds the BodyState for an arbitrary starting pair
// (any tier, not just tier 0), both feet Resting. Used by the performed
// package to try every starting tier in turn (§4.F "Starting tiers").
func StartingBodyState(pair pad.StartingPair) BodyState {
	return BodyState{
		Feet: [2]FootState{
			pad.Left:  singleArrow(FootArrowAttachment{Arrow: pair.Left, State: Resting}),
			pad.Right: singleArrow(FootArrowAttachment{Arrow: pair.Right, State: Resting}),
		},
	}
}

// sortedInts is a tiny helper kept local instead of pulling in
// golang.org/x/exp/slices for a three-line sort; the only user of that
// package in this module is the lane-event sorting in event/lane.go.
func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}
