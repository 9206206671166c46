package stepgraph

import "github.com/padstep/padstep/pad"

// StepType names one way a single foot (or, for brackets, one foot using
// both its portions) can move. The taxonomy covers §4.C.1: same-arrow,
// new-arrow, crossovers, inversions, foot-swaps and the bracket families,
// each split by whether the move only works through a stretch other-foot
// pairing.
type StepType uint16

const (
	InvalidStepType StepType = iota

	SameArrow

	NewArrow
	NewArrowStretch
	CrossoverFront
	CrossoverFrontStretch
	CrossoverBehind
	CrossoverBehindStretch
	Invert
	InvertStretch

	FootSwap

	BracketHeelNewToeNew
	BracketHeelNewToeSame
	BracketHeelSameToeNew
	BracketHeelSameToeSame
	BracketHeelNewToeNewStretch
	BracketHeelNewToeSameStretch
	BracketHeelSameToeNewStretch
	BracketHeelSameToeSameStretch
	BracketCrossoverFrontHeelNewToeNew
	BracketCrossoverFrontHeelNewToeSame
	BracketCrossoverFrontHeelSameToeNew
	BracketCrossoverFrontHeelSameToeSame
	BracketCrossoverBehindHeelNewToeNew
	BracketCrossoverBehindHeelNewToeSame
	BracketCrossoverBehindHeelSameToeNew
	BracketCrossoverBehindHeelSameToeSame
	BracketInvertHeelNewToeNew
	BracketInvertHeelNewToeSame
	BracketInvertHeelSameToeNew
	BracketInvertHeelSameToeSame

	SingleArrowBracketHeelNew
	SingleArrowBracketHeelSame
	SingleArrowBracketToeNew
	SingleArrowBracketToeSame
	SingleArrowBracketHeelNewStretch
	SingleArrowBracketHeelSameStretch
	SingleArrowBracketToeNewStretch
	SingleArrowBracketToeSameStretch

	numStepTypes
)

var stepTypeNames = map[StepType]string{
	InvalidStepType:                       "invalid",
	SameArrow:                             "same-arrow",
	NewArrow:                              "new-arrow",
	NewArrowStretch:                       "new-arrow-stretch",
	CrossoverFront:                        "crossover-front",
	CrossoverFrontStretch:                 "crossover-front-stretch",
	CrossoverBehind:                       "crossover-behind",
	CrossoverBehindStretch:                "crossover-behind-stretch",
	Invert:                                "invert",
	InvertStretch:                         "invert-stretch",
	FootSwap:                              "foot-swap",
	BracketHeelNewToeNew:                  "bracket-heel-new-toe-new",
	BracketHeelNewToeSame:                 "bracket-heel-new-toe-same",
	BracketHeelSameToeNew:                 "bracket-heel-same-toe-new",
	BracketHeelSameToeSame:                "bracket-heel-same-toe-same",
	BracketHeelNewToeNewStretch:           "bracket-heel-new-toe-new-stretch",
	BracketHeelNewToeSameStretch:          "bracket-heel-new-toe-same-stretch",
	BracketHeelSameToeNewStretch:          "bracket-heel-same-toe-new-stretch",
	BracketHeelSameToeSameStretch:         "bracket-heel-same-toe-same-stretch",
	BracketCrossoverFrontHeelNewToeNew:    "bracket-crossover-front-heel-new-toe-new",
	BracketCrossoverFrontHeelNewToeSame:   "bracket-crossover-front-heel-new-toe-same",
	BracketCrossoverFrontHeelSameToeNew:   "bracket-crossover-front-heel-same-toe-new",
	BracketCrossoverFrontHeelSameToeSame:  "bracket-crossover-front-heel-same-toe-same",
	BracketCrossoverBehindHeelNewToeNew:   "bracket-crossover-behind-heel-new-toe-new",
	BracketCrossoverBehindHeelNewToeSame:  "bracket-crossover-behind-heel-new-toe-same",
	BracketCrossoverBehindHeelSameToeNew:  "bracket-crossover-behind-heel-same-toe-new",
	BracketCrossoverBehindHeelSameToeSame: "bracket-crossover-behind-heel-same-toe-same",
	BracketInvertHeelNewToeNew:            "bracket-invert-heel-new-toe-new",
	BracketInvertHeelNewToeSame:           "bracket-invert-heel-new-toe-same",
	BracketInvertHeelSameToeNew:           "bracket-invert-heel-same-toe-new",
	BracketInvertHeelSameToeSame:          "bracket-invert-heel-same-toe-same",
	SingleArrowBracketHeelNew:             "single-arrow-bracket-heel-new",
	SingleArrowBracketHeelSame:            "single-arrow-bracket-heel-same",
	SingleArrowBracketToeNew:              "single-arrow-bracket-toe-new",
	SingleArrowBracketToeSame:             "single-arrow-bracket-toe-same",
	SingleArrowBracketHeelNewStretch:      "single-arrow-bracket-heel-new-stretch",
	SingleArrowBracketHeelSameStretch:     "single-arrow-bracket-heel-same-stretch",
	SingleArrowBracketToeNewStretch:       "single-arrow-bracket-toe-new-stretch",
	SingleArrowBracketToeSameStretch:      "single-arrow-bracket-toe-same-stretch",
}

func (s StepType) String() string {
	if n, ok := stepTypeNames[s]; ok {
		return n
	}
	return "unknown"
}

// AllStepTypes returns every valid (non-Invalid) StepType. Used by
// fallback.Build to check that every StepType has a fallback entry.
func AllStepTypes() map[StepType]bool {
	out := make(map[StepType]bool, len(stepTypeNames))
	for st := range stepTypeNames {
		if st != InvalidStepType {
			out[st] = true
		}
	}
	return out
}

var stepTypeByName = func() map[string]StepType {
	m := make(map[string]StepType, len(stepTypeNames))
	for st, name := range stepTypeNames {
		m[name] = st
	}
	return m
}()

// ParseStepType looks up a StepType by its wire name (the same spelling
// String returns), for configuration loaders.
func ParseStepType(name string) (StepType, bool) {
	st, ok := stepTypeByName[name]
	return st, ok
}

// ArrowCount is how many arrows this StepType's move commits to: 1 for
// every single-foot type, 2 for every bracket type. SingleArrowBracket
// moves commit to 1 new arrow even though the resulting FootState has
// two portions, because the other portion was already committed.
func (s StepType) ArrowCount() int {
	if _, ok := bracketSpecs[s]; ok {
		return 2
	}
	return 1
}

// relation is the geometric relationship a move's destination arrow must
// have with the other foot's occupied arrow(s).
type relation uint8

const (
	relNatural relation = iota
	relCrossoverFront
	relCrossoverBehind
	relInvert
)

// singleFootSpec parametrizes the NewArrow/Crossover*/Invert family: one
// portion moves to a new arrow, which must satisfy relation (optionally
// via the stretch table) against every arrow the other foot occupies.
type singleFootSpec struct {
	relation relation
	stretch  bool
}

var singleFootSpecs = map[StepType]singleFootSpec{
	NewArrow:               {relNatural, false},
	NewArrowStretch:        {relNatural, true},
	CrossoverFront:         {relCrossoverFront, false},
	CrossoverFrontStretch:  {relCrossoverFront, true},
	CrossoverBehind:        {relCrossoverBehind, false},
	CrossoverBehindStretch: {relCrossoverBehind, true},
	Invert:                 {relInvert, false},
	InvertStretch:          {relInvert, true},
}

// bracketSpec parametrizes the two-portion bracket family: both the heel
// and toe arrow must independently satisfy relation against the other
// foot, the two arrows must be bracketable for this foot, and heelNew /
// toeNew say whether each portion is landing on a new arrow (true) or
// re-confirming an arrow it already occupied (false).
type bracketSpec struct {
	heelNew, toeNew bool
	relation        relation
	stretch         bool
}

var bracketSpecs = map[StepType]bracketSpec{
	BracketHeelNewToeNew:                 {true, true, relNatural, false},
	BracketHeelNewToeSame:                {true, false, relNatural, false},
	BracketHeelSameToeNew:                {false, true, relNatural, false},
	BracketHeelSameToeSame:               {false, false, relNatural, false},
	BracketHeelNewToeNewStretch:          {true, true, relNatural, true},
	BracketHeelNewToeSameStretch:         {true, false, relNatural, true},
	BracketHeelSameToeNewStretch:         {false, true, relNatural, true},
	BracketHeelSameToeSameStretch:        {false, false, relNatural, true},
	BracketCrossoverFrontHeelNewToeNew:   {true, true, relCrossoverFront, false},
	BracketCrossoverFrontHeelNewToeSame:  {true, false, relCrossoverFront, false},
	BracketCrossoverFrontHeelSameToeNew:  {false, true, relCrossoverFront, false},
	BracketCrossoverFrontHeelSameToeSame: {false, false, relCrossoverFront, false},
	BracketCrossoverBehindHeelNewToeNew:  {true, true, relCrossoverBehind, false},
	BracketCrossoverBehindHeelNewToeSame: {true, false, relCrossoverBehind, false},
	BracketCrossoverBehindHeelSameToeNew: {false, true, relCrossoverBehind, false},
	BracketCrossoverBehindHeelSameToeSame: {false, false, relCrossoverBehind, false},
	BracketInvertHeelNewToeNew:           {true, true, relInvert, false},
	BracketInvertHeelNewToeSame:          {true, false, relInvert, false},
	BracketInvertHeelSameToeNew:          {false, true, relInvert, false},
	BracketInvertHeelSameToeSame:         {false, false, relInvert, false},
}

// singleArrowBracketSpec parametrizes moves where one portion of a
// two-portion foot is already held and only the other portion acts.
// moving selects which portion acts; newArrow says whether it lands on a
// new arrow or re-confirms its current one.
type singleArrowBracketSpec struct {
	moving   pad.FootPortion
	newArrow bool
	relation relation
	stretch  bool
}

var singleArrowBracketSpecs = map[StepType]singleArrowBracketSpec{
	SingleArrowBracketHeelNew:         {pad.Heel, true, relNatural, false},
	SingleArrowBracketHeelSame:        {pad.Heel, false, relNatural, false},
	SingleArrowBracketToeNew:          {pad.Toe, true, relNatural, false},
	SingleArrowBracketToeSame:         {pad.Toe, false, relNatural, false},
	SingleArrowBracketHeelNewStretch:  {pad.Heel, true, relNatural, true},
	SingleArrowBracketHeelSameStretch: {pad.Heel, false, relNatural, true},
	SingleArrowBracketToeNewStretch:   {pad.Toe, true, relNatural, true},
	SingleArrowBracketToeSameStretch:  {pad.Toe, false, relNatural, true},
}

// IsBracket reports whether s is one of the two-portion bracket types.
func (s StepType) IsBracket() bool {
	_, ok := bracketSpecs[s]
	return ok
}

// IsSingleArrowBracket reports whether s keeps one portion already
// committed and only acts with the other.
func (s StepType) IsSingleArrowBracket() bool {
	_, ok := singleArrowBracketSpecs[s]
	return ok
}

// IsFootSwap reports whether s is the foot-swap StepType.
func (s StepType) IsFootSwap() bool {
	return s == FootSwap
}

// IsSameArrow reports whether s is a same-arrow retrigger.
func (s StepType) IsSameArrow() bool {
	return s == SameArrow
}

func (s StepType) relationOf() (relation, bool) {
	if sp, ok := singleFootSpecs[s]; ok {
		return sp.relation, true
	}
	if sp, ok := bracketSpecs[s]; ok {
		return sp.relation, true
	}
	if sp, ok := singleArrowBracketSpecs[s]; ok {
		return sp.relation, true
	}
	return relNatural, false
}

// IsCrossover reports whether s requires a crossover pairing (front or
// behind) against the other foot.
func (s StepType) IsCrossover() bool {
	rel, ok := s.relationOf()
	return ok && (rel == relCrossoverFront || rel == relCrossoverBehind)
}

// IsInvert reports whether s requires an inverted pairing against the
// other foot.
func (s StepType) IsInvert() bool {
	rel, ok := s.relationOf()
	return ok && rel == relInvert
}

// FootAction is what a foot's portion does at a step event: commit for
// the duration of a tap, commit and stay down, commit and keep
// re-triggering, or lift off an arrow it previously committed to.
type FootAction uint8

const (
	Tap FootAction = iota
	Hold
	Roll
	Release
)

func (a FootAction) String() string {
	switch a {
	case Tap:
		return "tap"
	case Hold:
		return "hold"
	case Roll:
		return "roll"
	case Release:
		return "release"
	default:
		return "invalid"
	}
}
