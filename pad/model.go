package pad

import (
	"fmt"

	"github.com/pkg/errors"
)

// BoolTable is a pairing table indexed [thisArrow][otherArrow]. Tables
// are stored per-foot (see PadModel fields) because symmetry across feet
// is not required (§4.A contract).
type BoolTable [][]bool

func newBoolTable(n int) BoolTable {
	t := make(BoolTable, n)
	for i := range t {
		t[i] = make([]bool, n)
	}
	return t
}

// Get reports whether the relationship this table encodes holds between
// arrow and other. Out-of-range indices report false rather than
// panicking, since StepGraph expansion probes many (arrow, other) pairs
// that are never valid.
func (t BoolTable) Get(arrow, other int) bool {
	if arrow < 0 || arrow >= len(t) || other < 0 || other >= len(t[arrow]) {
		return false
	}
	return t[arrow][other]
}

// StartingPair is one candidate stance: which arrow the left foot and
// the right foot rest on.
type StartingPair struct {
	Left, Right int
}

// StartingTier is a set of starting pairs that are equally preferred.
type StartingTier []StartingPair

// PadModel is a declarative, immutable-after-construction description of
// one pad layout (§4.A).
type PadModel struct {
	// Name is a human-readable identifier, not used by any algorithm.
	Name string

	Arrows                 []Position
	YTravelCompensation    float64
	StartingPositions      []StartingTier

	BracketableOtherHeel                    [2]BoolTable
	BracketableOtherToe                     [2]BoolTable
	OtherFootPairings                       [2]BoolTable
	OtherFootPairingsStretch                [2]BoolTable
	OtherFootPairingsCrossoverFront          [2]BoolTable
	OtherFootPairingsCrossoverFrontStretch   [2]BoolTable
	OtherFootPairingsCrossoverBehind         [2]BoolTable
	OtherFootPairingsCrossoverBehindStretch  [2]BoolTable
	OtherFootPairingsInverted                [2]BoolTable
	OtherFootPairingsInvertedStretch         [2]BoolTable
}

// NumArrows returns the number of arrows (lanes) on the pad.
func (p *PadModel) NumArrows() int {
	return len(p.Arrows)
}

// Root returns the canonical tier-0 starting pair. Validate guarantees
// this always exists and is unique.
func (p *PadModel) Root() StartingPair {
	return p.StartingPositions[0][0]
}

// Validate checks the structural contracts from §4.A: table sizes match
// the arrow count, tier 0 has exactly one pair, and crossover-front /
// crossover-behind tables mirror each other.
func (p *PadModel) Validate() error {
	n := p.NumArrows()
	if n == 0 {
		return errors.New("pad model has no arrows")
	}
	if p.YTravelCompensation < 0 || p.YTravelCompensation > 1 {
		return errors.Errorf("y travel compensation %v out of [0,1]", p.YTravelCompensation)
	}

	tables := p.allTables()
	for name, pair := range tables {
		for foot := 0; foot < 2; foot++ {
			t := pair[foot]
			if len(t) != n {
				return errors.Errorf("table %s[%d] has %d rows, want %d", name, foot, len(t), n)
			}
			for i, row := range t {
				if len(row) != n {
					return errors.Errorf("table %s[%d][%d] has %d entries, want %d", name, foot, i, len(row), n)
				}
			}
		}
	}

	if len(p.StartingPositions) == 0 || len(p.StartingPositions[0]) != 1 {
		return errors.New("starting positions tier 0 must contain exactly one pair")
	}
	for tier, pairs := range p.StartingPositions {
		for _, sp := range pairs {
			if sp.Left < 0 || sp.Left >= n || sp.Right < 0 || sp.Right >= n {
				return errors.Errorf("starting tier %d references out-of-range arrow", tier)
			}
		}
	}

	// Crossover-front(left,right) must imply crossover-behind(right,left).
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if p.OtherFootPairingsCrossoverFront[Left].Get(i, j) && !p.OtherFootPairingsCrossoverBehind[Right].Get(j, i) {
				return errors.Errorf("crossover-front(%d,%d) for left foot has no mirroring crossover-behind(%d,%d) for right foot", i, j, j, i)
			}
			if p.OtherFootPairingsCrossoverFront[Right].Get(i, j) && !p.OtherFootPairingsCrossoverBehind[Left].Get(j, i) {
				return errors.Errorf("crossover-front(%d,%d) for right foot has no mirroring crossover-behind(%d,%d) for left foot", i, j, j, i)
			}
		}
	}
	return nil
}

func (p *PadModel) allTables() map[string]*[2]BoolTable {
	return map[string]*[2]BoolTable{
		"BracketableOtherHeel":                   &p.BracketableOtherHeel,
		"BracketableOtherToe":                    &p.BracketableOtherToe,
		"OtherFootPairings":                      &p.OtherFootPairings,
		"OtherFootPairingsStretch":                &p.OtherFootPairingsStretch,
		"OtherFootPairingsCrossoverFront":          &p.OtherFootPairingsCrossoverFront,
		"OtherFootPairingsCrossoverFrontStretch":   &p.OtherFootPairingsCrossoverFrontStretch,
		"OtherFootPairingsCrossoverBehind":         &p.OtherFootPairingsCrossoverBehind,
		"OtherFootPairingsCrossoverBehindStretch":  &p.OtherFootPairingsCrossoverBehindStretch,
		"OtherFootPairingsInverted":                &p.OtherFootPairingsInverted,
		"OtherFootPairingsInvertedStretch":         &p.OtherFootPairingsInvertedStretch,
	}
}

// Bracketable reports whether, for the given foot, arrows a and b can be
// bracketed together (heel+toe): true if either the OtherHeel or the
// OtherToe bracket table marks the pair (a, b).
func (p *PadModel) Bracketable(foot Foot, a, b int) bool {
	return p.BracketableOtherHeel[foot].Get(a, b) || p.BracketableOtherToe[foot].Get(a, b)
}

func (d *Position) String() string {
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}
