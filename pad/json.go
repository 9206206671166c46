package pad

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tailscale/hujson"

	"github.com/padstep/padstep"
)

// wireArrowData mirrors one entry of the "ArrowData" array in the
// PadModel JSON wire format (§6). Each field holds two rows — index 0 is
// the left-foot row, index 1 is the right-foot row; that ordering is
// load-bearing per the spec.
type wireArrowData struct {
	X, Y int

	BracketablePairingsOtherHeel [2][]bool
	BracketablePairingsOtherToe  [2][]bool

	OtherFootPairings        [2][]bool
	OtherFootPairingsStretch [2][]bool

	OtherFootPairingsCrossoverFront        [2][]bool
	OtherFootPairingsCrossoverFrontStretch [2][]bool
	OtherFootPairingsCrossoverBehind        [2][]bool
	OtherFootPairingsCrossoverBehindStretch [2][]bool

	OtherFootPairingsInverted        [2][]bool
	OtherFootPairingsInvertedStretch [2][]bool
}

type wirePadModel struct {
	StartingPositions            [][][2]int
	ArrowData                    []wireArrowData
	YTravelDistanceCompensation  float64
}

// LoadJSON parses PadModel JSON per §6. The grammar tolerates `//`
// comments and trailing commas (hujson.Standardize normalizes those away
// before encoding/json ever sees the bytes).
func LoadJSON(data []byte) (*PadModel, error) {
	clean, err := hujson.Standardize(data)
	if err != nil {
		return nil, padstep.NewConfigError("<pad model>", errors.Wrap(err, "not valid JSON-with-comments"))
	}

	var wire wirePadModel
	if err := json.Unmarshal(clean, &wire); err != nil {
		return nil, padstep.NewConfigError("<pad model>", errors.Wrap(err, "does not match expected shape"))
	}

	n := len(wire.ArrowData)
	pm := &PadModel{
		Arrows:              make([]Position, n),
		YTravelCompensation: wire.YTravelDistanceCompensation,
	}
	tables := pm.allTables()
	for name := range tables {
		tables[name][0] = newBoolTable(n)
		tables[name][1] = newBoolTable(n)
	}

	for i, a := range wire.ArrowData {
		pm.Arrows[i] = Position{X: a.X, Y: a.Y}
		assignRow(pm.BracketableOtherHeel, i, a.BracketablePairingsOtherHeel)
		assignRow(pm.BracketableOtherToe, i, a.BracketablePairingsOtherToe)
		assignRow(pm.OtherFootPairings, i, a.OtherFootPairings)
		assignRow(pm.OtherFootPairingsStretch, i, a.OtherFootPairingsStretch)
		assignRow(pm.OtherFootPairingsCrossoverFront, i, a.OtherFootPairingsCrossoverFront)
		assignRow(pm.OtherFootPairingsCrossoverFrontStretch, i, a.OtherFootPairingsCrossoverFrontStretch)
		assignRow(pm.OtherFootPairingsCrossoverBehind, i, a.OtherFootPairingsCrossoverBehind)
		assignRow(pm.OtherFootPairingsCrossoverBehindStretch, i, a.OtherFootPairingsCrossoverBehindStretch)
		assignRow(pm.OtherFootPairingsInverted, i, a.OtherFootPairingsInverted)
		assignRow(pm.OtherFootPairingsInvertedStretch, i, a.OtherFootPairingsInvertedStretch)
	}

	pm.StartingPositions = make([]StartingTier, len(wire.StartingPositions))
	for t, tier := range wire.StartingPositions {
		st := make(StartingTier, len(tier))
		for i, pair := range tier {
			st[i] = StartingPair{Left: pair[0], Right: pair[1]}
		}
		pm.StartingPositions[t] = st
	}

	if err := pm.Validate(); err != nil {
		return nil, padstep.NewConfigError("<pad model>", errors.Wrap(err, "failed validation"))
	}
	return pm, nil
}

func assignRow(table [2]BoolTable, arrow int, rows [2][]bool) {
	for foot := 0; foot < 2; foot++ {
		if rows[foot] != nil {
			table[foot][arrow] = rows[foot]
		}
	}
}
