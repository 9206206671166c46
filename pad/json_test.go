package pad

import (
	"encoding/json"
	"testing"
)

// toWire converts a PadModel back into the wire shape so tests can
// exercise LoadJSON without hand-writing large boolean tables.
func (pm *PadModel) toWire() wirePadModel {
	n := pm.NumArrows()
	w := wirePadModel{
		ArrowData:                   make([]wireArrowData, n),
		YTravelDistanceCompensation: pm.YTravelCompensation,
	}
	for i := 0; i < n; i++ {
		w.ArrowData[i] = wireArrowData{
			X: pm.Arrows[i].X,
			Y: pm.Arrows[i].Y,
			BracketablePairingsOtherHeel:            [2][]bool{pm.BracketableOtherHeel[0][i], pm.BracketableOtherHeel[1][i]},
			BracketablePairingsOtherToe:             [2][]bool{pm.BracketableOtherToe[0][i], pm.BracketableOtherToe[1][i]},
			OtherFootPairings:                       [2][]bool{pm.OtherFootPairings[0][i], pm.OtherFootPairings[1][i]},
			OtherFootPairingsStretch:                [2][]bool{pm.OtherFootPairingsStretch[0][i], pm.OtherFootPairingsStretch[1][i]},
			OtherFootPairingsCrossoverFront:         [2][]bool{pm.OtherFootPairingsCrossoverFront[0][i], pm.OtherFootPairingsCrossoverFront[1][i]},
			OtherFootPairingsCrossoverFrontStretch:  [2][]bool{pm.OtherFootPairingsCrossoverFrontStretch[0][i], pm.OtherFootPairingsCrossoverFrontStretch[1][i]},
			OtherFootPairingsCrossoverBehind:        [2][]bool{pm.OtherFootPairingsCrossoverBehind[0][i], pm.OtherFootPairingsCrossoverBehind[1][i]},
			OtherFootPairingsCrossoverBehindStretch: [2][]bool{pm.OtherFootPairingsCrossoverBehindStretch[0][i], pm.OtherFootPairingsCrossoverBehindStretch[1][i]},
			OtherFootPairingsInverted:               [2][]bool{pm.OtherFootPairingsInverted[0][i], pm.OtherFootPairingsInverted[1][i]},
			OtherFootPairingsInvertedStretch:        [2][]bool{pm.OtherFootPairingsInvertedStretch[0][i], pm.OtherFootPairingsInvertedStretch[1][i]},
		}
	}
	for _, tier := range pm.StartingPositions {
		var wt [][2]int
		for _, p := range tier {
			wt = append(wt, [2]int{p.Left, p.Right})
		}
		w.StartingPositions = append(w.StartingPositions, wt)
	}
	return w
}

func TestLoadJSONRoundTripsDerivedModel(t *testing.T) {
	original := mustDerive(t, danceSingleArrows, DefaultThresholds)
	raw, err := json.Marshal(original.toWire())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded, err := LoadJSON(raw)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if loaded.NumArrows() != original.NumArrows() {
		t.Fatalf("arrow count mismatch: %d vs %d", loaded.NumArrows(), original.NumArrows())
	}
	if loaded.OtherFootPairings[Left][laneL][laneR] != original.OtherFootPairings[Left][laneL][laneR] {
		t.Errorf("natural pairing table did not round-trip")
	}
}

func TestLoadJSONToleratesCommentsAndTrailingCommas(t *testing.T) {
	const doc = `{
  // a minimal one-arrow pad, just to exercise the parser's tolerance
  "YTravelDistanceCompensation": 0.5,
  "StartingPositions": [[[0,0]],],
  "ArrowData": [
    {
      "X": 0, "Y": 0,
      "BracketablePairingsOtherHeel": [[false],[false]],
      "BracketablePairingsOtherToe": [[false],[false]],
      "OtherFootPairings": [[false],[false]],
      "OtherFootPairingsStretch": [[false],[false]],
      "OtherFootPairingsCrossoverFront": [[false],[false]],
      "OtherFootPairingsCrossoverFrontStretch": [[false],[false]],
      "OtherFootPairingsCrossoverBehind": [[false],[false]],
      "OtherFootPairingsCrossoverBehindStretch": [[false],[false]],
      "OtherFootPairingsInverted": [[false],[false]],
      "OtherFootPairingsInvertedStretch": [[false],[false]],
    },
  ],
}`
	pm, err := LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if pm.NumArrows() != 1 {
		t.Fatalf("NumArrows = %d, want 1", pm.NumArrows())
	}
}
