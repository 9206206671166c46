package pad

import "testing"

// danceSingleArrows is the example PadModel from spec.md §8: L, D, U, R.
var danceSingleArrows = []Position{
	{X: 0, Y: 1}, // L
	{X: 1, Y: 2}, // D
	{X: 1, Y: 0}, // U
	{X: 2, Y: 1}, // R
}

const (
	laneL = 0
	laneD = 1
	laneU = 2
	laneR = 3
)

func mustDerive(t *testing.T, arrows []Position, th Thresholds) *PadModel {
	t.Helper()
	pm, err := Derive(arrows, th)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return pm
}

func TestDeriveDanceSingleValidates(t *testing.T) {
	pm := mustDerive(t, danceSingleArrows, DefaultThresholds)
	if pm.NumArrows() != 4 {
		t.Fatalf("NumArrows = %d, want 4", pm.NumArrows())
	}
	if len(pm.StartingPositions) == 0 || len(pm.StartingPositions[0]) != 1 {
		t.Fatalf("tier 0 must have exactly one pair, got %v", pm.StartingPositions)
	}
}

func TestDeriveNaturalPairingIsDirectional(t *testing.T) {
	pm := mustDerive(t, danceSingleArrows, DefaultThresholds)
	// Left foot on L, right foot on R is natural: R.X(2) >= L.X(0).
	if !pm.OtherFootPairings[Left][laneL][laneR] {
		t.Errorf("expected left-on-L/right-on-R to be a natural pairing")
	}
	// Right foot on L, left foot on R would require L.X >= R.X, which is
	// false, so this must not be marked natural (nor stretch, since the
	// X ordering check comes first).
	if pm.OtherFootPairings[Right][laneL][laneR] {
		t.Errorf("right-foot-on-L / left-on-R should not satisfy the right-foot natural relation")
	}
}

func TestDeriveCrossoverMirrors(t *testing.T) {
	pm := mustDerive(t, danceSingleArrows, DefaultThresholds)
	for i := 0; i < pm.NumArrows(); i++ {
		for j := 0; j < pm.NumArrows(); j++ {
			if pm.OtherFootPairingsCrossoverFront[Left][i][j] && !pm.OtherFootPairingsCrossoverBehind[Right][j][i] {
				t.Errorf("crossover-front(L,%d,%d) has no mirrored crossover-behind(R,%d,%d)", i, j, j, i)
			}
			if pm.OtherFootPairingsCrossoverFront[Right][i][j] && !pm.OtherFootPairingsCrossoverBehind[Left][j][i] {
				t.Errorf("crossover-front(R,%d,%d) has no mirrored crossover-behind(L,%d,%d)", i, j, j, i)
			}
		}
	}
}

func TestDeriveBracketRespectsThresholds(t *testing.T) {
	pm := mustDerive(t, danceSingleArrows, DefaultThresholds)
	// U and R are adjacent (dx=1, dy=1), within MaxXBracket/MaxYBracket=1.
	if !pm.Bracketable(Left, laneU, laneR) {
		t.Errorf("expected U and R to be bracketable with default thresholds")
	}
}
