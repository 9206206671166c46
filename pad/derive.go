package pad

import (
	"math"
	"sort"
)

// Thresholds are the seven geometric cutoffs ArrowPairingDerivation uses
// to tell a natural pairing from a stretch, a comfortable crossover or
// invert from its stretch counterpart, and which arrow pairs one foot
// can bracket (§4.B).
type Thresholds struct {
	MaxXBeforeStretch          int
	MaxYBeforeStretch          int
	MaxXCrossoverBeforeStretch int
	MaxYCrossoverBeforeStretch int
	MaxXInvertBeforeStretch    int
	MaxXBracket                int
	MaxYBracket                int
}

// DefaultThresholds are plausible defaults for a pad whose arrows are
// laid out on a unit grid (adjacent arrows one unit apart).
var DefaultThresholds = Thresholds{
	MaxXBeforeStretch:          2,
	MaxYBeforeStretch:          2,
	MaxXCrossoverBeforeStretch: 1,
	MaxYCrossoverBeforeStretch: 1,
	MaxXInvertBeforeStretch:    1,
	MaxXBracket:                1,
	MaxYBracket:                1,
}

// sign returns +1 for Left and -1 for Right. It is the orientation used
// to tell "crossing toward my own side" apart for the two feet: a
// crossover or invert requires the other foot's arrow to fall on the
// sign(f) side of this foot's arrow.
func sign(f Foot) int {
	if f == Left {
		return 1
	}
	return -1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Derive builds a PadModel's pairing tables and starting positions from
// raw arrow coordinates and a set of thresholds (§4.B). It does not set
// YTravelCompensation (left to the caller, since it has no geometric
// derivation rule in the spec) or Name.
func Derive(arrows []Position, th Thresholds) (*PadModel, error) {
	n := len(arrows)
	pm := &PadModel{
		Arrows: append([]Position(nil), arrows...),
	}
	tables := pm.allTables()
	for name := range tables {
		tables[name][0] = newBoolTable(n)
		tables[name][1] = newBoolTable(n)
	}

	for foot := Left; foot <= Right; foot++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				deriveNaturalStretch(pm, foot, i, j, arrows, th)
				deriveCrossover(pm, foot, i, j, arrows, th)
				deriveInvert(pm, foot, i, j, arrows, th)
				deriveBracket(pm, foot, i, j, arrows, th)
			}
		}
	}

	pm.StartingPositions = deriveStartingPositions(pm, arrows)
	if err := pm.Validate(); err != nil {
		return nil, err
	}
	return pm, nil
}

// deriveNaturalStretch fills OtherFootPairings[foot] and its stretch
// counterpart. this foot sits at arrows[i]; the other foot is considered
// at arrows[j].
func deriveNaturalStretch(pm *PadModel, foot Foot, i, j int, arrows []Position, th Thresholds) {
	thisPos, otherPos := arrows[i], arrows[j]
	dx := otherPos.X - thisPos.X
	if sign(foot) < 0 {
		dx = -dx
	}
	if dx < 0 {
		// The other foot must be on the far side from this foot, per
		// "the right arrow is at X >= left arrow's X".
		return
	}
	dy := absInt(otherPos.Y - thisPos.Y)
	if dx <= th.MaxXBeforeStretch && dy <= th.MaxYBeforeStretch {
		pm.OtherFootPairings[foot][i][j] = true
	} else {
		pm.OtherFootPairingsStretch[foot][i][j] = true
	}
}

// deriveCrossover fills the crossover-front / crossover-behind tables
// (and stretch counterparts) for foot at i against other-foot arrow j.
func deriveCrossover(pm *PadModel, foot Foot, i, j int, arrows []Position, th Thresholds) {
	thisPos, otherPos := arrows[i], arrows[j]
	signedDX := sign(foot) * (otherPos.X - thisPos.X)
	if signedDX >= 0 {
		return // not crossed toward this foot's side
	}
	dx := absInt(otherPos.X - thisPos.X)
	dy := absInt(otherPos.Y - thisPos.Y)
	inThresh := dx <= th.MaxXCrossoverBeforeStretch && dy <= th.MaxYCrossoverBeforeStretch

	if otherPos.Y < thisPos.Y {
		if inThresh {
			pm.OtherFootPairingsCrossoverFront[foot][i][j] = true
		} else {
			pm.OtherFootPairingsCrossoverFrontStretch[foot][i][j] = true
		}
	} else if otherPos.Y > thisPos.Y {
		if inThresh {
			pm.OtherFootPairingsCrossoverBehind[foot][i][j] = true
		} else {
			pm.OtherFootPairingsCrossoverBehindStretch[foot][i][j] = true
		}
	}
}

// deriveInvert fills the inverted table and its stretch counterpart.
func deriveInvert(pm *PadModel, foot Foot, i, j int, arrows []Position, th Thresholds) {
	thisPos, otherPos := arrows[i], arrows[j]
	if otherPos.Y != thisPos.Y {
		return
	}
	signedDX := sign(foot) * (otherPos.X - thisPos.X)
	if signedDX >= 0 {
		return
	}
	dx := absInt(otherPos.X - thisPos.X)
	if dx <= th.MaxXInvertBeforeStretch {
		pm.OtherFootPairingsInverted[foot][i][j] = true
	} else {
		pm.OtherFootPairingsInvertedStretch[foot][i][j] = true
	}
}

// deriveBracket fills the heel/toe bracket tables. i is the arrow whose
// reachability we're asking about; j is the candidate second arrow.
func deriveBracket(pm *PadModel, foot Foot, i, j int, arrows []Position, th Thresholds) {
	thisPos, otherPos := arrows[i], arrows[j]
	dx := absInt(otherPos.X - thisPos.X)
	dy := absInt(otherPos.Y - thisPos.Y)
	if dx > th.MaxXBracket || dy > th.MaxYBracket {
		return
	}
	// "OtherHeel": i is the toe (farther back), j is the candidate heel
	// (nearer front).
	if otherPos.Y <= thisPos.Y {
		pm.BracketableOtherHeel[foot][i][j] = true
	}
	// "OtherToe": i is the heel (nearer front), j is the candidate toe
	// (farther back).
	if otherPos.Y >= thisPos.Y {
		pm.BracketableOtherToe[foot][i][j] = true
	}
}

// startingCandidate is a natural pair under consideration as a starting
// stance, along with its tier key (coarse, for grouping) and overall key
// (fine, for ordering within and across tiers).
type startingCandidate struct {
	pair     StartingPair
	tierKey  int
	overall  float64
}

// DefaultStartingPositionWeights weight the four penalties §4.B describes
// for rating candidate starting pairs. Center distance and off-center X
// together form the tier key and all four form the overall (tie-break)
// key; these defaults
// were chosen to keep tier formation coarse (so ties are common, giving
// tiers real breadth) while the overall key finely orders within a tier.
var DefaultStartingPositionWeights = StartingPositionWeights{
	CenterDistance: 1.0,
	OffCenterX:     4.0,
	YStagger:       2.0,
	InwardPenalty:  3.0,
}

type StartingPositionWeights struct {
	CenterDistance float64
	OffCenterX     float64
	YStagger       float64
	InwardPenalty  float64
}

func deriveStartingPositions(pm *PadModel, arrows []Position) []StartingTier {
	n := len(arrows)
	var idealX, idealY float64
	for _, a := range arrows {
		idealX += float64(a.X)
		idealY += float64(a.Y)
	}
	if n > 0 {
		idealX /= float64(n)
		idealY /= float64(n)
	}

	w := DefaultStartingPositionWeights
	var candidates []startingCandidate
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || !pm.OtherFootPairings[Left][i][j] {
				continue
			}
			left, right := arrows[i], arrows[j]
			meanX := (float64(left.X) + float64(right.X)) / 2
			meanY := (float64(left.Y) + float64(right.Y)) / 2
			centerDist := math.Hypot(meanX-idealX, meanY-idealY)
			offCenterX := math.Abs(meanX - idealX)
			yStagger := math.Abs(float64(left.Y - right.Y))

			// Inward: when off-center, the foot farther from the pad's
			// center should be the one that is closer to straight ahead
			// (i.e. the pair should lean back toward center, not away).
			inward := 0.0
			if offCenterX > 0.01 {
				if meanX > idealX && right.X > left.X {
					inward = offCenterX
				} else if meanX < idealX && left.X < right.X {
					inward = offCenterX
				}
			}

			overall := w.CenterDistance*centerDist + w.OffCenterX*offCenterX +
				w.YStagger*yStagger + w.InwardPenalty*inward
			tierKey := int(math.Round(w.CenterDistance*centerDist + w.OffCenterX*offCenterX))

			candidates = append(candidates, startingCandidate{
				pair:    StartingPair{Left: i, Right: j},
				tierKey: tierKey,
				overall: overall,
			})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].overall != candidates[b].overall {
			return candidates[a].overall < candidates[b].overall
		}
		return candidates[a].pair.Left < candidates[b].pair.Left ||
			(candidates[a].pair.Left == candidates[b].pair.Left && candidates[a].pair.Right < candidates[b].pair.Right)
	})

	if len(candidates) == 0 {
		return nil
	}

	var tiers []StartingTier
	// Tier 0 is always exactly the single best candidate.
	tiers = append(tiers, StartingTier{candidates[0].pair})
	rest := candidates[1:]

	i := 0
	for i < len(rest) {
		j := i + 1
		for j < len(rest) && rest[j].tierKey == rest[i].tierKey {
			j++
		}
		tier := make(StartingTier, 0, j-i)
		for _, c := range rest[i:j] {
			tier = append(tier, c.pair)
		}
		tiers = append(tiers, tier)
		i = j
	}
	return tiers
}
