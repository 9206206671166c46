package performed

import (
	"math"

	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// travelCost is the §4.F "tightening" penalty: how far a foot physically
// moved between its prior committed arrow(s) and its new one(s), with
// vertical travel damped by the pad's y_travel_compensation.
func travelCost(model *pad.PadModel, from, to stepgraph.BodyState, foot pad.Foot) float64 {
	fromArrows := from.Foot(foot).Arrows()
	toArrows := to.Foot(foot).Arrows()
	if len(fromArrows) == 0 || len(toArrows) == 0 {
		return 0
	}
	var total float64
	for _, a := range toArrows {
		total += nearestDistance(model, a, fromArrows)
	}
	return total
}

func nearestDistance(model *pad.PadModel, to int, from []int) float64 {
	best := math.Inf(1)
	pa := model.Arrows[to]
	for _, b := range from {
		pb := model.Arrows[b]
		dx := float64(pa.X - pb.X)
		dy := float64(pa.Y-pb.Y) * model.YTravelCompensation
		if d := math.Hypot(dx, dy); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

// lateralSmoothnessCost discourages large shifts in the body's lateral
// (X) center of mass between consecutive steps (§4.F).
func lateralSmoothnessCost(model *pad.PadModel, from, to stepgraph.BodyState) float64 {
	return math.Abs(bodyCenterX(model, to) - bodyCenterX(model, from))
}

func bodyCenterX(model *pad.PadModel, state stepgraph.BodyState) float64 {
	var sum float64
	var n int
	for f := pad.Left; f <= pad.Right; f++ {
		for _, a := range state.Foot(f).Arrows() {
			sum += float64(model.Arrows[a].X)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
