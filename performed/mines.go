package performed

import (
	"github.com/padstep/padstep"
	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/mineassoc"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// buildPathNodes assembles the mineassoc.PathNode chain from a completed
// search path: the BodyState reached is looked up from the graph, not
// reconstructed, since pathStep only carries the state index.
func buildPathNodes(graph *stepgraph.StepGraph, startIdx int, path []pathStep, positions []event.ChartPosition) []mineassoc.PathNode {
	out := make([]mineassoc.PathNode, 0, len(path)+1)
	out = append(out, mineassoc.PathNode{Position: event.Zero, State: graph.State(startIdx)})
	for i, p := range path {
		out = append(out, mineassoc.PathNode{Position: positions[i], State: graph.State(p.stateIndex), Incoming: p.move})
	}
	return out
}

func placeMinesOnPath(model *pad.PadModel, graph *stepgraph.StepGraph, startIdx int, path []pathStep, positions []event.ChartPosition, mines []event.MineEvent, logger padstep.Logger) []event.PerformedMine {
	logger = padstep.Log(logger)
	pathNodes := buildPathNodes(graph, startIdx, path, positions)
	releases, steps := mineassoc.ReleasesAndSteps(pathNodes)

	occupied := map[int]bool{}
	out := make([]event.PerformedMine, 0, len(mines))
	for _, m := range mines {
		var lane int
		var ok bool
		switch m.MineType {
		case event.AfterArrow:
			lane, ok = mineassoc.FindBestNth(mineassoc.Backward, m.ArrowIsNthClosest, pad.Foot(m.FootOfPairedArrow), releases, occupied)
		case event.BeforeArrow:
			lane, ok = mineassoc.FindBestNth(mineassoc.Forward, m.ArrowIsNthClosest, pad.Foot(m.FootOfPairedArrow), steps, occupied)
		default:
			lane, ok = unusedLane(model, steps, occupied)
		}
		if !ok {
			logger.Warnf("performed: dropped mine at %s (type %v): no free lane to carry it", m.Position, m.MineType)
			continue
		}
		occupied[lane] = true
		out = append(out, event.PerformedMine{Position: m.Position, Lane: lane})
	}
	return out
}

func unusedLane(model *pad.PadModel, steps []mineassoc.ReleaseOrStep, occupied map[int]bool) (int, bool) {
	used := make(map[int]bool, len(steps))
	for _, s := range steps {
		used[s.Arrow] = true
	}
	for lane := 0; lane < model.NumArrows(); lane++ {
		if !used[lane] && !occupied[lane] {
			return lane, true
		}
	}
	return 0, false
}
