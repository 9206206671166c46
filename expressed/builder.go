// Package expressed builds a pad-agnostic ExpressedChart from a source
// chart's lane events by searching the source PadModel's StepGraph
// (§4.E).
package expressed

import (
	"sort"

	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/mineassoc"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep"
	"github.com/padstep/padstep/stepgraph"
)

type reqKind uint8

const (
	reqTap reqKind = iota
	reqHold
	reqRoll
	reqRelease
)

func reqKindFor(k event.LaneEventKind) reqKind {
	switch k {
	case event.HoldStart:
		return reqHold
	case event.RollStart:
		return reqRoll
	case event.HoldEnd:
		return reqRelease
	default:
		return reqTap
	}
}

func (k reqKind) attachmentState() stepgraph.ArrowAttachmentState {
	switch k {
	case reqHold:
		return stepgraph.Held
	case reqRoll:
		return stepgraph.Rolling
	default:
		return stepgraph.Resting
	}
}

type positionGroup struct {
	position event.ChartPosition
	releases []event.LaneEvent
	mines    []event.LaneEvent
	steps    []event.LaneEvent
}

func groupByPosition(sorted []event.LaneEvent) []positionGroup {
	var out []positionGroup
	for _, e := range sorted {
		if len(out) == 0 || !out[len(out)-1].position.Equal(e.Position) {
			out = append(out, positionGroup{position: e.Position})
		}
		g := &out[len(out)-1]
		switch e.Kind {
		case event.HoldEnd:
			g.releases = append(g.releases, e)
		case event.Mine:
			g.mines = append(g.mines, e)
		default:
			g.steps = append(g.steps, e)
		}
	}
	return out
}

func reqFromEvents(events []event.LaneEvent) map[int]reqKind {
	req := make(map[int]reqKind, len(events))
	for _, e := range events {
		req[e.Lane] = reqKindFor(e.Kind)
	}
	return req
}

func arrowOccupant(s stepgraph.BodyState, arrow int) (stepgraph.ArrowAttachmentState, pad.Foot, bool) {
	for f := pad.Left; f <= pad.Right; f++ {
		if a, ok := s.Foot(f).AttachmentFor(arrow); ok {
			return a.State, f, true
		}
	}
	return stepgraph.Resting, pad.Left, false
}

// matchesBatch reports whether moving from `from` to `to` realizes req
// exactly: every required lane lands in the right attachment state (or
// is cleared, for a release), and no other currently-held or -rolling
// arrow is silently dropped or moved.
func matchesBatch(model *pad.PadModel, from, to stepgraph.BodyState, req map[int]reqKind) bool {
	for arrow, k := range req {
		if k == reqRelease {
			if _, _, ok := arrowOccupant(to, arrow); ok {
				return false
			}
			if st, _, ok := arrowOccupant(from, arrow); !ok || st == stepgraph.Resting {
				return false
			}
			continue
		}
		state, _, ok := arrowOccupant(to, arrow)
		if !ok || state != k.attachmentState() {
			return false
		}
	}
	for arrow := 0; arrow < model.NumArrows(); arrow++ {
		st, foot, ok := arrowOccupant(from, arrow)
		if !ok || st == stepgraph.Resting {
			continue
		}
		if _, inReq := req[arrow]; inReq {
			continue
		}
		st2, foot2, ok2 := arrowOccupant(to, arrow)
		if !ok2 || st2 != st || foot2 != foot {
			return false
		}
	}
	return true
}

// searchNode is one node in the builder's frontier arena: a StepGraph
// state index, the accumulated cost to reach it, a back-pointer to its
// parent, and the MoveLabel that produced it (§4.E "Search").
type searchNode struct {
	stateIndex int
	cost       int
	parent     *searchNode
	move       stepgraph.MoveLabel
	position   event.ChartPosition
}

func expandBatch(model *pad.PadModel, graph *stepgraph.StepGraph, frontier []*searchNode, req map[int]reqKind, pos event.ChartPosition, policy BracketPolicy, hasHint bool) []*searchNode {
	var next []*searchNode
	for _, node := range frontier {
		from := graph.State(node.stateIndex)
		for label, dest := range graph.Links(node.stateIndex) {
			to := graph.State(dest)
			if !matchesBatch(model, from, to, req) {
				continue
			}
			c := stepCost(model, from, label, node.move, node.parent != nil, policy, hasHint)
			next = append(next, &searchNode{stateIndex: dest, cost: node.cost + c, parent: node, move: label, position: pos})
		}
	}
	return pruneFrontier(next)
}

// pruneFrontier keeps, for every distinct destination state, only the
// lowest-cost search node that reached it, discarding the rest (§4.E
// "the frontier is pruned"). Output is sorted by state index for
// deterministic tie-breaking downstream.
func pruneFrontier(nodes []*searchNode) []*searchNode {
	best := make(map[int]*searchNode, len(nodes))
	for _, n := range nodes {
		if cur, ok := best[n.stateIndex]; !ok || n.cost < cur.cost {
			best[n.stateIndex] = n
		}
	}
	out := make([]*searchNode, 0, len(best))
	for _, n := range best {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].stateIndex < out[j].stateIndex })
	return out
}

func lowestCost(frontier []*searchNode) *searchNode {
	best := frontier[0]
	for _, n := range frontier[1:] {
		if n.cost < best.cost {
			best = n
		}
	}
	return best
}

func extractPath(n *searchNode) []*searchNode {
	var rev []*searchNode
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// BuildExpressedChart runs the §4.E search: it consumes sourceEvents in
// position order, release-batch then step-batch within each position,
// expanding and pruning a frontier of search nodes over graph, then
// extracts the lowest-cost completed path and re-expresses the source
// chart's mines relative to that path's releases and steps.
func BuildExpressedChart(model *pad.PadModel, graph *stepgraph.StepGraph, sourceEvents []event.LaneEvent, policy BracketPolicy, logger padstep.Logger) (*event.ExpressedChart, error) {
	logger = padstep.Log(logger)
	sorted := event.SortLaneEvents(sourceEvents)
	groups := groupByPosition(sorted)

	rootIdx, _ := graph.Index(graph.Root())
	frontier := []*searchNode{{stateIndex: rootIdx}}

	var pendingMines []event.LaneEvent
	hasHint := false

	for _, g := range groups {
		if len(g.releases) > 0 {
			frontier = expandBatch(model, graph, frontier, reqFromEvents(g.releases), g.position, policy, hasHint)
			if len(frontier) == 0 {
				return nil, padstep.NewExpressionFailure(g.position.String(), padstep.ErrNoGraphNeighbor)
			}
		}
		if len(g.mines) > 0 {
			pendingMines = append(pendingMines, g.mines...)
			hasHint = true
		}
		if len(g.steps) > 0 {
			frontier = expandBatch(model, graph, frontier, reqFromEvents(g.steps), g.position, policy, hasHint)
			if len(frontier) == 0 {
				return nil, padstep.NewExpressionFailure(g.position.String(), padstep.ErrNoGraphNeighbor)
			}
			hasHint = false
		}
	}

	best := lowestCost(frontier)
	path := extractPath(best)

	stepEvents := make([]event.StepEvent, 0, len(path))
	pathNodes := make([]mineassoc.PathNode, 0, len(path)+1)
	pathNodes = append(pathNodes, mineassoc.PathNode{Position: event.Zero, State: graph.State(rootIdx)})
	for _, n := range path {
		stepEvents = append(stepEvents, event.StepEvent{Position: n.position, MoveLabel: n.move})
		pathNodes = append(pathNodes, mineassoc.PathNode{Position: n.position, State: graph.State(n.stateIndex), Incoming: n.move})
	}

	mines := expressMines(pathNodes, pendingMines)

	chartEvents := make([]event.ExpressedEvent, 0, len(stepEvents)+len(mines))
	for _, s := range stepEvents {
		chartEvents = append(chartEvents, s)
	}
	for _, m := range mines {
		chartEvents = append(chartEvents, m)
	}
	sortExpressedEvents(chartEvents)

	logger.Infof("expressed: built chart with %d steps, %d mines", len(stepEvents), len(mines))
	return &event.ExpressedChart{Events: chartEvents}, nil
}

func sortExpressedEvents(events []event.ExpressedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return positionOf(events[i]).Cmp(positionOf(events[j])) < 0
	})
}

func positionOf(e event.ExpressedEvent) event.ChartPosition {
	switch v := e.(type) {
	case event.StepEvent:
		return v.Position
	case event.MineEvent:
		return v.Position
	default:
		return event.Zero
	}
}
