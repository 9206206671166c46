package stepgraph

import (
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/pkg/errors"

	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep"
)

var singleFootActions = [...]FootAction{Tap, Hold, Roll}
var sameArrowActions = [...]FootAction{Tap, Hold, Roll, Release}

// StepGraph is the exhaustive reachability graph over BodyStates for one
// PadModel (§4.C). Nodes are content-addressed by BodyState and mirrored
// into topology as string vertex IDs (the state's index); edges are
// MoveLabels, stored in topology itself (one lvlath/core edge per
// MoveLabel, since multiple labels can lead out of the same state) with
// the label payload kept in edgeLabels, keyed by the edge ID topology
// assigns. Links and Stats read topology directly, so its vertex/edge
// iteration is what actually backs traversal and degree statistics, not
// a parallel decoration.
type StepGraph struct {
	model *pad.PadModel

	states []BodyState
	index  map[BodyState]int

	topology   *core.Graph
	edgeLabels map[string]MoveLabel // topology edge ID -> MoveLabel
}

func newTopology() *core.Graph {
	return core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops())
}

// Root returns the BodyState the graph was built from.
func (g *StepGraph) Root() BodyState {
	return g.states[0]
}

// NumStates returns the number of distinct BodyStates discovered.
func (g *StepGraph) NumStates() int {
	return len(g.states)
}

// State returns the BodyState at i, where i came from Links or Index.
func (g *StepGraph) State(i int) BodyState {
	return g.states[i]
}

// Index returns the stable index for a BodyState and whether it exists
// in the graph.
func (g *StepGraph) Index(s BodyState) (int, bool) {
	i, ok := g.index[s]
	return i, ok
}

// Links returns, for the state at index i, every (MoveLabel -> next
// state index) pair reachable in one step. It walks topology.Neighbors,
// topology's own deterministically-ordered edge list for a vertex, and
// recovers each edge's MoveLabel from edgeLabels; this is an O(degree)
// walk over the real edge set, not a search, satisfying the §4.C "O(1)
// amortized" requirement.
func (g *StepGraph) Links(i int) map[MoveLabel]int {
	edges, err := g.topology.Neighbors(strconv.Itoa(i))
	if err != nil {
		return map[MoveLabel]int{}
	}
	out := make(map[MoveLabel]int, len(edges))
	for _, e := range edges {
		label, ok := g.edgeLabels[e.ID]
		if !ok {
			continue
		}
		dst, _ := strconv.Atoi(e.To)
		out[label] = dst
	}
	return out
}

// GraphStats summarizes a built StepGraph, for diagnostics and for the
// reference CLI driver.
type GraphStats struct {
	NumStates int
	NumEdges  int
	NumJumps  int
}

// Stats reports summary counts over the built graph, reading the vertex
// and edge counts straight from topology rather than re-deriving them
// from a separate structure.
func (g *StepGraph) Stats() GraphStats {
	stats := GraphStats{NumStates: g.topology.VertexCount()}
	for _, e := range g.topology.Edges() {
		stats.NumEdges++
		if label, ok := g.edgeLabels[e.ID]; ok && label.IsJump() {
			stats.NumJumps++
		}
	}
	return stats
}

// Build enumerates the complete StepGraph for model via breadth-first
// search from RootState, applying every fill rule from fill.go and every
// jump from jump.go at each frontier state (§4.C).
func Build(model *pad.PadModel, logger padstep.Logger) (*StepGraph, error) {
	logger = padstep.Log(logger)
	if err := model.Validate(); err != nil {
		return nil, err
	}

	g := &StepGraph{
		model:      model,
		index:      make(map[BodyState]int),
		topology:   newTopology(),
		edgeLabels: make(map[string]MoveLabel),
	}

	root := RootState(model)
	if _, _, err := g.addState(root); err != nil {
		return nil, errors.Wrap(err, "stepgraph: build")
	}

	seen := make(map[int]map[MoveLabel]bool)
	queue := []int{0}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		state := g.states[i]

		for _, t := range allTransitionsFrom(model, state) {
			if !t.to.Valid(model) {
				continue
			}
			j, isNew, err := g.addState(t.to)
			if err != nil {
				return nil, errors.Wrap(err, "stepgraph: build")
			}
			if isNew {
				queue = append(queue, j)
			}
			if seen[i] == nil {
				seen[i] = make(map[MoveLabel]bool)
			}
			if seen[i][t.move] {
				continue
			}
			seen[i][t.move] = true
			if err := g.addEdge(i, j, t.move); err != nil {
				return nil, errors.Wrap(err, "stepgraph: build")
			}
		}
	}

	stats := g.Stats()
	logger.Infof("stepgraph: built %d states, %d edges for pad %q", stats.NumStates, stats.NumEdges, model.Name)
	return g, nil
}

func (g *StepGraph) addState(s BodyState) (int, bool, error) {
	if i, ok := g.index[s]; ok {
		return i, false, nil
	}
	i := len(g.states)
	g.states = append(g.states, s)
	g.index[s] = i
	if err := g.topology.AddVertex(strconv.Itoa(i)); err != nil {
		return 0, false, err
	}
	return i, true, nil
}

// addEdge records one MoveLabel-tagged edge in topology and keeps the
// label payload in edgeLabels, keyed by the edge ID topology assigns.
// The graph is unweighted, so the edge weight is always 0.
func (g *StepGraph) addEdge(i, j int, move MoveLabel) error {
	id, err := g.topology.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 0)
	if err != nil {
		return err
	}
	g.edgeLabels[id] = move
	return nil
}

// allTransitionsFrom is the union of every fill rule and jump
// enumeration applicable at state, deduplicated by the caller via a
// per-state set of MoveLabels already turned into edges.
func allTransitionsFrom(model *pad.PadModel, state BodyState) []transition {
	var out []transition

	for foot := pad.Left; foot <= pad.Right; foot++ {
		for _, action := range sameArrowActions {
			out = append(out, fillSameArrow(state, foot, action)...)
		}
		for st := range singleFootSpecs {
			for _, action := range singleFootActions {
				out = append(out, fillSingleFoot(model, state, foot, st, action)...)
			}
		}
		for _, action := range singleFootActions {
			out = append(out, fillFootSwap(state, foot, action)...)
		}
		for st := range bracketSpecs {
			for _, heelAction := range singleFootActions {
				for _, toeAction := range singleFootActions {
					out = append(out, fillBracket(model, state, foot, st, heelAction, toeAction)...)
				}
			}
		}
		for st := range singleArrowBracketSpecs {
			for _, action := range singleFootActions {
				out = append(out, fillSingleArrowBracket(model, state, foot, st, action)...)
			}
		}
	}

	for _, leftAction := range singleFootActions {
		for _, rightAction := range singleFootActions {
			out = append(out, EnumerateJumps(model, state, leftAction, rightAction)...)
		}
	}

	var filtered []transition
	for _, t := range out {
		if t.to != state {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
