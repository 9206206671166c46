package performed

import (
	"context"
	"math/rand"

	"github.com/padstep/padstep"
	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/fallback"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// Config tunes the §4.F search: a deterministic seed (never the global
// rand source), the iteration budget that bounds how many destination
// expansions a single starting-pair attempt may spend, and the weights
// on the two physical cost terms.
type Config struct {
	Seed            int64
	IterationBudget int
	TravelWeight    float64
	LateralWeight   float64
}

// DefaultConfig returns reasonable defaults for a single chart.
func DefaultConfig() Config {
	return Config{Seed: 1, IterationBudget: 50000, TravelWeight: 1, LateralWeight: 1}
}

type pathStep struct {
	stateIndex int
	move       stepgraph.MoveLabel
	cost       float64
}

// tierSearch holds the mutable state of one starting-pair attempt. It
// explores depth-first, trying fallback candidates cheapest-first with a
// randomized tie order, and keeps the lowest-cost completion found
// before its iteration budget runs out (§4.F "Search").
type tierSearch struct {
	ctx   context.Context
	model *pad.PadModel
	graph *stepgraph.StepGraph
	fb    *fallback.Table
	steps []event.StepEvent
	cfg   Config
	rng   *rand.Rand

	budget   int
	foundAny bool
	bestCost float64
	best     []pathStep
}

func (s *tierSearch) run(startIdx int) error {
	return s.dfs(0, startIdx, nil, 0)
}

func (s *tierSearch) dfs(stepIdx, stateIdx int, path []pathStep, cost float64) error {
	select {
	case <-s.ctx.Done():
		return padstep.Cancelled{}
	default:
	}
	if s.budget <= 0 {
		return nil
	}
	if stepIdx == len(s.steps) {
		if !s.foundAny || cost < s.bestCost {
			s.foundAny = true
			s.bestCost = cost
			s.best = append([]pathStep(nil), path...)
		}
		return nil
	}

	original := s.steps[stepIdx].MoveLabel
	from := s.graph.State(stateIdx)
	candidates := buildCandidates(original, s.fb)

	for _, spec := range candidates {
		edges := matchingEdges(s.graph, stateIdx, original, spec)
		s.rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
		for _, e := range edges {
			s.budget--
			if s.budget <= 0 {
				return nil
			}
			to := s.graph.State(e.dest)
			extra := spec.cost
			for i := 0; i < 2; i++ {
				if !spec.moved[i] {
					continue
				}
				extra += s.cfg.TravelWeight * travelCost(s.model, from, to, pad.Foot(i))
			}
			extra += s.cfg.LateralWeight * lateralSmoothnessCost(s.model, from, to)

			path = append(path, pathStep{stateIndex: e.dest, move: e.label, cost: extra})
			if err := s.dfs(stepIdx+1, e.dest, path, cost+extra); err != nil {
				return err
			}
			path = path[:len(path)-1]
		}
	}
	return nil
}
