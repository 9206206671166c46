// Package performed realizes a pad-agnostic ExpressedChart onto a
// concrete target PadModel's StepGraph by depth-first search over
// fallback candidates, picking the lowest-cost reachable sequence within
// a fixed iteration budget (§4.F).
package performed

import (
	"context"
	"math/rand"
	"sort"

	"github.com/padstep/padstep"
	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/fallback"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// GeneratePerformedChart tries every starting tier of model, in
// ascending-tier then randomized-within-tier order, searching for the
// lowest-cost fallback realization of chart's StepEvents. It returns
// *padstep.PerformanceUnreachable if no starting pair in any tier can
// realize the chart within the budget.
func GeneratePerformedChart(ctx context.Context, model *pad.PadModel, graph *stepgraph.StepGraph, fb *fallback.Table, chart *event.ExpressedChart, cfg Config, logger padstep.Logger) (*event.PerformedChart, error) {
	logger = padstep.Log(logger)
	steps := chart.Steps()
	mines := chart.Mines()

	rng := rand.New(rand.NewSource(cfg.Seed))

	type attempt struct {
		foundAny bool
		bestCost float64
		path     []pathStep
		startIdx int
	}
	var winner *attempt

	seedOffset := int64(0)
	for _, tier := range model.StartingPositions {
		pairOrder := rng.Perm(len(tier))
		for _, pairIdx := range pairOrder {
			pair := tier[pairIdx]
			start := stepgraph.StartingBodyState(pair)
			startIdx, ok := graph.Index(start)
			if !ok {
				continue
			}

			seedOffset++
			s := &tierSearch{
				ctx:    ctx,
				model:  model,
				graph:  graph,
				fb:     fb,
				steps:  steps,
				cfg:    cfg,
				rng:    rand.New(rand.NewSource(cfg.Seed + seedOffset)),
				budget: cfg.IterationBudget,
			}
			if err := s.run(startIdx); err != nil {
				return nil, err
			}
			if s.foundAny && (winner == nil || s.bestCost < winner.bestCost) {
				winner = &attempt{foundAny: true, bestCost: s.bestCost, path: s.best, startIdx: startIdx}
			}
			if winner != nil && winner.bestCost == 0 {
				break
			}
		}
		if winner != nil && winner.bestCost == 0 {
			break
		}
	}

	if winner == nil {
		return nil, &padstep.PerformanceUnreachable{StepIndex: 0}
	}

	positions := make([]event.ChartPosition, len(steps))
	for i, s := range steps {
		positions[i] = s.Position
	}

	events := make([]event.PerformedEvent, 0, len(winner.path)+len(mines))
	for i, p := range winner.path {
		events = append(events, event.PerformedStep{
			Position:  positions[i],
			State:     graph.State(p.stateIndex),
			MoveLabel: p.move,
		})
	}
	placed := placeMinesOnPath(model, graph, winner.startIdx, winner.path, positions, mines, logger)
	for _, m := range placed {
		events = append(events, m)
	}
	sortPerformedEvents(events)

	logger.Infof("performed: realized %d steps, %d mines at cost %.1f", len(winner.path), len(placed), winner.bestCost)
	return &event.PerformedChart{Events: events}, nil
}

func sortPerformedEvents(events []event.PerformedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return positionOfPerformed(events[i]).Cmp(positionOfPerformed(events[j])) < 0
	})
}

func positionOfPerformed(e event.PerformedEvent) event.ChartPosition {
	switch v := e.(type) {
	case event.PerformedStep:
		return v.Position
	case event.PerformedMine:
		return v.Position
	default:
		return event.Zero
	}
}
