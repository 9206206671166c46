package event

import (
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// PerformedEvent is either a step-node or a mine-node in a
// PerformedChart (§3).
type PerformedEvent interface {
	performedPosition() ChartPosition
	isPerformedEvent()
}

// PerformedStep references the target StepGraph's BodyState reached and
// the MoveLabel that reached it.
type PerformedStep struct {
	Position  ChartPosition
	State     stepgraph.BodyState
	MoveLabel stepgraph.MoveLabel
}

func (s PerformedStep) performedPosition() ChartPosition { return s.Position }
func (PerformedStep) isPerformedEvent()                  {}

// PerformedMine is a mine placed on a concrete target-pad lane.
type PerformedMine struct {
	Position ChartPosition
	Lane     int
}

func (m PerformedMine) performedPosition() ChartPosition { return m.Position }
func (PerformedMine) isPerformedEvent()                  {}

// PerformedChart is the target-pad realization of an ExpressedChart.
type PerformedChart struct {
	Events []PerformedEvent
}

// ToLaneEvents flattens a PerformedChart back into the chart-level
// `{kind, position, lane}` contract (§6), expanding each step into the
// per-foot, per-portion lane events it implies. A Release's lane comes
// from the prior step's BodyState, since the step that releases an
// arrow no longer has it committed.
func (c *PerformedChart) ToLaneEvents() []LaneEvent {
	var out []LaneEvent
	var prev *stepgraph.BodyState
	for _, e := range c.Events {
		switch v := e.(type) {
		case PerformedStep:
			out = append(out, stepLaneEvents(prev, v)...)
			state := v.State
			prev = &state
		case PerformedMine:
			out = append(out, LaneEvent{Kind: Mine, Position: v.Position, Lane: v.Lane})
		}
	}
	return SortLaneEvents(out)
}

func stepLaneEvents(prev *stepgraph.BodyState, s PerformedStep) []LaneEvent {
	var out []LaneEvent
	for footIdx, fm := range s.MoveLabel.Feet {
		if !fm.Moved {
			continue
		}
		foot := pad.Foot(footIdx)
		newFoot := s.State.Foot(foot)
		n := fm.StepType.ArrowCount()
		for i := 0; i < n; i++ {
			action := fm.Actions[i]
			lane := newFoot[i].Arrow
			if action == stepgraph.Release {
				if prev == nil {
					continue
				}
				lane = prev.Foot(foot)[i].Arrow
			}
			if lane < 0 {
				continue
			}
			out = append(out, LaneEvent{Kind: kindForAction(action), Position: s.Position, Lane: lane})
		}
	}
	return out
}

func kindForAction(a stepgraph.FootAction) LaneEventKind {
	switch a {
	case stepgraph.Hold:
		return HoldStart
	case stepgraph.Roll:
		return RollStart
	case stepgraph.Release:
		return HoldEnd
	default:
		return Tap
	}
}
