package event

import "github.com/padstep/padstep/stepgraph"

// MineType classifies how a MineEvent is anchored to neighboring steps
// (§3, §4.E "Mine expression").
type MineType uint8

const (
	AfterArrow MineType = iota
	BeforeArrow
	NoArrow
)

func (m MineType) String() string {
	switch m {
	case AfterArrow:
		return "after-arrow"
	case BeforeArrow:
		return "before-arrow"
	case NoArrow:
		return "no-arrow"
	default:
		return "invalid"
	}
}

// ExpressedEvent is either a StepEvent or a MineEvent (§3).
type ExpressedEvent interface {
	expressedPosition() ChartPosition
	isExpressedEvent()
}

// StepEvent is a single position in an ExpressedChart where the body
// moved, carrying the pad-agnostic MoveLabel that produced the move.
type StepEvent struct {
	Position  ChartPosition
	MoveLabel stepgraph.MoveLabel
}

func (s StepEvent) expressedPosition() ChartPosition { return s.Position }
func (StepEvent) isExpressedEvent()                  {}

// MineEvent is a mine expressed relative to a neighboring release or
// step rather than to a specific target-pad lane, so it survives the
// pad-to-pad translation (§4.E "Mine expression").
type MineEvent struct {
	Position          ChartPosition
	MineType          MineType
	ArrowIsNthClosest int // meaningful only for AfterArrow / BeforeArrow
	FootOfPairedArrow int // stepgraph pad.Foot value; meaningful only for AfterArrow / BeforeArrow
}

func (m MineEvent) expressedPosition() ChartPosition { return m.Position }
func (MineEvent) isExpressedEvent()                  {}

// ExpressedChart is a finite, position-sorted sequence of
// ExpressedEvents. It is read-only once built (§3 "Lifecycles").
type ExpressedChart struct {
	Events []ExpressedEvent
}

// Steps returns only the StepEvents, in order.
func (c *ExpressedChart) Steps() []StepEvent {
	var out []StepEvent
	for _, e := range c.Events {
		if s, ok := e.(StepEvent); ok {
			out = append(out, s)
		}
	}
	return out
}

// Mines returns only the MineEvents, in order.
func (c *ExpressedChart) Mines() []MineEvent {
	var out []MineEvent
	for _, e := range c.Events {
		if m, ok := e.(MineEvent); ok {
			out = append(out, m)
		}
	}
	return out
}
