package event

import "golang.org/x/exp/slices"

// LaneEventKind is the chart-level event contract at the system
// boundary (§6): what the chart-format collaborator hands in and
// expects back.
type LaneEventKind uint8

const (
	Tap LaneEventKind = iota
	HoldStart
	RollStart
	HoldEnd
	Mine
)

func (k LaneEventKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case HoldStart:
		return "hold-start"
	case RollStart:
		return "roll-start"
	case HoldEnd:
		return "hold-end"
	case Mine:
		return "mine"
	default:
		return "invalid"
	}
}

// LaneEvent is one `{kind, position, lane}` tuple from or to the chart
// format collaborator.
type LaneEvent struct {
	Kind     LaneEventKind
	Position ChartPosition
	Lane     int
}

// SortLaneEvents orders events by position, and within a position by
// the release-then-mine-then-step discipline §4.E and §5 require.
func SortLaneEvents(events []LaneEvent) []LaneEvent {
	out := append([]LaneEvent(nil), events...)
	slices.SortStableFunc(out, lessLaneEvent)
	return out
}

func lessLaneEvent(a, b LaneEvent) bool {
	if c := a.Position.Cmp(b.Position); c != 0 {
		return c < 0
	}
	return batchRank(a.Kind) < batchRank(b.Kind)
}

// batchRank implements the release-then-mine-then-step ordering within
// one position (§4.E "Event grouping").
func batchRank(k LaneEventKind) int {
	switch k {
	case HoldEnd:
		return 0
	case Mine:
		return 1
	default: // Tap, HoldStart, RollStart
		return 2
	}
}
