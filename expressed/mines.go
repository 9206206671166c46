package expressed

import (
	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/mineassoc"
	"github.com/padstep/padstep/pad"
)

// expressMines re-anchors each source mine to the finalized step path's
// releases and steps (§4.E "Mine expression").
func expressMines(path []mineassoc.PathNode, mines []event.LaneEvent) []event.MineEvent {
	releases, steps := mineassoc.ReleasesAndSteps(path)

	out := make([]event.MineEvent, 0, len(mines))
	for _, m := range mines {
		mt, n, foot := classifyMine(m.Lane, m.Position, releases, steps)
		out = append(out, event.MineEvent{
			Position:          m.Position,
			MineType:          mt,
			ArrowIsNthClosest: n,
			FootOfPairedArrow: int(foot),
		})
	}
	return out
}

func classifyMine(arrow int, pos event.ChartPosition, releases, steps []mineassoc.ReleaseOrStep) (event.MineType, int, pad.Foot) {
	if idx := lastAtOrBefore(releases, pos); idx >= 0 {
		if n, foot, ok := mineassoc.NthMostRecent(mineassoc.Backward, idx, arrow, releases); ok {
			return event.AfterArrow, n, foot
		}
	}
	if idx := firstAtOrAfter(steps, pos); idx >= 0 {
		if n, foot, ok := mineassoc.NthMostRecent(mineassoc.Forward, idx, arrow, steps); ok {
			return event.BeforeArrow, n, foot
		}
	}
	return event.NoArrow, 0, pad.Left
}

// lastAtOrBefore returns the highest index in events (position-ordered
// ascending) whose position is at or before pos, or -1.
func lastAtOrBefore(events []mineassoc.ReleaseOrStep, pos event.ChartPosition) int {
	idx := -1
	for i, e := range events {
		if e.Position.Cmp(pos) <= 0 {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// firstAtOrAfter returns the lowest index in events (position-ordered
// ascending) whose position is at or after pos, or -1.
func firstAtOrAfter(events []mineassoc.ReleaseOrStep, pos event.ChartPosition) int {
	for i, e := range events {
		if e.Position.Cmp(pos) >= 0 {
			return i
		}
	}
	return -1
}
