// Package mineassoc implements the shared mine/release/step association
// helper used by both the expressed and performed search engines (§4.G):
// walking a path of graph nodes into releases and steps, and finding the
// Nth-most-recent arrow in either direction.
package mineassoc

import (
	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

// PathNode is one step along a walked chain of StepGraph nodes: the
// BodyState reached, the MoveLabel that reached it, and the chart
// position it corresponds to.
type PathNode struct {
	Position event.ChartPosition
	State    stepgraph.BodyState
	Incoming stepgraph.MoveLabel
}

// ReleaseOrStep is one (position, foot, arrow) tuple produced by walking
// a path: either a foot releasing an arrow, or a foot stepping onto one.
type ReleaseOrStep struct {
	Position event.ChartPosition
	Foot     pad.Foot
	Arrow    int
}

// ReleasesAndSteps walks path (skipping path[0], the root, per §4.G) and
// splits every per-portion action along the way into the releases
// sequence and the steps sequence, both position-ordered since path
// itself is position-ordered.
func ReleasesAndSteps(path []PathNode) (releases, steps []ReleaseOrStep) {
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		for footIdx, fm := range cur.Incoming.Feet {
			if !fm.Moved {
				continue
			}
			foot := pad.Foot(footIdx)
			n := fm.StepType.ArrowCount()
			newFoot := cur.State.Foot(foot)
			for p := 0; p < n; p++ {
				action := fm.Actions[p]
				if action == stepgraph.Release {
					arrow := prev.State.Foot(foot)[p].Arrow
					if arrow != stepgraph.NoArrow {
						releases = append(releases, ReleaseOrStep{Position: cur.Position, Foot: foot, Arrow: arrow})
					}
					continue
				}
				arrow := newFoot[p].Arrow
				if arrow != stepgraph.NoArrow {
					steps = append(steps, ReleaseOrStep{Position: cur.Position, Foot: foot, Arrow: arrow})
				}
			}
		}
	}
	return releases, steps
}

// Direction is which way nth_most_recent / find_best_nth scan.
type Direction uint8

const (
	Backward Direction = iota
	Forward
)

// NthMostRecent implements the §4.E mine-expression rule: starting at
// startIndex in events and moving in direction dir, count distinct
// positions crossed (simultaneous events at one position share a count)
// until an event on arrow is found.
func NthMostRecent(dir Direction, startIndex int, arrow int, events []ReleaseOrStep) (n int, foot pad.Foot, ok bool) {
	step := -1
	if dir == Forward {
		step = 1
	}
	n = -1
	var lastPos *event.ChartPosition
	for i := startIndex; i >= 0 && i < len(events); i += step {
		if lastPos == nil || !events[i].Position.Equal(*lastPos) {
			n++
			p := events[i].Position
			lastPos = &p
		}
		if events[i].Arrow == arrow {
			return n, events[i].Foot, true
		}
	}
	return 0, 0, false
}

// FindBestNth implements the §4.F mine-placement rule: scan events from
// the end matching dir's orientation (Backward starts from the most
// recent event, Forward from the earliest), grouped into distinct
// positions, and return the first unoccupied arrow at or after the
// desired_N'th group, preferring desiredFoot.
func FindBestNth(dir Direction, desiredN int, desiredFoot pad.Foot, events []ReleaseOrStep, occupiedByMines map[int]bool) (lane int, ok bool) {
	groups := distinctPositionGroups(dir, events)
	for n := desiredN; n < len(groups); n++ {
		for _, c := range groups[n] {
			if c.Foot == desiredFoot && !occupiedByMines[c.Arrow] {
				return c.Arrow, true
			}
		}
		for _, c := range groups[n] {
			if !occupiedByMines[c.Arrow] {
				return c.Arrow, true
			}
		}
	}
	return 0, false
}

func distinctPositionGroups(dir Direction, events []ReleaseOrStep) [][]ReleaseOrStep {
	ordered := events
	if dir == Backward {
		ordered = make([]ReleaseOrStep, len(events))
		for i, e := range events {
			ordered[len(events)-1-i] = e
		}
	}
	var groups [][]ReleaseOrStep
	for _, e := range ordered {
		if len(groups) == 0 || !groups[len(groups)-1][0].Position.Equal(e.Position) {
			groups = append(groups, []ReleaseOrStep{e})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], e)
		}
	}
	return groups
}
