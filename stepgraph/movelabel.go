package stepgraph

// FootMove is what a single foot did during one move. Moved is false for
// the foot that sits still during a single-foot move; Actions holds one
// entry per portion that changed, in the same canonical order as the
// resulting BodyState's FootState.
type FootMove struct {
	Moved    bool
	StepType StepType
	Actions  [2]FootAction
}

// MoveLabel is the edge label between two BodyStates (§3, §4.C). A
// MoveLabel with both feet Moved is a jump; with exactly one is a
// single-foot move. MoveLabel is comparable (every field is a fixed-size
// array of comparable values), so it can be used directly as a map key
// and compared with ==, which is what gives StepGraph.Links its O(1)
// lookup.
type MoveLabel struct {
	Feet [2]FootMove
}

// IsJump reports whether both feet moved.
func (m MoveLabel) IsJump() bool {
	return m.Feet[0].Moved && m.Feet[1].Moved
}

// singleFoot builds a MoveLabel where only foot moved.
func singleFoot(foot int, move FootMove) MoveLabel {
	move.Moved = true
	var label MoveLabel
	label.Feet[foot] = move
	return label
}
