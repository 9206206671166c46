package expressed

import (
	"github.com/padstep/padstep/event"
)

// BracketPolicy selects which cost biases the builder uses when deciding
// between a bracket and a jump for a simultaneous arrow pair (§4.E
// "Bracket-parsing policy").
type BracketPolicy uint8

const (
	Balanced BracketPolicy = iota
	Aggressive
	NoBrackets
)

func (p BracketPolicy) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case NoBrackets:
		return "no-brackets"
	default:
		return "balanced"
	}
}

// BracketPolicyConfig drives the policy selector: a difficulty floor
// below which brackets are never attempted, a per-position arrow-count
// overflow trigger, and the brackets-per-minute thresholds used to
// upgrade or downgrade a first Balanced pass.
type BracketPolicyConfig struct {
	MinDifficultyForBrackets float64
	ForceAggressiveOnOverflow bool
	LowBracketsPerMinute     float64
	HighBracketsPerMinute    float64
}

// SelectInitialPolicy is the first decision in the §4.E policy selector:
// force NoBrackets below the configured difficulty floor, force
// Aggressive when a position needs more simultaneous arrows than two
// feet can cover without brackets and the config asks for that, and
// otherwise fall through to a first Balanced pass.
func SelectInitialPolicy(cfg BracketPolicyConfig, difficulty float64, events []event.LaneEvent) BracketPolicy {
	if difficulty < cfg.MinDifficultyForBrackets {
		return NoBrackets
	}
	if cfg.ForceAggressiveOnOverflow && hasSimultaneousOverflow(events) {
		return Aggressive
	}
	return Balanced
}

// hasSimultaneousOverflow reports whether any position requires holding
// more arrows at once than two feet, one portion each, can cover.
func hasSimultaneousOverflow(events []event.LaneEvent) bool {
	counts := map[event.ChartPosition]int{}
	for _, e := range events {
		if e.Kind == event.Mine {
			continue
		}
		counts[e.Position]++
	}
	for _, n := range counts {
		if n > 2 { // pad.Left and pad.Right, one portion each without brackets
			return true
		}
	}
	return false
}

// RefinePolicy is the second decision: after one Balanced pass, measure
// brackets per minute and downgrade or upgrade.
func RefinePolicy(cfg BracketPolicyConfig, bracketsPerMinute float64) BracketPolicy {
	if bracketsPerMinute < cfg.LowBracketsPerMinute {
		return NoBrackets
	}
	if bracketsPerMinute > cfg.HighBracketsPerMinute {
		return Aggressive
	}
	return Balanced
}

// BracketsPerMinute counts bracket and single-arrow-bracket StepEvents
// in chart against a chart duration expressed in minutes.
func BracketsPerMinute(chart *event.ExpressedChart, durationMinutes float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	count := 0
	for _, s := range chart.Steps() {
		for _, fm := range s.MoveLabel.Feet {
			if fm.Moved && (fm.StepType.IsBracket() || fm.StepType.IsSingleArrowBracket()) {
				count++
			}
		}
	}
	return float64(count) / durationMinutes
}
