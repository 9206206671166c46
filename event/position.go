// Package event defines the chart-level event types that cross the
// system boundary (§6) and the pad-agnostic events produced and
// consumed by the expressed and performed search engines (§3).
package event

import (
	"math/big"

	"github.com/pkg/errors"
)

// ChartPosition is a rational musical position, carried opaquely from
// the source chart: this package never interprets measure/beat
// structure, only orders and compares positions exactly (the rational
// representation avoids the rounding drift a float position would
// accumulate over a long chart).
type ChartPosition struct {
	beats *big.Rat
}

// NewChartPosition builds a position num/den beats from the start of
// the chart.
func NewChartPosition(num, den int64) ChartPosition {
	return ChartPosition{beats: big.NewRat(num, den)}
}

// Zero is the chart's starting position.
var Zero = NewChartPosition(0, 1)

// ParseChartPosition parses a rational beat offset in "num/den" or plain
// integer form, as used by the chart-format collaborator's wire JSON.
func ParseChartPosition(s string) (ChartPosition, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return ChartPosition{}, errors.Errorf("invalid chart position %q", s)
	}
	return ChartPosition{beats: r}, nil
}

// Cmp orders two positions: negative if p < other, 0 if equal, positive
// if p > other.
func (p ChartPosition) Cmp(other ChartPosition) int {
	return p.beats.Cmp(other.beats)
}

// Equal reports whether p and other denote the same position.
func (p ChartPosition) Equal(other ChartPosition) bool {
	return p.Cmp(other) == 0
}

func (p ChartPosition) String() string {
	return p.beats.RatString()
}
