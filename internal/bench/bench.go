// Tool bench builds StepGraphs for a fixed set of reference pad layouts
// and reports their size and build rate. It exists to catch accidental
// state-space blowups: the number of states a given layout produces
// should change only when the fill/jump rules themselves change.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/stepgraph"
)

var layouts = []layoutInfo{
	{
		"dance-single",
		[]pad.Position{
			{X: 0, Y: 1}, // Left
			{X: 1, Y: 2}, // Down
			{X: 1, Y: 0}, // Up
			{X: 2, Y: 1}, // Right
		},
	},
	{
		"dance-solo",
		[]pad.Position{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 2, Y: 0},
			{X: 3, Y: 0},
			{X: 4, Y: 0},
			{X: 5, Y: 0},
		},
	},
}

var repeat = flag.Int("repeat", 1, "number of times to rebuild each layout")

type layoutInfo struct {
	name   string
	arrows []pad.Position
}

func (l *layoutInfo) build() (stepgraph.GraphStats, error) {
	model, err := pad.Derive(l.arrows, pad.DefaultThresholds)
	if err != nil {
		return stepgraph.GraphStats{}, err
	}
	g, err := stepgraph.Build(model, nil)
	if err != nil {
		return stepgraph.GraphStats{}, err
	}
	return g.Stats(), nil
}

func buildAll(repeat int) (int, float64) {
	start := time.Now()
	var states int
	for i := 0; i < repeat; i++ {
		for _, l := range layouts {
			stats, err := l.build()
			if err != nil {
				log.Fatalf("building %s: %v", l.name, err)
			}
			states += stats.NumStates
			if i == 0 {
				log.Printf("%-16s states=%d edges=%d jumps=%d\n", l.name, stats.NumStates, stats.NumEdges, stats.NumJumps)
			}
		}
	}
	elapsed := time.Since(start)
	return states, float64(states) / elapsed.Seconds()
}

func main() {
	flag.Parse()
	states, sps := buildAll(*repeat)
	fmt.Printf("states %d\n", states)
	fmt.Printf("  sps %.0f\n", sps)
}
