// Command padstepctl drives one end-to-end pad-to-pad chart conversion:
// load a source PadModel and a target PadModel, build or load their
// StepGraphs, express a source chart against the source graph, and
// perform it onto the target graph.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/padstep/padstep/event"
	"github.com/padstep/padstep/expressed"
	"github.com/padstep/padstep/fallback"
	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep/performed"
	"github.com/padstep/padstep/stepgraph"
)

var (
	buildVersion = "(devel)"

	sourcePad      = flag.String("source-pad", "", "path to the source PadModel JSON")
	targetPad      = flag.String("target-pad", "", "path to the target PadModel JSON")
	fallbackFile   = flag.String("fallbacks", "", "path to the StepTypeFallbacks JSON")
	chartFile      = flag.String("chart", "", "path to the source chart's lane events JSON")
	sourceGraphOut = flag.String("source-graph-cache", "", "optional .fsg cache path for the source StepGraph")
	targetGraphOut = flag.String("target-graph-cache", "", "optional .fsg cache path for the target StepGraph")
	seed           = flag.Int64("seed", 1, "deterministic search seed")
	budget         = flag.Int("iteration-budget", 50000, "performed-chart search iteration budget")
	cpuprofile     = flag.String("cpuprofile", "", "write cpu profile to file")
	version        = flag.Bool("version", false, "print version and exit")
)

// stdLogger adapts the standard library logger to padstep.Logger, the
// only logging surface the core ever touches (§9).
type stdLogger struct{ *log.Logger }

func (l stdLogger) Warnf(format string, args ...interface{}) { l.Printf("warn: "+format, args...) }
func (l stdLogger) Infof(format string, args ...interface{}) { l.Printf("info: "+format, args...) }

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("padstepctl %v, built with %v on %v\n", buildVersion, runtime.Version(), runtime.GOARCH)
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	logger := stdLogger{log.New(os.Stderr, "padstepctl: ", log.LstdFlags)}

	if err := run(logger); err != nil {
		logger.Warnf("%v", err)
		os.Exit(1)
	}
}

func run(logger stdLogger) error {
	if *sourcePad == "" || *targetPad == "" || *fallbackFile == "" || *chartFile == "" {
		return fmt.Errorf("source-pad, target-pad, fallbacks and chart are required")
	}

	srcModel, err := loadPadModel(*sourcePad)
	if err != nil {
		return err
	}
	dstModel, err := loadPadModel(*targetPad)
	if err != nil {
		return err
	}
	fb, err := loadFallbacks(*fallbackFile)
	if err != nil {
		return err
	}
	srcGraph, err := graphFor(srcModel, *sourceGraphOut, logger)
	if err != nil {
		return err
	}
	dstGraph, err := graphFor(dstModel, *targetGraphOut, logger)
	if err != nil {
		return err
	}
	laneEvents, err := loadLaneEvents(*chartFile)
	if err != nil {
		return err
	}

	chart, err := expressed.BuildExpressedChart(srcModel, srcGraph, laneEvents, expressed.Balanced, logger)
	if err != nil {
		return err
	}

	cfg := performed.DefaultConfig()
	cfg.Seed = *seed
	cfg.IterationBudget = *budget

	perf, err := performed.GeneratePerformedChart(context.Background(), dstModel, dstGraph, fb, chart, cfg, logger)
	if err != nil {
		return err
	}

	return writeLaneEvents(os.Stdout, perf.ToLaneEvents())
}

func loadPadModel(path string) (*pad.PadModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := pad.LoadJSON(data)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func loadFallbacks(path string) (*fallback.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fallback.LoadJSON(data)
}

// graphFor loads a cached StepGraph from cachePath if present, otherwise
// builds one from scratch and, if cachePath is non-empty, persists it
// for next time.
func graphFor(model *pad.PadModel, cachePath string, logger stdLogger) (*stepgraph.StepGraph, error) {
	if cachePath != "" {
		if _, err := os.Stat(cachePath); err == nil {
			return stepgraph.Load(model, cachePath)
		}
	}
	g, err := stepgraph.Build(model, logger)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := stepgraph.Persist(g, cachePath); err != nil {
			return nil, err
		}
	}
	return g, nil
}

type wireLaneEvent struct {
	Kind     string `json:"kind"`
	Position string `json:"position"`
	Lane     int    `json:"lane"`
}

var kindNames = map[string]event.LaneEventKind{
	"tap":        event.Tap,
	"hold-start": event.HoldStart,
	"roll-start": event.RollStart,
	"hold-end":   event.HoldEnd,
	"mine":       event.Mine,
}

func loadLaneEvents(path string) ([]event.LaneEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire []wireLaneEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	out := make([]event.LaneEvent, 0, len(wire))
	for _, w := range wire {
		kind, ok := kindNames[w.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown lane event kind %q", w.Kind)
		}
		pos, err := event.ParseChartPosition(w.Position)
		if err != nil {
			return nil, err
		}
		out = append(out, event.LaneEvent{Kind: kind, Position: pos, Lane: w.Lane})
	}
	return out, nil
}

func writeLaneEvents(w *os.File, events []event.LaneEvent) error {
	wire := make([]wireLaneEvent, 0, len(events))
	for _, e := range events {
		wire = append(wire, wireLaneEvent{Kind: e.Kind.String(), Position: e.Position.String(), Lane: e.Lane})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}
