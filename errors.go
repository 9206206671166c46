// Package padstep converts a dance-pad rhythm-game chart authored for one
// pad layout into an equivalent chart for a different pad layout by routing
// it through a pad-independent intermediate representation (an
// ExpressedChart), as described in the pad, stepgraph, fallback, expressed
// and performed sub-packages.
//
// This file collects the error kinds shared across the whole module (§7).
package padstep

import (
	"github.com/pkg/errors"
)

// Sentinel causes. Callers distinguish kinds with errors.As against the
// wrapper types below, and errors.Is against these when they only care
// about the specific failure mode.
var (
	// ErrUnknownStepType is returned when configuration references a
	// StepType name the module does not recognize.
	ErrUnknownStepType = errors.New("padstep: unknown step type")
	// ErrFallbackCycle is returned when a StepTypeFallbacks table's
	// splice references form a cycle.
	ErrFallbackCycle = errors.New("padstep: fallback table has a cycle")
	// ErrMissingFallback is returned when a StepType has no fallback
	// entry at all.
	ErrMissingFallback = errors.New("padstep: step type has no fallback entry")
	// ErrGraphVersionMismatch is returned when a persisted StepGraph's
	// version tag does not match the loader.
	ErrGraphVersionMismatch = errors.New("padstep: persisted graph version mismatch")
	// ErrGraphArrowCountMismatch is returned when a persisted StepGraph
	// was built against a PadModel with a different arrow count.
	ErrGraphArrowCountMismatch = errors.New("padstep: persisted graph arrow count mismatch")
	// ErrNoGraphNeighbor is returned when the ExpressedChart builder's
	// frontier has no node matching the required lane-tag state.
	ErrNoGraphNeighbor = errors.New("padstep: no graph neighbor matches required state")
	// ErrUnmatchedHoldEnd names the case of a HoldEnd event with no
	// matching HoldStart/RollStart on its lane. No function in this module
	// returns it: the ExpressedChart builder reports that case as
	// ErrNoGraphNeighbor.
	ErrUnmatchedHoldEnd = errors.New("padstep: hold end without matching hold start")
	ErrCancelled        = errors.New("padstep: operation cancelled")
)

// ConfigError wraps a failure to load or validate a PadModel or
// StepTypeFallbacks configuration (§7). It is fatal for the input that
// produced it; the caller should abort the run that depends on it.
type ConfigError struct {
	// Path or key identifying what in the configuration was at fault,
	// e.g. a JSON path or a StepType name.
	Offender string
	cause    error
}

func NewConfigError(offender string, cause error) *ConfigError {
	return &ConfigError{Offender: offender, cause: errors.WithStack(cause)}
}

func (e *ConfigError) Error() string {
	return "padstep: config error at " + e.Offender + ": " + e.cause.Error()
}

func (e *ConfigError) Unwrap() error { return e.cause }

// GraphPersistError wraps a failure to load a persisted StepGraph (§7).
// It is recoverable by rebuilding the graph from its PadModel.
type GraphPersistError struct {
	Path  string
	cause error
}

func NewGraphPersistError(path string, cause error) *GraphPersistError {
	return &GraphPersistError{Path: path, cause: errors.WithStack(cause)}
}

func (e *GraphPersistError) Error() string {
	return "padstep: graph persist error for " + e.Path + ": " + e.cause.Error()
}

func (e *GraphPersistError) Unwrap() error { return e.cause }

// ExpressionFailure wraps an internally inconsistent source lane-event
// sequence (§7). The driver should skip the offending chart and continue.
type ExpressionFailure struct {
	// Position is a human-readable rendering of the chart position (if
	// any) where expression failed.
	Position string
	cause    error
}

func NewExpressionFailure(position string, cause error) *ExpressionFailure {
	return &ExpressionFailure{Position: position, cause: errors.WithStack(cause)}
}

func (e *ExpressionFailure) Error() string {
	if e.Position == "" {
		return "padstep: expression failure: " + e.cause.Error()
	}
	return "padstep: expression failure at " + e.Position + ": " + e.cause.Error()
}

func (e *ExpressionFailure) Unwrap() error { return e.cause }

// PerformanceUnreachable is returned when no valid target path exists
// within the iteration budget after exhausting all starting tiers (§7).
// The driver should skip the offending chart and continue.
type PerformanceUnreachable struct {
	// StepIndex is the number of the ExpressedChart's step events that
	// were placed before the search exhausted its budget.
	// GeneratePerformedChart does not track that count and always sets 0.
	StepIndex int
}

func (e *PerformanceUnreachable) Error() string {
	return "padstep: target pad cannot perform this chart past step index"
}

// Cancelled signals cooperative cancellation (§7, §9); it is not an
// error condition in the usual sense but satisfies the error interface
// so it can be returned alongside the other four kinds.
type Cancelled struct{}

func (Cancelled) Error() string { return ErrCancelled.Error() }

func (Cancelled) Is(target error) bool { return target == ErrCancelled }
