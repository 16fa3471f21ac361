// Package engine exposes the single entry point hosts use to run the
// belief resolver: one Engine per caller, constructed fresh and released
// when done. The core packages it wires together (graph, solver,
// equalify, interp) never import a logging package; any observability
// happens in the caller, which sees only structured results and errors.
package engine

import (
	"github.com/google/uuid"

	"github.com/waoai/confidis/internal/interp"
)

// Engine is one belief-graph instance. It is not safe for concurrent use:
// the protocol's commands are run one at a time, in order, exactly as
// documented in SPEC_FULL.md's concurrency model.
type Engine struct {
	id   uuid.UUID
	core *interp.Interpreter
}

// New constructs a fresh engine over an empty graph with the documented
// default parameters.
func New() *Engine {
	return &Engine{id: uuid.New(), core: interp.New()}
}

// ID returns the engine instance's unique identifier, suitable for
// correlating a caller's own logs with a particular engine's lifetime.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Execute runs one protocol command line and returns its structured
// result. The result type depends on the command: domain.AnswerResult,
// domain.SourceResult, []domain.AnswerConfidencePair, domain.EqualityResult,
// or nil for a mutation. Any failure is a *domain.ResolverError.
func (e *Engine) Execute(line string) (any, error) {
	return e.core.Execute(line)
}

// Release drops the engine's internal state. An Engine must not be used
// after Release; the method exists so hosts with an explicit resource
// lifecycle (a pooled worker, a per-request handler) have a single place
// to hang that boundary, matching the construct/execute/release pattern
// the protocol document describes.
func (e *Engine) Release() {
	e.core = nil
}
