// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Stage names a pipeline stage for error attribution.
type Stage string

const (
	StageLoad    Stage = "load"
	StageAnalyze Stage = "analyze"
	StageBound   Stage = "bound"
	StageRender  Stage = "render"
)

// ErrTemplateUnknown is returned when a requested template is not in the
// catalog. It is fatal: a caller error, never a degraded result.
var ErrTemplateUnknown = errors.New("unknown template")

// StageError is a fatal pipeline error attributed to one stage. Non-fatal
// findings never surface as errors; they accumulate as warning strings on
// the analysis record or the LaTeX output.
type StageError struct {
	Stage  Stage
	Reason string
	Err    error
}

// Error formats the stage and reason, with the cause when present.
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *StageError) Unwrap() error { return e.Err }

// NewStageError builds a StageError wrapping err.
func NewStageError(stage Stage, reason string, err error) *StageError {
	return &StageError{Stage: stage, Reason: reason, Err: err}
}
