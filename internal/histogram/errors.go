package histogram

import (
	"errors"
	"fmt"
)

// Phase names a stage of the pipeline.
type Phase string

const (
	PhaseConfig    Phase = "config"
	PhaseRead      Phase = "read"
	PhaseTokenizer Phase = "tokenizer"
	PhaseMapping   Phase = "mapping"
	PhaseReduction Phase = "reduction"
	PhaseDimension Phase = "dimension"
	PhaseEncoding  Phase = "encoding"
	PhaseWrite     Phase = "write"
)

// PhaseError ties a failure to the phase it happened in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

func phaseErr(phase Phase, err error) error {
	return &PhaseError{Phase: phase, Err: err}
}

// ExitCode maps a pipeline error to a process exit status: 1 for bad
// configuration or unreadable input, 2 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *PhaseError
	if errors.As(err, &pe) && (pe.Phase == PhaseConfig || pe.Phase == PhaseRead) {
		return 1
	}
	return 2
}
