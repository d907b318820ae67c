package benchmark

import "fmt"

// SetupError indicates that the result channel or its scratch workspace could
// not be prepared. The phase is abandoned before any trial runs.
type SetupError struct {
	cause error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("result channel setup failed: %v", e.cause)
}

// Cause returns the underlying error.
func (e *SetupError) Cause() error { return e.cause }

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error { return e.cause }

// TrialError is a failure of a single trial: either recorded by the worker in
// its report or synthesized by the orchestrator when the worker died without
// reporting.
type TrialError struct {
	Trial int
	cause error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d failed: %v", e.Trial, e.cause)
}

// Cause returns the underlying error.
func (e *TrialError) Cause() error { return e.cause }

// Unwrap returns the underlying error.
func (e *TrialError) Unwrap() error { return e.cause }

// PhaseError is the orchestrator's promotion of the first TrialError found
// after a join. It terminates further trials in that phase only.
type PhaseError struct {
	Phase string
	cause error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.cause)
}

// Cause returns the underlying error.
func (e *PhaseError) Cause() error { return e.cause }

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error { return e.cause }
