package executor

import (
	"os"
	"time"
)

// TaskState is an enum presenting current task state.
type TaskState int

const (
	// RUNNING task state means that task is still running.
	RUNNING TaskState = iota
	// TERMINATED task state means that task completed or stopped.
	TERMINATED
)

// TaskHandle represents a process which can be joined, stopped or monitored.
type TaskHandle interface {
	// Stop terminates the task and all of its children.
	Stop() error
	// Status returns the state of the task.
	Status() TaskState
	// ExitCode returns the exit code. If task is not terminated it returns an error.
	ExitCode() (int, error)
	// StdoutFile returns a file handle to the task's stdout file.
	StdoutFile() (*os.File, error)
	// StderrFile returns a file handle to the task's stderr file.
	StderrFile() (*os.File, error)
	// Wait blocks until the task terminates or the timeout elapses.
	// A zero timeout means waiting forever. It returns true when the task
	// is terminated.
	Wait(timeout time.Duration) bool
	// Clean closes the task's stdout & stderr files.
	Clean() error
	// EraseOutput removes the task's stdout & stderr files.
	EraseOutput() error
}
