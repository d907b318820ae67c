// Package executor provides the execution environment for benchmark worker
// processes. A workload is always executed asynchronously; the returned
// TaskHandle is used to join, stop and inspect the spawned process.
package executor

// Executor is responsible for creating execution environment for given workload.
// It returns a TaskHandle when the workload started gracefully.
type Executor interface {
	// Execute executes command on underlying platform.
	Execute(command string) (TaskHandle, error)
	// Name returns user-friendly name of executor.
	Name() string
}
