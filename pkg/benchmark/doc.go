// Package benchmark implements the isolated benchmark execution harness.
// Every trial of every phase runs in a freshly spawned OS process, so one
// trial's heap and allocator state cannot bias the next. Results travel back
// over the worker's stdout as a JSON report; the orchestrator accumulates
// them and reduces each phase to a median memory delta.
package benchmark
