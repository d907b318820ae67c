package benchmark

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

// ResultChannel accumulates the outcome of a phase's trials: an append-only
// delta sequence, an append-only error sequence and a snapshot slot for the
// captured subject state. It also owns the scratch directory the workers'
// output and seed files live in.
//
// Exactly one worker is alive at any instant because the orchestrator joins
// each trial before spawning the next, so appends never race and no locking
// is needed beyond what the per-worker pipe transport already provides.
type ResultChannel struct {
	dir         string
	deltas      []float64
	errs        []error
	snapshot    []subject.Record
	hasSnapshot bool
}

// NewResultChannel prepares a channel with a fresh scratch directory.
// A failure here is a SetupError: the phase cannot run at all.
func NewResultChannel() (*ResultChannel, error) {
	dir, err := os.MkdirTemp("", "membench")
	if err != nil {
		return nil, &SetupError{cause: errors.Wrap(err, "could not create scratch directory")}
	}

	return &ResultChannel{dir: dir}, nil
}

// Dir returns the scratch directory for worker output and seed files.
func (c *ResultChannel) Dir() string {
	return c.dir
}

// Record accumulates one worker report: a failed trial lands in the error
// sequence, a successful one appends its delta and, when present, overwrites
// the snapshot slot. The last successfully completed trial therefore provides
// the canonical captured state.
func (c *ResultChannel) Record(trial int, report Report) {
	if report.Error != "" {
		c.errs = append(c.errs, &TrialError{Trial: trial, cause: errors.New(report.Error)})
		return
	}

	c.deltas = append(c.deltas, report.DeltaMB)
	if report.Snapshot != nil {
		c.snapshot = report.Snapshot
		c.hasSnapshot = true
	}
}

// RecordFailure accumulates a trial failure the worker could not report
// itself, like a crash or a timeout.
func (c *ResultChannel) RecordFailure(trial int, err error) {
	c.errs = append(c.errs, &TrialError{Trial: trial, cause: err})
}

// Deltas returns the accumulated memory deltas in MB.
func (c *ResultChannel) Deltas() []float64 {
	return c.deltas
}

// FirstError returns the first recorded error, or nil when every trial so far
// succeeded.
func (c *ResultChannel) FirstError() error {
	if len(c.errs) == 0 {
		return nil
	}

	return c.errs[0]
}

// Snapshot returns the captured subject state and whether any trial
// published one.
func (c *ResultChannel) Snapshot() ([]subject.Record, bool) {
	return c.snapshot, c.hasSnapshot
}

// Close removes the scratch directory.
func (c *ResultChannel) Close() {
	if err := os.RemoveAll(c.dir); err != nil {
		logrus.Errorf("Could not remove scratch directory %q: %v", c.dir, err)
	}
}
