package benchmark

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/conf"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/executor"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

// Trials is the fixed number of isolated trials per phase.
const Trials = 20

// TrialTimeoutFlag bounds the join on a single worker process. The original
// harness waits forever; zero preserves that behavior, a positive value stops
// a hung worker and records the trial as failed.
var TrialTimeoutFlag = conf.NewDurationFlag(
	"trial_timeout",
	"Maximum time a single trial may run. Zero waits forever.",
	0,
)

// Outcome is the result of one phase.
type Outcome struct {
	// Phase is the descriptor name.
	Phase string
	// MedianMB is the median of the trial deltas. Meaningless when Failed.
	MedianMB float64
	// Failed marks a phase that produced no statistic.
	Failed bool
	// Snapshot holds the captured subject state for state-capturing phases.
	Snapshot []subject.Record
}

// Orchestrator drives the trials of one phase strictly sequentially:
// spawn a worker process, block until it exits, inspect the channel, repeat.
// Trial N has fully exited before trial N+1 is spawned; the measurement's
// validity depends on that.
type Orchestrator struct {
	module string
	phase  Descriptor
	seed   []subject.Record
	output io.Writer

	// newExecutor builds the executor spawning workers with output files in
	// the given scratch directory. Tests replace it with a double.
	newExecutor func(outputDir string) executor.Executor
	// selfPath locates the binary to re-execute in worker mode.
	selfPath func() (string, error)
	timeout  func() time.Duration
}

// NewOrchestrator prepares the orchestrator of one phase. A nil seed means
// every worker constructs a fresh subject, which is only valid for the add
// phase.
func NewOrchestrator(module string, phase Descriptor, seed []subject.Record, output io.Writer) *Orchestrator {
	return &Orchestrator{
		module: module,
		phase:  phase,
		seed:   seed,
		output: output,
		newExecutor: func(outputDir string) executor.Executor {
			return executor.NewLocal(outputDir)
		},
		selfPath: os.Executable,
		timeout:  TrialTimeoutFlag.Value,
	}
}

// Run executes the phase's trials and reduces the deltas to a median.
// On success it prints the phase summary line; on failure it prints the
// failure line and returns the error for the caller to decide on.
func (o *Orchestrator) Run() (Outcome, error) {
	outcome := Outcome{Phase: o.phase.Name, Failed: true}

	channel, err := NewResultChannel()
	if err != nil {
		o.printFailure()
		return outcome, err
	}
	defer channel.Close()

	executablePath, err := o.selfPath()
	if err != nil {
		o.printFailure()
		return outcome, &SetupError{cause: errors.Wrap(err, "could not locate own executable")}
	}

	seedFile := ""
	if o.seed != nil {
		seedFile, err = WriteSeedFile(channel.Dir(), o.seed)
		if err != nil {
			o.printFailure()
			return outcome, &SetupError{cause: err}
		}
	}

	workerExecutor := o.newExecutor(channel.Dir())

	for trial := 0; trial < Trials; trial++ {
		o.runTrial(workerExecutor, channel, executablePath, trial, seedFile)

		// Inspect the channel after every join; the first recorded error
		// stops the phase.
		if err := channel.FirstError(); err != nil {
			o.printFailure()
			return outcome, &PhaseError{Phase: o.phase.Name, cause: err}
		}
	}

	deltas := channel.Deltas()
	if len(deltas) != Trials {
		logrus.Warnf("Phase %s reduced %d deltas out of %d trials",
			o.phase.Name, len(deltas), Trials)
	}

	median, err := Median(deltas)
	if err != nil {
		o.printFailure()
		return outcome, &PhaseError{Phase: o.phase.Name, cause: err}
	}

	snapshot, ok := channel.Snapshot()
	if o.phase.CaptureState && !ok {
		// Later phases would silently measure empty subjects otherwise.
		o.printFailure()
		return outcome, &PhaseError{Phase: o.phase.Name,
			cause: errors.New("no trial published captured subject state")}
	}

	outcome.Failed = false
	outcome.MedianMB = median
	outcome.Snapshot = snapshot

	fmt.Fprintf(o.output, "Memory deltas for %s: %s MB\n",
		o.phase.Name, decimal.NewFromFloat(median).StringFixed(2))

	return outcome, nil
}

// runTrial spawns one worker, joins it and feeds its report into the channel.
func (o *Orchestrator) runTrial(workerExecutor executor.Executor, channel *ResultChannel, executablePath string, trial int, seedFile string) {
	command := WithConfEnv(WorkerCommand(executablePath, o.module, o.phase.Name, trial, seedFile))

	handle, err := workerExecutor.Execute(command)
	if err != nil {
		channel.RecordFailure(trial, errors.Wrap(err, "could not spawn worker"))
		return
	}
	defer handle.EraseOutput()
	defer handle.Clean()

	if !handle.Wait(o.timeout()) {
		if err := handle.Stop(); err != nil {
			logrus.Errorf("Could not stop timed out worker: %v", err)
		}
		channel.RecordFailure(trial, errors.Errorf("worker did not finish within %s", o.timeout()))
		return
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		channel.RecordFailure(trial, err)
		return
	}
	if exitCode != 0 {
		tail, tailErr := executor.StderrTail(handle, executor.TailedLinesCount)
		if tailErr != nil {
			tail = fmt.Sprintf("(stderr unavailable: %v)", tailErr)
		}
		channel.RecordFailure(trial, errors.Errorf(
			"worker exited with code %d: %s", exitCode, strings.TrimSpace(tail)))
		return
	}

	stdout, err := handle.StdoutFile()
	if err != nil {
		channel.RecordFailure(trial, err)
		return
	}

	report, err := ReadReport(stdout)
	if err != nil {
		channel.RecordFailure(trial, err)
		return
	}

	channel.Record(trial, report)
}

func (o *Orchestrator) printFailure() {
	fmt.Fprintf(o.output, "Method %s failed with error.\n", o.phase.Name)
}

// WorkerCommand renders the command line which re-executes the binary at
// executablePath in worker mode for one trial.
func WorkerCommand(executablePath string, module string, phase string, trial int, seedFile string) string {
	parts := []string{
		fmt.Sprintf("%q", executablePath),
		"worker",
		"--module", module,
		"--operation", phase,
		"--trial", strconv.Itoa(trial),
	}
	if seedFile != "" {
		parts = append(parts, "--seed_file", fmt.Sprintf("%q", seedFile))
	}

	return strings.Join(parts, " ")
}

// ModuleCommand renders the command line which re-executes the binary at
// executablePath as the isolating process of one module benchmark.
func ModuleCommand(executablePath string, module string) string {
	return fmt.Sprintf("%q module --name %s", executablePath, module)
}

// WithConfEnv prefixes the command with the parent's configuration as
// environment assignments. Re-exec'd children parse flags from the
// environment, so this is how a flag like trial_timeout given to the
// top-level process reaches the orchestrator running in the module child.
func WithConfEnv(command string) string {
	assignments := conf.EnvAssignments()
	if len(assignments) == 0 {
		return command
	}

	return strings.Join(assignments, " ") + " " + command
}
