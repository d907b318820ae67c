package benchmark

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/executor"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/utils/errcollection"
)

// Runner sequences the benchmark phases for one subject module: the add phase
// first, then every later phase fed with the state the add phase captured.
type Runner struct {
	module  string
	session Session
	output  io.Writer

	// runPhase executes one phase. Tests replace it with a double.
	runPhase func(phase Descriptor, seed []subject.Record) (Outcome, error)
}

// NewRunner prepares a runner for the given subject module.
func NewRunner(module string, output io.Writer) *Runner {
	runner := &Runner{
		module:  module,
		session: NewSession(),
		output:  output,
	}
	runner.runPhase = func(phase Descriptor, seed []subject.Record) (Outcome, error) {
		return NewOrchestrator(module, phase, seed, output).Run()
	}

	return runner
}

// Run executes all phases. Only the add phase's failure is fatal: without its
// captured state no later phase can run. A later phase's failure has already
// been reported by its orchestrator and does not stop the remaining phases.
func (r *Runner) Run() error {
	logrus.Infof("Benchmark session %s: module %q", r.session.Name, r.module)

	addOutcome, err := r.runPhase(AddPhase(), nil)
	if err != nil {
		return errors.Wrapf(err, "add phase of module %q failed", r.module)
	}

	seed := addOutcome.Snapshot
	logrus.Debugf("Add phase captured %d records", len(seed))

	var phaseErrors errcollection.ErrorCollection
	for _, phase := range LaterPhases() {
		if _, err := r.runPhase(phase, seed); err != nil {
			phaseErrors.Add(err)
		}
	}

	if err := phaseErrors.GetErrIfAny(); err != nil {
		logrus.Errorf("Module %q finished with failed phases: %v", r.module, err)
	}

	return nil
}

// ModuleLauncher wraps the whole benchmark of one module in an isolating
// child process, so an unrecovered crash in the harness itself cannot take
// down the suite process. It is the outermost error boundary: whatever
// escapes the child is reduced to a printed failure line.
type ModuleLauncher struct {
	module string
	output io.Writer

	exec     executor.Executor
	selfPath func() (string, error)
}

// NewModuleLauncher prepares the isolating launcher for one module.
func NewModuleLauncher(module string, output io.Writer) *ModuleLauncher {
	return &ModuleLauncher{
		module:   module,
		output:   output,
		exec:     executor.NewLocal(""),
		selfPath: os.Executable,
	}
}

// Launch runs the module benchmark in its own process and forwards the
// child's summary lines. It never returns an error: every failure ends as
// the module failure line.
func (l *ModuleLauncher) Launch() {
	executablePath, err := l.selfPath()
	if err != nil {
		logrus.Errorf("Could not locate own executable: %v", err)
		l.printFailure()
		return
	}

	handle, err := l.exec.Execute(WithConfEnv(ModuleCommand(executablePath, l.module)))
	if err != nil {
		logrus.Errorf("Could not spawn module process: %v", err)
		l.printFailure()
		return
	}
	defer handle.EraseOutput()
	defer handle.Clean()

	handle.Wait(0)

	l.forwardOutput(handle)

	exitCode, err := handle.ExitCode()
	if err != nil || exitCode != 0 {
		executor.LogUnsuccessfulExecution(handle)
		l.printFailure()
	}
}

// forwardOutput copies the child's phase summary lines to the launcher output.
func (l *ModuleLauncher) forwardOutput(handle executor.TaskHandle) {
	stdout, err := handle.StdoutFile()
	if err != nil {
		logrus.Errorf("Could not read module process output: %v", err)
		return
	}

	if _, err := io.Copy(l.output, stdout); err != nil {
		logrus.Errorf("Could not forward module process output: %v", err)
	}
}

func (l *ModuleLauncher) printFailure() {
	fmt.Fprintf(l.output, "Module %s failed with error.\n", l.module)
}
