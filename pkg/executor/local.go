package executor

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Local provides the execution environment on the local machine via
// exec.Command. It runs the command as the current user.
type Local struct {
	// outputDir is the directory where per-task stdout and stderr files are
	// created. Empty means the system default temp directory.
	outputDir string
}

// NewLocal returns a Local instance writing task output files to outputDir.
func NewLocal(outputDir string) Local {
	return Local{outputDir: outputDir}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute runs the command given as input.
// The returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	outputDir := l.outputDir
	if outputDir == "" {
		outputDir = os.TempDir()
	}

	stdoutFile, err := os.CreateTemp(outputDir, "stdout")
	if err != nil {
		return nil, errors.Wrap(err, "could not create stdout file")
	}
	stderrFile, err := os.CreateTemp(outputDir, "stderr")
	if err != nil {
		stdoutFile.Close()
		os.Remove(stdoutFile.Name())
		return nil, errors.Wrap(err, "could not create stderr file")
	}

	logrus.Debug("Starting ", command)

	cmd := exec.Command("sh", "-c", command)

	// It is important to set additional Process Group ID for the parent process
	// and his children to have the ability to kill all of them at once.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	err = cmd.Start()
	if err != nil {
		stdoutFile.Close()
		os.Remove(stdoutFile.Name())
		stderrFile.Close()
		os.Remove(stderrFile.Name())
		return nil, errors.Wrapf(err, "could not start %q", command)
	}

	logrus.Debug("Started with pid ", cmd.Process.Pid)

	task := &localTask{
		command:    command,
		cmdHandler: cmd,
		stdoutFile: stdoutFile,
		stderrFile: stderrFile,
		waitEnded:  make(chan struct{}),
	}

	// Wait for the local task in a goroutine and record how it exited.
	go func() {
		// NOTE: Wait() returns an error when the process exits non-zero.
		// The process state is inspected below in both cases, so the error
		// object itself carries no extra information here.
		cmd.Wait()

		waitStatus := cmd.ProcessState.Sys().(syscall.WaitStatus)
		if waitStatus.Exited() {
			task.exitCode = waitStatus.ExitStatus()
		} else {
			// Negated signal number when the process was terminated by a signal.
			task.exitCode = -int(waitStatus.Signal())
		}

		logrus.Debug(
			"Ended ", command,
			" with output in file: ", stdoutFile.Name(),
			" with err output in file: ", stderrFile.Name(),
			" with exit code: ", task.exitCode)

		close(task.waitEnded)
	}()

	return task, nil
}

// localTask implements TaskHandle interface.
type localTask struct {
	command    string
	cmdHandler *exec.Cmd
	stdoutFile *os.File
	stderrFile *os.File
	exitCode   int
	waitEnded  chan struct{}
}

// Status returns the current state of the task.
func (task *localTask) Status() TaskState {
	select {
	case <-task.waitEnded:
		return TERMINATED
	default:
		return RUNNING
	}
}

// ExitCode returns the exit code of a terminated task.
func (task *localTask) ExitCode() (int, error) {
	if task.Status() != TERMINATED {
		return 0, errors.Errorf("task %q is still running", task.command)
	}

	return task.exitCode, nil
}

// StdoutFile returns a file handle to the task's stdout file.
func (task *localTask) StdoutFile() (*os.File, error) {
	if _, err := task.stdoutFile.Seek(0, 0); err != nil {
		return nil, errors.Wrapf(err, "could not rewind stdout file %q", task.stdoutFile.Name())
	}
	return task.stdoutFile, nil
}

// StderrFile returns a file handle to the task's stderr file.
func (task *localTask) StderrFile() (*os.File, error) {
	if _, err := task.stderrFile.Seek(0, 0); err != nil {
		return nil, errors.Wrapf(err, "could not rewind stderr file %q", task.stderrFile.Name())
	}
	return task.stderrFile, nil
}

// Stop terminates the local task and its children.
func (task *localTask) Stop() error {
	if task.Status() == TERMINATED {
		return nil
	}

	// We signal the entire process group.
	// The kill syscall interprets a negated PID N as the process group N belongs to.
	pid := task.cmdHandler.Process.Pid
	logrus.Debug("Sending SIGKILL to PID ", -pid)
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if err != nil {
		return errors.Wrapf(err, "could not kill process group of %q", task.command)
	}

	<-task.waitEnded
	return nil
}

// Wait blocks until the process terminates or the timeout elapses.
func (task *localTask) Wait(timeout time.Duration) bool {
	if timeout == 0 {
		<-task.waitEnded
		return true
	}

	select {
	case <-task.waitEnded:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Clean closes the task's stdout & stderr files.
func (task *localTask) Clean() error {
	if err := task.stdoutFile.Close(); err != nil {
		return errors.Wrapf(err, "could not close stdout file %q", task.stdoutFile.Name())
	}
	if err := task.stderrFile.Close(); err != nil {
		return errors.Wrapf(err, "could not close stderr file %q", task.stderrFile.Name())
	}
	return nil
}

// EraseOutput removes the task's stdout & stderr files.
func (task *localTask) EraseOutput() error {
	if err := os.Remove(task.stdoutFile.Name()); err != nil {
		return errors.Wrapf(err, "could not remove stdout file %q", task.stdoutFile.Name())
	}
	if err := os.Remove(task.stderrFile.Name()); err != nil {
		return errors.Wrapf(err, "could not remove stderr file %q", task.stderrFile.Name())
	}
	return nil
}
