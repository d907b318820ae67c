package executor

import (
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TailedLinesCount is the number of lines fetched from stderr when a task fails.
const TailedLinesCount = 5

// LogUnsuccessfulExecution logs the tail of a failed task's stderr file to
// help diagnose the failure without keeping the whole output around.
func LogUnsuccessfulExecution(handle TaskHandle) {
	file, err := handle.StderrFile()
	if err != nil {
		logrus.Errorf("Impossible to retrieve stderr file: %q", err.Error())
		return
	}

	stderr, err := tailFile(file.Name(), TailedLinesCount)
	if err != nil {
		logrus.Errorf("Tailing stderr file failed: %q", err.Error())
		return
	}

	logrus.Errorf("Last %d lines of stderr: %s", TailedLinesCount, stderr)
}

// StderrTail returns the last lines of the task's stderr file.
func StderrTail(handle TaskHandle, lineCount int) (string, error) {
	file, err := handle.StderrFile()
	if err != nil {
		return "", err
	}

	return tailFile(file.Name(), lineCount)
}

func tailFile(filePath string, lineCount int) (tail string, err error) {
	lineCountParam := fmt.Sprintf("-n %d", lineCount)
	output, err := exec.Command("tail", lineCountParam, filePath).CombinedOutput()
	if err != nil {
		return "", errors.Wrapf(err, "could not read tail of %q", filePath)
	}

	return string(output), nil
}
