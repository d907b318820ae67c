package benchmark

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/memory"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

// WorkerConfig describes one trial to run inside a worker process.
type WorkerConfig struct {
	// Module is the subject registry name.
	Module string
	// Phase is the measurement descriptor.
	Phase Descriptor
	// Trial is the 0-based trial index, used only for logging.
	Trial int
	// Seed holds the captured state from the add phase. Nil means a fresh
	// subject, which is only meaningful for the add phase itself.
	Seed []subject.Record
}

// RunTrial executes one isolated trial and returns its report. It never
// panics or errors out of the worker process; any failure, including a
// panicking subject, is carried in the report's Error field.
func RunTrial(config WorkerConfig) (report Report) {
	defer func() {
		if panicked := recover(); panicked != nil {
			report.Error = fmt.Sprintf("subject panicked: %v", panicked)
		}
	}()

	logrus.Debugf("Trial %d of phase %s on module %q starting",
		config.Trial, config.Phase.Name, config.Module)

	sub, err := subject.New(config.Module)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	if config.Seed != nil {
		if err := sub.Seed(config.Seed); err != nil {
			report.Error = errors.Wrap(err, "seeding captured state failed").Error()
			return report
		}
	}

	before, err := memory.ResidentMB()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.MemoryBeforeMB = before

	for iteration := 1; iteration <= config.Phase.Iterations; iteration++ {
		if err := config.Phase.Invoke(sub, iteration); err != nil {
			report.Error = errors.Wrapf(err, "iteration %d of phase %s failed",
				iteration, config.Phase.Name).Error()
			return report
		}
	}

	after, err := memory.ResidentMB()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.MemoryAfterMB = after
	report.DeltaMB = after - before

	if config.Phase.CaptureState {
		records, err := sub.GetAll()
		if err != nil {
			report.Error = errors.Wrap(err, "capturing subject state failed").Error()
			return report
		}
		report.Snapshot = records
	}

	logrus.Debugf("Trial %d of phase %s finished: %.2f MB -> %.2f MB",
		config.Trial, config.Phase.Name, report.MemoryBeforeMB, report.MemoryAfterMB)

	return report
}
