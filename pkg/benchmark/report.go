package benchmark

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

// Report is the wire format one worker emits on its stdout for the
// orchestrator. A trial failure travels in-band in the Error field; a worker
// that produced a report always exited deliberately.
type Report struct {
	MemoryBeforeMB float64          `json:"memory_before_mb"`
	MemoryAfterMB  float64          `json:"memory_after_mb"`
	DeltaMB        float64          `json:"delta_mb"`
	Error          string           `json:"error,omitempty"`
	Snapshot       []subject.Record `json:"snapshot,omitempty"`
}

// Write serializes the report as JSON.
func (r Report) Write(writer io.Writer) error {
	err := json.NewEncoder(writer).Encode(r)
	return errors.Wrap(err, "could not encode trial report")
}

// ReadReport deserializes a report produced by Write.
func ReadReport(reader io.Reader) (Report, error) {
	var report Report
	err := json.NewDecoder(reader).Decode(&report)
	if err != nil {
		return Report{}, errors.Wrap(err, "could not decode trial report")
	}

	return report, nil
}

// WriteSeedFile stores captured subject records in dir for a worker to pick
// up. It returns the file path to pass on the worker's command line.
func WriteSeedFile(dir string, records []subject.Record) (string, error) {
	file, err := os.CreateTemp(dir, "seed")
	if err != nil {
		return "", errors.Wrap(err, "could not create seed file")
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(records); err != nil {
		return "", errors.Wrapf(err, "could not encode seed file %q", file.Name())
	}

	return file.Name(), nil
}

// ReadSeedFile loads captured subject records written by WriteSeedFile.
func ReadSeedFile(path string) ([]subject.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open seed file %q", path)
	}
	defer file.Close()

	var records []subject.Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "could not decode seed file %q", path)
	}

	return records, nil
}
