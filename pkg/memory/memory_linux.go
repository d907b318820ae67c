//go:build linux

package memory

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const statmPath = "/proc/self/statm"

// residentMB reads the resident page count from /proc/self/statm.
// The second field of statm is the resident set size in pages.
func residentMB() (float64, error) {
	data, err := os.ReadFile(statmPath)
	if err != nil {
		return 0, errors.Wrapf(err, "could not read %q", statmPath)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, errors.Errorf("malformed %q content: %q", statmPath, string(data))
	}

	residentPages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "could not parse resident pages from %q", statmPath)
	}

	residentBytes := residentPages * uint64(os.Getpagesize())
	return float64(residentBytes) / bytesPerMB, nil
}
