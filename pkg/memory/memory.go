// Package memory reports the resident memory of the calling process.
// The probe is taken before and after a trial's operation batch; the
// difference is the quantity the harness aggregates.
package memory

const bytesPerMB = 1024 * 1024

// ResidentMB returns the resident set size of the calling process in megabytes.
func ResidentMB() (float64, error) {
	return residentMB()
}
