package benchmark

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Session identifies one benchmark run in the logs.
type Session struct {
	ID   string
	Name string
}

// NewSession returns a session tagged with a fresh UUID and a sortable
// timestamp prefix.
func NewSession() Session {
	stamp := time.Now().Format("2006-01-02T15h04m05s")

	id, err := uuid.NewV4()
	if err != nil {
		// Extremely unlikely; the timestamp alone still identifies the run.
		return Session{Name: stamp}
	}

	return Session{
		ID:   id.String(),
		Name: stamp + "_" + id.String(),
	}
}
