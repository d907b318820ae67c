package benchmark

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

// DefaultIterations is the number of operation calls per trial. The corpus
// benchmarks every operation against ten thousand items.
const DefaultIterations = 10000

// Operation enumerates the Subject capabilities a phase can measure.
type Operation int

const (
	// OperationAdd measures Subject.Add.
	OperationAdd Operation = iota
	// OperationRemove measures Subject.Remove.
	OperationRemove
	// OperationSearch measures Subject.Search.
	OperationSearch
	// OperationFinish measures Subject.Finish.
	OperationFinish
	// OperationGetAll measures Subject.GetAll.
	OperationGetAll
)

// String returns the Subject capability name of the operation.
func (o Operation) String() string {
	switch o {
	case OperationAdd:
		return "add"
	case OperationRemove:
		return "remove"
	case OperationSearch:
		return "search"
	case OperationFinish:
		return "finish"
	case OperationGetAll:
		return "get_all"
	}
	return "unknown"
}

// Args is the rendered argument list for one loop iteration of a phase.
// Which fields are meaningful depends on the operation.
type Args struct {
	Name        string
	Description string
	Term        string
	ID          int
}

// ArgumentGenerator renders the operation arguments for the given 1-based
// loop iteration.
type ArgumentGenerator func(iteration int) Args

// Descriptor describes one measurement phase: the operation, how often it is
// called per trial and how its arguments are rendered. Descriptors are
// immutable, constructed once per phase.
type Descriptor struct {
	// Name identifies the phase in the printed summary. Two phases can
	// measure the same operation with different arguments.
	Name string
	// Operation is the Subject capability under measurement.
	Operation Operation
	// Iterations is the number of operation calls per trial.
	Iterations int
	// Arguments renders the call arguments for each loop iteration.
	Arguments ArgumentGenerator
	// CaptureState marks the phase whose resulting Subject state is
	// published as the captured state for all later phases.
	CaptureState bool
}

// Invoke calls the descriptor's operation on the Subject with the arguments
// rendered for the given 1-based iteration.
func (d Descriptor) Invoke(sub subject.Subject, iteration int) error {
	args := d.Arguments(iteration)

	switch d.Operation {
	case OperationAdd:
		_, err := sub.Add(args.Name, args.Description)
		return err
	case OperationRemove:
		_, err := sub.Remove(args.ID)
		return err
	case OperationSearch:
		_, err := sub.Search(args.Term)
		return err
	case OperationFinish:
		_, err := sub.Finish(args.ID)
		return err
	case OperationGetAll:
		_, err := sub.GetAll()
		return err
	}

	return errors.Errorf("unknown operation %d", d.Operation)
}

// AddPhase builds the descriptor of the add phase. It creates the ten
// thousand items every later phase operates on.
func AddPhase() Descriptor {
	return Descriptor{
		Name:       "add",
		Operation:  OperationAdd,
		Iterations: DefaultIterations,
		Arguments: func(iteration int) Args {
			return Args{
				Name:        fmt.Sprintf("task_name%d", iteration),
				Description: fmt.Sprintf("task_description%d", iteration),
			}
		},
		CaptureState: true,
	}
}

// GetAllPhase builds the descriptor of the get_all phase.
func GetAllPhase() Descriptor {
	return Descriptor{
		Name:       "get_all",
		Operation:  OperationGetAll,
		Iterations: DefaultIterations,
		Arguments:  func(int) Args { return Args{} },
	}
}

// SearchByNamePhase builds the descriptor of the search phase matching item
// names.
func SearchByNamePhase() Descriptor {
	return Descriptor{
		Name:       "search_by_name",
		Operation:  OperationSearch,
		Iterations: DefaultIterations,
		Arguments: func(iteration int) Args {
			return Args{Term: fmt.Sprintf("task_name%d", iteration)}
		},
	}
}

// SearchByDescriptionPhase builds the descriptor of the search phase matching
// item descriptions.
func SearchByDescriptionPhase() Descriptor {
	return Descriptor{
		Name:       "search_by_description",
		Operation:  OperationSearch,
		Iterations: DefaultIterations,
		Arguments: func(iteration int) Args {
			return Args{Term: fmt.Sprintf("task_description%d", iteration)}
		},
	}
}

// FinishPhase builds the descriptor of the finish phase. The iteration index
// doubles as the item id.
func FinishPhase() Descriptor {
	return Descriptor{
		Name:       "finish",
		Operation:  OperationFinish,
		Iterations: DefaultIterations,
		Arguments:  func(iteration int) Args { return Args{ID: iteration} },
	}
}

// RemovePhase builds the descriptor of the remove phase. The iteration index
// doubles as the item id.
func RemovePhase() Descriptor {
	return Descriptor{
		Name:       "remove",
		Operation:  OperationRemove,
		Iterations: DefaultIterations,
		Arguments:  func(iteration int) Args { return Args{ID: iteration} },
	}
}

// Phases returns the descriptors of all benchmark phases in execution order.
// The add phase always comes first because it builds the state every later
// phase depends on.
func Phases() []Descriptor {
	return []Descriptor{
		AddPhase(),
		GetAllPhase(),
		SearchByNamePhase(),
		SearchByDescriptionPhase(),
		FinishPhase(),
		RemovePhase(),
	}
}

// LaterPhases returns the descriptors of all phases after add.
func LaterPhases() []Descriptor {
	return Phases()[1:]
}

// PhaseByName returns the descriptor registered under the given phase name.
func PhaseByName(name string) (Descriptor, error) {
	for _, phase := range Phases() {
		if phase.Name == name {
			return phase, nil
		}
	}

	return Descriptor{}, errors.Errorf("unknown phase %q", name)
}
