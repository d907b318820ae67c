// Package subject defines the capability contract of the todo-list
// implementations under test and a registry of the corpus modules.
//
// The harness treats a Subject as opaque: it only cares whether calls
// succeed or fail, never about record contents.
package subject

// Record is one todo item as exposed by a Subject.
type Record struct {
	ID          int    `json:"id"`
	Name        string `json:"task_name"`
	Description string `json:"task_description"`
	Finished    bool   `json:"is_finished"`
}

// Subject is the fixed capability set every benchmarked implementation provides.
// Ids are positive integers assigned by the Subject itself.
type Subject interface {
	// Add stores a new unfinished item and returns its id.
	// Empty name or description is rejected.
	Add(name string, description string) (int, error)
	// Remove deletes the item with the given id. It returns false when no
	// such item exists.
	Remove(id int) (bool, error)
	// Search returns all items whose name or description contains the term.
	// An empty term matches nothing.
	Search(term string) ([]Record, error)
	// Finish marks the item with the given id as finished. It returns false
	// when no such item exists.
	Finish(id int) (bool, error)
	// GetAll returns all stored items.
	GetAll() ([]Record, error)
	// Seed replaces the Subject's state with the given records. It is the
	// explicit state-transfer contract between benchmark phases: records
	// captured from one process are replayed into a fresh instance in another.
	Seed(records []Record) error
}
