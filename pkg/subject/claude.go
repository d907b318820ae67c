package subject

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// claude is a map backed task manager with constant time id lookups.
// GetAll returns items ordered by id.
type claude struct {
	tasks  map[int]Record
	nextID int
}

// NewClaude returns the claude corpus implementation.
func NewClaude() Subject {
	return &claude{tasks: map[int]Record{}, nextID: 1}
}

func (m *claude) Add(name string, description string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errors.New("task name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return 0, errors.New("task description cannot be empty")
	}

	id := m.nextID
	m.nextID++
	m.tasks[id] = Record{ID: id, Name: name, Description: description}
	return id, nil
}

func (m *claude) Remove(id int) (bool, error) {
	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

func (m *claude) Search(term string) ([]Record, error) {
	if term == "" {
		return []Record{}, nil
	}

	needle := strings.ToLower(term)
	matches := []Record{}
	for _, task := range m.sorted() {
		if strings.Contains(strings.ToLower(task.Name), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

func (m *claude) Finish(id int) (bool, error) {
	task, ok := m.tasks[id]
	if !ok {
		return false, nil
	}
	task.Finished = true
	m.tasks[id] = task
	return true, nil
}

func (m *claude) GetAll() ([]Record, error) {
	return m.sorted(), nil
}

func (m *claude) Seed(records []Record) error {
	tasks := make(map[int]Record, len(records))
	highest := 0

	for _, record := range records {
		if record.ID <= 0 {
			return errors.Errorf("cannot seed task with non-positive id %d", record.ID)
		}
		if _, ok := tasks[record.ID]; ok {
			return errors.Errorf("cannot seed duplicate task id %d", record.ID)
		}

		if record.ID > highest {
			highest = record.ID
		}
		tasks[record.ID] = record
	}

	m.tasks = tasks
	m.nextID = highest + 1
	return nil
}

func (m *claude) sorted() []Record {
	all := make([]Record, 0, len(m.tasks))
	for _, task := range m.tasks {
		all = append(all, task)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
