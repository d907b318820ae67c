package subject

import (
	"strings"

	"github.com/pkg/errors"
)

// gemini keeps items in a map plus an insertion ordered id list, so GetAll
// preserves insertion order without sorting.
type gemini struct {
	tasks map[int]Record
	order []int
	next  int
}

// NewGemini returns the gemini corpus implementation.
func NewGemini() Subject {
	return &gemini{tasks: map[int]Record{}, next: 1}
}

func (m *gemini) Add(name string, description string) (int, error) {
	if name == "" {
		return 0, errors.New("name must be a non-empty string")
	}
	if description == "" {
		return 0, errors.New("description must be a non-empty string")
	}

	id := m.next
	m.next++
	m.tasks[id] = Record{ID: id, Name: name, Description: description}
	m.order = append(m.order, id)
	return id, nil
}

func (m *gemini) Remove(id int) (bool, error) {
	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}

	delete(m.tasks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *gemini) Search(term string) ([]Record, error) {
	matches := []Record{}
	if term == "" {
		return matches, nil
	}

	needle := strings.ToLower(term)
	for _, id := range m.order {
		task := m.tasks[id]
		if strings.Contains(strings.ToLower(task.Name), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

func (m *gemini) Finish(id int) (bool, error) {
	task, ok := m.tasks[id]
	if !ok {
		return false, nil
	}

	task.Finished = true
	m.tasks[id] = task
	return true, nil
}

func (m *gemini) GetAll() ([]Record, error) {
	all := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, m.tasks[id])
	}
	return all, nil
}

func (m *gemini) Seed(records []Record) error {
	tasks := make(map[int]Record, len(records))
	order := make([]int, 0, len(records))
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
		order = append(order, record.ID)
	}

	m.tasks = tasks
	m.order = order
	m.next = highest + 1
	return nil
}
