package subject

import (
	"strings"

	"github.com/pkg/errors"
)

// chatGPT is a slice backed task manager. Lookups are linear scans; ids are
// assigned from a monotonic counter starting at 1.
type chatGPT struct {
	tasks  []Record
	nextID int
}

// NewChatGPT returns the chatgpt corpus implementation.
func NewChatGPT() Subject {
	return &chatGPT{nextID: 1}
}

func (m *chatGPT) Add(name string, description string) (int, error) {
	if name == "" || description == "" {
		return 0, errors.New("task name and description must be non-empty strings")
	}

	id := m.nextID
	m.nextID++
	m.tasks = append(m.tasks, Record{ID: id, Name: name, Description: description})
	return id, nil
}

func (m *chatGPT) Remove(id int) (bool, error) {
	for i, task := range m.tasks {
		if task.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *chatGPT) Search(term string) ([]Record, error) {
	if term == "" {
		return []Record{}, nil
	}

	needle := strings.ToLower(term)
	matches := []Record{}
	for _, task := range m.tasks {
		if strings.Contains(strings.ToLower(task.Name), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

func (m *chatGPT) Finish(id int) (bool, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Finished = true
			return true, nil
		}
	}
	return false, nil
}

func (m *chatGPT) GetAll() ([]Record, error) {
	all := make([]Record, len(m.tasks))
	copy(all, m.tasks)
	return all, nil
}

func (m *chatGPT) Seed(records []Record) error {
	tasks := make([]Record, 0, len(records))
	highest := 0
	seen := map[int]struct{}{}

	for _, record := range records {
		if record.ID <= 0 {
			return errors.Errorf("cannot seed task with non-positive id %d", record.ID)
		}
		if _, ok := seen[record.ID]; ok {
			return errors.Errorf("cannot seed duplicate task id %d", record.ID)
		}
		seen[record.ID] = struct{}{}

		if record.ID > highest {
			highest = record.ID
		}
		tasks = append(tasks, record)
	}

	m.tasks = tasks
	m.nextID = highest + 1
	return nil
}
