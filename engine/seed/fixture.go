package seed

import (
	"io"
	"time"

	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Fixture is a file of tasks.
type Fixture struct {
	Tasks []FixtureTask `yaml:"tasks"`
}

// FixtureTask is a task in a fixture file.
type FixtureTask struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Type        string            `yaml:"type,omitempty"`
	Owner       string            `yaml:"owner,omitempty"`
	Priority    int               `yaml:"priority"`
	Status      string            `yaml:"status,omitempty"`
	DueDate     time.Time         `yaml:"due_date,omitempty"`
	Data        map[string]string `yaml:"data,omitempty"`
	Form        string            `yaml:"form,omitempty"`
}

// ReadFixture reads tasks from a YAML fixture. Tasks without a
// status are Ready.
func ReadFixture(r io.Reader) ([]*state.Task, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return []*state.Task{}, nil
		}
		return nil, errors.Wrap(err, "seed: error decoding fixture")
	}

	tasks := make([]*state.Task, 0, len(f.Tasks))
	for _, ft := range f.Tasks {
		status := state.Status(ft.Status)
		if status == "" {
			status = state.StatusReady
		}

		tasks = append(tasks, &state.Task{
			ID:             ft.ID,
			Name:           ft.Name,
			Description:    ft.Description,
			Type:           ft.Type,
			Owner:          ft.Owner,
			Priority:       ft.Priority,
			Status:         status,
			DueDate:        ft.DueDate,
			AllowedActions: state.AllowedActions(status),
			Data:           ft.Data,
			Form:           ft.Form,
		})
	}
	return tasks, nil
}

// WriteFixture writes tasks as a YAML fixture.
func WriteFixture(w io.Writer, tasks []*state.Task) error {
	f := Fixture{Tasks: make([]FixtureTask, 0, len(tasks))}
	for _, task := range tasks {
		f.Tasks = append(f.Tasks, FixtureTask{
			ID:          task.ID,
			Name:        task.Name,
			Description: task.Description,
			Type:        task.Type,
			Owner:       task.Owner,
			Priority:    task.Priority,
			Status:      string(task.Status),
			DueDate:     task.DueDate,
			Data:        task.Data,
			Form:        task.Form,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return errors.Wrap(err, "seed: error encoding fixture")
	}
	return enc.Close()
}
