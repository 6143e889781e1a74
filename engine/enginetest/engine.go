package enginetest

import (
	"strconv"
	"testing"
	"time"

	"github.com/nrwiersma/inbox/engine"
	"github.com/nrwiersma/inbox/engine/state"
)

// NewEngine creates a test engine, closed when the test ends.
func NewEngine(t *testing.T, cfgFn func(cfg *engine.Config)) *engine.Engine {
	t.Helper()

	config := engine.NewConfig()

	if cfgFn != nil {
		cfgFn(config)
	}

	e, err := engine.New(config)
	if err != nil {
		t.Fatalf("err != nil: %s", err)
	}

	t.Cleanup(func() {
		if err := e.Close(); err != nil {
			t.Errorf("error closing engine: %v", err)
		}
	})

	return e
}

// Tasks returns n Ready tasks with ids "0" to "n-1", priorities
// cycling through the priority range and daily due dates from base.
func Tasks(n int, base time.Time) []*state.Task {
	tasks := make([]*state.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, &state.Task{
			ID:       strconv.Itoa(i),
			Name:     "Task " + strconv.Itoa(i),
			Priority: i % (state.MaxPriority + 1),
			Status:   state.StatusReady,
			DueDate:  base.AddDate(0, 0, i),
			Data:     map[string]string{"TaskName": "sample-task"},
		})
	}
	return tasks
}

// Seed seeds the engine with tasks, failing the test on error.
func Seed(t *testing.T, e *engine.Engine, tasks []*state.Task) {
	t.Helper()

	if err := e.Seed(tasks); err != nil {
		t.Fatalf("seed err: %v", err)
	}
}
