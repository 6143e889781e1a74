// Package seed generates sample tasks for development.
package seed

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/nrwiersma/inbox/engine/state"
)

// TaskType is the type given to generated tasks.
const TaskType = "mock-task"

const description = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Integer nec odio. " +
	"Praesent libero. Sed cursus ante dapibus diam. Sed nisi. Nulla quis sem at nibh elementum imperdiet."

// Options configures task generation.
type Options struct {
	// Count is the number of tasks to generate.
	Count int

	// Seed is the random seed. Zero picks a seed from the clock.
	Seed int64

	// Now is the time due dates are generated from.
	Now time.Time

	// Users are the users that may have claimed a generated task.
	Users []string
}

// Generate generates sample tasks, returning them along with the seed
// used. Generating with the same options always gives the same tasks.
func Generate(opts Options) ([]*state.Task, int64) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rnd := rand.New(rand.NewSource(seed))

	tasks := make([]*state.Task, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		task := &state.Task{
			ID:       strconv.Itoa(i),
			Name:     "Task " + strconv.Itoa(i),
			Type:     TaskType,
			Priority: rnd.Intn(state.MaxPriority + 1),
			Status:   state.StatusReady,
			DueDate:  now.AddDate(0, 0, i),
			Form:     Form,
			Data:     Data(),
		}
		if rnd.Intn(2) > 0 {
			task.Description = description
		}

		claimed := rnd.Intn(4) == 0
		if claimed && len(opts.Users) > 0 {
			task.Status = state.StatusReserved
			task.Owner = opts.Users[rnd.Intn(len(opts.Users))]
		}
		task.AllowedActions = state.AllowedActions(task.Status)

		tasks = append(tasks, task)
	}
	return tasks, seed
}

// Data returns the sample task data matching Form.
func Data() map[string]string {
	return map[string]string{
		"TaskName":     "sample-task",
		"task-field-1": "Hello World",
		"task-field-2": "true",
		"task-field-3": "Foo Bar",
		"task-field-4": "option-2",
		"task-field-5": "Creates a mock task form.",
		"task-field-6": "option-3",
		"task-label-1": "Span Label",
		"task-label-2": "Div Label",
		"task-label-3": "Label Label",
	}
}

// Form is the sample task form template.
const Form = `<div><form>
  <fieldset>
    <label>Task Field 1</label>
    <input name="task-field-1" type="text" placeholder="Type something..."></input>
    <label class="checkbox"><input name="task-field-2" type="checkbox"> Task Field 2</input></label>
    <label>Task Field 3</label>
    <input name="task-field-3" type="text"></input>
    <label>Task Field 4</label>
    <input type="radio" name="task-field-4" value="option-1">Option 1</input>
    <input type="radio" name="task-field-4" value="option-2">Option 2</input>
    <input type="radio" name="task-field-4" value="option-3">Option 3</input>
    <textarea name="task-field-5" rows="3" cols="40"></textarea>
    <label>Task Field 6</label>
    <select name="task-field-6">
      <option value="option-1">Option 1</option>
      <option value="option-2">Option 2</option>
      <option value="option-3">Option 3</option>
    </select>
    <span data-name="task-label-1"></span>
    <div data-name="task-label-2"></div>
    <label data-name="task-label-3"></label>
  </fieldset>
</form></div>`
