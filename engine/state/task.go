package state

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
)

// Priority bounds.
const (
	MinPriority = 0
	MaxPriority = 2
)

// Task is used to store info about a task and its state.
type Task struct {
	ID             string
	Name           string
	Description    string
	Type           string
	Owner          string
	Priority       int
	Status         Status
	DueDate        time.Time
	AllowedActions []Action
	Data           map[string]string
	Form           string

	CreateIndex uint64
	ModifyIndex uint64
}

// HasDueDate returns true if the task has a due date.
func (t *Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// IsActionAllowed checks if the action is currently permitted.
func (t *Task) IsActionAllowed(action Action) bool {
	for _, a := range t.AllowedActions {
		if a == action {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the task.
func (t *Task) Copy() *Task {
	if t == nil {
		return nil
	}

	cp := *t
	if t.AllowedActions != nil {
		cp.AllowedActions = make([]Action, len(t.AllowedActions))
		copy(cp.AllowedActions, t.AllowedActions)
	}
	if t.Data != nil {
		cp.Data = make(map[string]string, len(t.Data))
		for k, v := range t.Data {
			cp.Data[k] = v
		}
	}
	return &cp
}

// setStatus moves the task to the given status, keeping the owner
// and allowed actions in line with it.
func (t *Task) setStatus(status Status, owner string) {
	if !status.IsHeld() {
		owner = ""
	}

	t.Status = status
	t.Owner = owner
	t.AllowedActions = AllowedActions(status)
}

// Validate checks the task can be stored.
func (t *Task) Validate() error {
	if t.ID == "" {
		return errors.WithMessage(ErrInvalidTask, "missing id")
	}
	if !t.Status.IsValid() {
		return errors.WithMessage(ErrInvalidTask, fmt.Sprintf("unknown status %q", t.Status))
	}
	return validatePriority(t.Priority)
}

func validatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return errors.WithMessage(ErrInvalidPriority, fmt.Sprintf("%d not in [%d, %d]", p, MinPriority, MaxPriority))
	}
	return nil
}

// TaskUpdate holds the fields of a task that can be updated
// outside of the task lifecycle.
type TaskUpdate struct {
	Description *string
	Priority    *int
}

func tasksTableSchema() *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: tableTasks,
		Indexes: map[string]*memdb.IndexSchema{
			"id": {
				Name:         "id",
				AllowMissing: false,
				Unique:       true,
				Indexer: &memdb.StringFieldIndex{
					Field: "ID",
				},
			},
			"status": {
				Name:         "status",
				AllowMissing: false,
				Unique:       false,
				Indexer: &memdb.StringFieldIndex{
					Field: "Status",
				},
			},
			"owner": {
				Name:         "owner",
				AllowMissing: true,
				Unique:       false,
				Indexer: &memdb.StringFieldIndex{
					Field: "Owner",
				},
			},
		},
	}
}

// Task restores a task.
func (r *Restore) Task(task *Task) error {
	return insertTaskTx(r.tx, r.idx, task)
}

// Task returns a task with the given id or nil.
func (s *Store) Task(id string) (*Task, error) {
	tx := s.db.Txn(false)
	defer tx.Abort()

	task, err := tx.First(tableTasks, "id", id)
	if err != nil {
		return nil, errors.Wrap(err, "state: task lookup failed")
	}
	if task == nil {
		return nil, nil
	}
	return task.(*Task).Copy(), nil
}

// Tasks returns a copy of all the tasks in insertion order.
func (s *Store) Tasks() ([]*Task, error) {
	tx := s.db.Txn(false)
	defer tx.Abort()

	iter, err := tx.Get(tableTasks, "id")
	if err != nil {
		return nil, errors.Wrap(err, "state: task lookup failed")
	}
	return collectTasks(iter), nil
}

// TasksByStatus returns a copy of all the tasks with the given status
// in insertion order.
func (s *Store) TasksByStatus(status Status) ([]*Task, error) {
	tx := s.db.Txn(false)
	defer tx.Abort()

	iter, err := tx.Get(tableTasks, "status", string(status))
	if err != nil {
		return nil, errors.Wrap(err, "state: task lookup failed")
	}
	return collectTasks(iter), nil
}

func collectTasks(iter memdb.ResultIterator) []*Task {
	tasks := []*Task{}
	for next := iter.Next(); next != nil; next = iter.Next() {
		tasks = append(tasks, next.(*Task).Copy())
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreateIndex < tasks[j].CreateIndex
	})
	return tasks
}

// InsertTask inserts a new task in the database.
func (s *Store) InsertTask(idx uint64, task *Task) error {
	tx := s.db.Txn(true)
	defer tx.Abort()

	if err := insertTaskTx(tx, idx, task); err != nil {
		return err
	}
	if err := writeCounter(tx, counterTasksIndex, idx); err != nil {
		return err
	}

	tx.Commit()
	return nil
}

func insertTaskTx(tx *memdb.Txn, idx uint64, task *Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	existing, err := tx.First(tableTasks, "id", task.ID)
	if err != nil {
		return errors.Wrap(err, "state: task lookup failed")
	}
	if existing != nil {
		return errors.WithMessage(ErrDuplicateTask, task.ID)
	}

	seq, err := readCounter(tx, counterTasksSequence)
	if err != nil {
		return err
	}
	seq++
	if err := writeCounter(tx, counterTasksSequence, seq); err != nil {
		return err
	}

	t := task.Copy()
	t.setStatus(t.Status, t.Owner)
	t.CreateIndex = seq
	t.ModifyIndex = idx

	if err := tx.Insert(tableTasks, t); err != nil {
		return errors.Wrap(err, "state: failed inserting task")
	}
	return nil
}

// UpdateTask merges the description and priority into an existing task.
// It returns false if the task does not exist.
func (s *Store) UpdateTask(idx uint64, id string, upd TaskUpdate) (bool, error) {
	if upd.Priority != nil {
		if err := validatePriority(*upd.Priority); err != nil {
			return false, err
		}
	}

	tx := s.db.Txn(true)
	defer tx.Abort()

	existing, err := tx.First(tableTasks, "id", id)
	if err != nil {
		return false, errors.Wrap(err, "state: task lookup failed")
	}
	if existing == nil {
		return false, nil
	}

	task := existing.(*Task).Copy()
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}

	if err := saveTaskTx(tx, idx, task); err != nil {
		return false, err
	}

	tx.Commit()
	return true, nil
}

// ExecuteAction validates and applies an action to the task with the
// given id, returning the updated task. The task is left unchanged on error.
func (s *Store) ExecuteAction(idx uint64, id string, action Action, user string, payload map[string]string) (*Task, error) {
	tx := s.db.Txn(true)
	defer tx.Abort()

	existing, err := tx.First(tableTasks, "id", id)
	if err != nil {
		return nil, errors.Wrap(err, "state: task lookup failed")
	}
	if existing == nil {
		return nil, errors.WithMessage(ErrTaskNotFound, id)
	}

	task := existing.(*Task).Copy()
	if err := applyAction(task, action, user, payload); err != nil {
		return nil, errors.WithMessage(err, fmt.Sprintf("task %s: %s", id, action))
	}

	if err := saveTaskTx(tx, idx, task); err != nil {
		return nil, err
	}

	tx.Commit()
	return task.Copy(), nil
}

func saveTaskTx(tx *memdb.Txn, idx uint64, task *Task) error {
	task.ModifyIndex = idx

	if err := tx.Insert(tableTasks, task); err != nil {
		return errors.Wrap(err, "state: failed updating task")
	}
	if err := writeCounter(tx, counterTasksIndex, idx); err != nil {
		return err
	}
	return nil
}
