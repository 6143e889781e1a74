package engine

import (
	"sync"
	"time"

	"github.com/hamba/pkg/log"
	"github.com/hamba/pkg/stats"
	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/internal/fsm"
	"github.com/nrwiersma/inbox/engine/internal/rpc"
	"github.com/nrwiersma/inbox/engine/server"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// Engine is the task lifecycle engine. It owns the task store and
// serialises all writes to it.
type Engine struct {
	config *Config
	log    log.Logger
	stats  stats.Statter

	fsm    *fsm.FSM
	server *server.Server

	routines RoutineManager

	shutdownMu sync.Mutex
	shutdown   bool
}

// New returns a running engine with an empty store.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Null
	}
	statter := cfg.Statter
	if statter == nil {
		statter = stats.Null
	}

	f, err := fsm.New()
	if err != nil {
		return nil, errors.Wrap(err, "engine: error creating fsm")
	}

	e := &Engine{
		config: cfg,
		log:    logger,
		stats:  statter,
		fsm:    f,
	}
	e.server = server.New(e)

	e.routines.Start()

	return e, nil
}

// Store returns the task store.
func (e *Engine) Store() *state.Store {
	return e.fsm.Store()
}

// AddRoutine registers a routine to run until the engine is closed.
func (e *Engine) AddRoutine(routine Routine) {
	e.routines.Register(routine)
}

// Call makes an in memory RPC call to the engine.
func (e *Engine) Call(method string, req, resp interface{}) error {
	return e.server.Call(method, req, resp)
}

// Seed inserts a batch of tasks. Either all tasks are inserted or none.
func (e *Engine) Seed(tasks []*state.Task) error {
	req := rpc.SeedRequest{Tasks: make([]state.Task, 0, len(tasks))}
	for _, task := range tasks {
		if task == nil {
			return errors.WithMessage(state.ErrInvalidTask, "nil task")
		}
		req.Tasks = append(req.Tasks, *task)
	}

	if _, err := e.apply(rpc.SeedRequestType, &req); err != nil {
		return errors.Wrap(err, "engine: error seeding tasks")
	}

	e.log.Info("engine: tasks seeded", "count", len(tasks))
	e.stats.Inc("task.seeded", int64(len(tasks)), 1.0)
	return nil
}

// CreateTask creates a new task in the Ready status. A task id is
// generated if the task does not have one.
func (e *Engine) CreateTask(task *state.Task) (*state.Task, error) {
	if task == nil {
		return nil, errors.WithMessage(state.ErrInvalidTask, "nil task")
	}

	t := task.Copy()
	if t.ID == "" {
		t.ID = ksuid.New().String()
	}
	t.Status = state.StatusReady

	resp, err := e.apply(rpc.InsertTaskRequestType, &rpc.InsertTaskRequest{Task: *t})
	if err != nil {
		return nil, err
	}

	e.log.Debug("engine: task created", "id", t.ID)
	e.stats.Inc("task.created", 1, 1.0)
	return resp.(*state.Task), nil
}

// GetTask returns the task with the given id.
func (e *Engine) GetTask(id string) (*state.Task, error) {
	task, err := e.fsm.Store().Task(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.WithMessage(state.ErrTaskNotFound, id)
	}
	return task, nil
}

// UpdateTask updates the description and priority of a task. Updating
// an unknown task is a no-op.
func (e *Engine) UpdateTask(id string, upd state.TaskUpdate) error {
	resp, err := e.apply(rpc.UpdateTaskRequestType, &rpc.UpdateTaskRequest{
		ID:          id,
		Description: upd.Description,
		Priority:    upd.Priority,
	})
	if err != nil {
		return err
	}

	if ok := resp.(bool); !ok {
		e.log.Debug("engine: ignoring update of unknown task", "id", id)
		return nil
	}

	e.stats.Inc("task.updated", 1, 1.0)
	return nil
}

// ExecuteAction executes an action on a task on behalf of the user,
// returning the updated task.
func (e *Engine) ExecuteAction(id string, action state.Action, user string, payload map[string]string) (*state.Task, error) {
	if user == "" {
		user = e.config.DefaultUser
	}

	resp, err := e.apply(rpc.ExecuteActionRequestType, &rpc.ExecuteActionRequest{
		ID:      id,
		Action:  action,
		User:    user,
		Payload: payload,
	})
	if err != nil {
		e.log.Debug("engine: action rejected", "id", id, "action", action, "error", err)
		e.stats.Inc("task.action", 1, 1.0, "action", string(action), "result", "rejected")
		return nil, err
	}

	task := resp.(*state.Task)
	e.log.Debug("engine: action executed", "id", id, "action", action, "status", task.Status)
	e.stats.Inc("task.action", 1, 1.0, "action", string(action), "result", "ok")
	return task, nil
}

// ListTasks returns a page of the inbox.
func (e *Engine) ListTasks(q inbox.Query) (*inbox.Result, error) {
	start := time.Now()

	res, err := e.listTasks(q)
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	e.stats.Timing("inbox.query", time.Since(start), 1.0, "result", result)

	return res, err
}

func (e *Engine) listTasks(q inbox.Query) (*inbox.Result, error) {
	var (
		tasks []*state.Task
		err   error
	)
	if q.Filter.Status != "" {
		tasks, err = e.fsm.Store().TasksByStatus(q.Filter.Status)
	} else {
		tasks, err = e.fsm.Store().Tasks()
	}
	if err != nil {
		return nil, err
	}

	return inbox.Run(tasks, q)
}

// apply applies a command, unwrapping errors returned by the handler.
func (e *Engine) apply(t rpc.MessageType, msg interface{}) (interface{}, error) {
	resp, err := e.fsm.Apply(t, msg)
	if err != nil {
		e.log.Error("engine: apply failed", "type", t.String(), "error", err)
		return nil, err
	}
	if err, ok := resp.(error); ok {
		return nil, err
	}
	return resp, nil
}

// Close stops the engine routines.
func (e *Engine) Close() error {
	e.shutdownMu.Lock()
	defer e.shutdownMu.Unlock()

	if e.shutdown {
		return nil
	}
	e.shutdown = true

	e.routines.Stop()

	return nil
}
