package server

import (
	"github.com/nrwiersma/inbox/engine/rpc"
	"github.com/nrwiersma/inbox/engine/state"
)

// Tasks serves RPC calls about tasks.
type Tasks struct {
	srv *Server
}

// List gets a page of the inbox.
func (t *Tasks) List(req *rpc.ListTasksRequest, resp *rpc.ListTasksResponse) error {
	res, err := t.srv.delegate.ListTasks(req.Query)
	if err != nil {
		return err
	}

	resp.Result = *res
	return nil
}

// Get gets a single task.
func (t *Tasks) Get(req *rpc.GetTaskRequest, resp *rpc.TaskResponse) error {
	task, err := t.srv.delegate.GetTask(req.ID)
	if err != nil {
		return err
	}

	resp.Task = *task
	return nil
}

// Create creates a task.
func (t *Tasks) Create(req *rpc.CreateTaskRequest, resp *rpc.TaskResponse) error {
	task, err := t.srv.delegate.CreateTask(&req.Task)
	if err != nil {
		return err
	}

	resp.Task = *task
	return nil
}

// Update updates the description and priority of a task.
func (t *Tasks) Update(req *rpc.UpdateTaskRequest, resp *rpc.UpdateTaskResponse) error {
	return t.srv.delegate.UpdateTask(req.ID, req.Update)
}

// Execute executes an action on a task.
func (t *Tasks) Execute(req *rpc.ExecuteActionRequest, resp *rpc.TaskResponse) error {
	task, err := t.srv.delegate.ExecuteAction(req.ID, state.Action(req.Action), req.User, req.Payload)
	if err != nil {
		return err
	}

	resp.Task = *task
	return nil
}
