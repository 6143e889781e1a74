package server

import (
	"strings"

	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/rpc"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
)

// Caller represents an object that can make RPC calls.
type Caller interface {
	Call(method string, req, resp interface{}) error
}

// Client performs task operations over RPC.
type Client struct {
	caller Caller
}

// NewClient returns an RPC task client.
func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// ListTasks returns a page of the inbox.
func (c *Client) ListTasks(q inbox.Query) (*inbox.Result, error) {
	var resp rpc.ListTasksResponse
	if err := c.call("Tasks.List", &rpc.ListTasksRequest{Query: q}, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// GetTask returns the task with the given id.
func (c *Client) GetTask(id string) (*state.Task, error) {
	var resp rpc.TaskResponse
	if err := c.call("Tasks.Get", &rpc.GetTaskRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(task *state.Task) (*state.Task, error) {
	var resp rpc.TaskResponse
	if err := c.call("Tasks.Create", &rpc.CreateTaskRequest{Task: *task}, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// UpdateTask updates the description and priority of a task.
func (c *Client) UpdateTask(id string, upd state.TaskUpdate) error {
	var resp rpc.UpdateTaskResponse
	return c.call("Tasks.Update", &rpc.UpdateTaskRequest{ID: id, Update: upd}, &resp)
}

// ExecuteAction executes an action on a task on behalf of the user.
func (c *Client) ExecuteAction(id string, action state.Action, user string, payload map[string]string) (*state.Task, error) {
	req := rpc.ExecuteActionRequest{
		ID:      id,
		Action:  string(action),
		User:    user,
		Payload: payload,
	}

	var resp rpc.TaskResponse
	if err := c.call("Tasks.Execute", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) call(method string, req, resp interface{}) error {
	return remoteError(c.caller.Call(method, req, resp))
}

var knownErrors = append([]error{inbox.ErrUnknownSortColumn, inbox.ErrInvalidRange}, state.Errors...)

// remoteError restores the sentinel errors lost in the RPC response.
func remoteError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, known := range knownErrors {
		if msg == known.Error() {
			return known
		}

		suffix := ": " + known.Error()
		if strings.HasSuffix(msg, suffix) {
			return errors.WithMessage(known, strings.TrimSuffix(msg, suffix))
		}
	}
	return err
}
