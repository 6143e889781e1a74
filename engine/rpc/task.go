package rpc

import (
	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/state"
)

// ListTasksRequest is used to request a page of the inbox.
type ListTasksRequest struct {
	Query inbox.Query
}

// ListTasksResponse is a page of the inbox.
type ListTasksResponse struct {
	Result inbox.Result
}

// GetTaskRequest is used to request a single task.
type GetTaskRequest struct {
	ID string
}

// TaskResponse returns a single task.
type TaskResponse struct {
	Task state.Task
}

// CreateTaskRequest is used to create a task.
type CreateTaskRequest struct {
	Task state.Task
}

// UpdateTaskRequest is used to update the description and priority of a task.
type UpdateTaskRequest struct {
	ID     string
	Update state.TaskUpdate
}

// UpdateTaskResponse is returned from a task update.
type UpdateTaskResponse struct{}

// ExecuteActionRequest is used to execute an action on a task.
type ExecuteActionRequest struct {
	ID      string
	Action  string
	User    string
	Payload map[string]string
}
