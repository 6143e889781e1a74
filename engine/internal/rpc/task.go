package rpc

import "github.com/nrwiersma/inbox/engine/state"

// InsertTaskRequest is used to insert a single task.
type InsertTaskRequest struct {
	Task state.Task
}

// SeedRequest is used to insert a batch of tasks at once.
type SeedRequest struct {
	Tasks []state.Task
}

// UpdateTaskRequest is used to update the mutable fields of a task.
type UpdateTaskRequest struct {
	ID          string
	Description *string
	Priority    *int
}

// ExecuteActionRequest is used to execute an action on a task.
type ExecuteActionRequest struct {
	ID      string
	Action  state.Action
	User    string
	Payload map[string]string
}
