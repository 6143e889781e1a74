package state

import "github.com/pkg/errors"

// Task errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrActionNotAllowed  = errors.New("action not allowed")
	ErrUnsupportedAction = errors.New("action not supported")
	ErrDuplicateTask     = errors.New("duplicate task id")
	ErrInvalidTask       = errors.New("invalid task")
	ErrInvalidPriority   = errors.New("invalid priority")
)

// Errors contains all the sentinel errors returned by the store.
var Errors = []error{
	ErrTaskNotFound,
	ErrActionNotAllowed,
	ErrUnsupportedAction,
	ErrDuplicateTask,
	ErrInvalidTask,
	ErrInvalidPriority,
}
