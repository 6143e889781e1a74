package server_test

import (
	"testing"

	"github.com/nrwiersma/inbox/engine"
	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/server"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*server.Client, *engine.Engine) {
	t.Helper()

	e, err := engine.New(engine.NewConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	err = e.Seed([]*state.Task{
		{ID: "0", Name: "Task 0", Priority: 1, Status: state.StatusReady},
		{ID: "1", Name: "Task 1", Priority: 0, Status: state.StatusReady},
		{ID: "2", Name: "Task 2", Priority: 1, Status: state.StatusReady},
	})
	require.NoError(t, err)

	return server.NewClient(e), e
}

func TestClient_ListTasks(t *testing.T) {
	c, _ := newClient(t)

	got, err := c.ListTasks(inbox.Query{
		Filter:        inbox.Filter{Priority: 1},
		StartIndex:    0,
		EndIndex:      0,
		SortColumn:    inbox.SortName,
		SortAscending: false,
	})

	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "2", got.Tasks[0].ID)
	assert.Equal(t, 2, got.TotalResults)
	assert.Equal(t, 1, got.ItemsPerPage)
}

func TestClient_ListTasksError(t *testing.T) {
	c, _ := newClient(t)

	_, err := c.ListTasks(inbox.Query{EndIndex: 1, SortColumn: "colour"})

	assert.True(t, errors.Is(err, inbox.ErrUnknownSortColumn), "got %v", err)
	assert.EqualError(t, err, "colour: unknown sort column")
}

func TestClient_GetTask(t *testing.T) {
	c, _ := newClient(t)

	got, err := c.GetTask("1")

	require.NoError(t, err)
	assert.Equal(t, "Task 1", got.Name)
	assert.Equal(t, []state.Action{state.ActionClaim}, got.AllowedActions)
}

func TestClient_GetTaskNotFound(t *testing.T) {
	c, _ := newClient(t)

	_, err := c.GetTask("nope")

	assert.True(t, errors.Is(err, state.ErrTaskNotFound), "got %v", err)
}

func TestClient_CreateTask(t *testing.T) {
	c, e := newClient(t)

	got, err := c.CreateTask(&state.Task{Name: "New", Priority: 2})

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, state.StatusReady, got.Status)
	stored, err := e.GetTask(got.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Name)
}

func TestClient_UpdateTask(t *testing.T) {
	c, e := newClient(t)
	desc, prio := "changed", 2

	err := c.UpdateTask("0", state.TaskUpdate{Description: &desc, Priority: &prio})

	require.NoError(t, err)
	got, err := e.GetTask("0")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Description)
	assert.Equal(t, 2, got.Priority)
}

func TestClient_UpdateTaskInvalidPriority(t *testing.T) {
	c, _ := newClient(t)
	prio := 9

	err := c.UpdateTask("0", state.TaskUpdate{Priority: &prio})

	assert.True(t, errors.Is(err, state.ErrInvalidPriority), "got %v", err)
}

func TestClient_ExecuteAction(t *testing.T) {
	c, _ := newClient(t)

	got, err := c.ExecuteAction("0", state.ActionClaim, "ewittman", nil)

	require.NoError(t, err)
	assert.Equal(t, state.StatusReserved, got.Status)
	assert.Equal(t, "ewittman", got.Owner)
}

type actionExecutor interface {
	ExecuteAction(id string, action state.Action, user string, payload map[string]string) (*state.Task, error)
}

func TestClient_ExecuteActionErrorsMatchEngine(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		action  state.Action
		wantErr error
	}{
		{
			name:    "Not Found",
			id:      "nope",
			action:  state.ActionClaim,
			wantErr: state.ErrTaskNotFound,
		},
		{
			name:    "Not Allowed",
			id:      "0",
			action:  state.ActionSave,
			wantErr: state.ErrActionNotAllowed,
		},
		{
			name:    "Not Allowed In Status",
			id:      "0",
			action:  state.ActionComplete,
			wantErr: state.ErrActionNotAllowed,
		},
		{
			name:    "Unknown Action",
			id:      "0",
			action:  state.Action("frobnicate"),
			wantErr: state.ErrUnsupportedAction,
		},
	}

	clients := map[string]func(e *engine.Engine) actionExecutor{
		"Local": func(e *engine.Engine) actionExecutor { return e },
		"RPC":   func(e *engine.Engine) actionExecutor { return server.NewClient(e) },
	}

	for _, tt := range tests {
		for clientName, clientFn := range clients {
			tt := tt
			clientFn := clientFn
			t.Run(tt.name+" "+clientName, func(t *testing.T) {
				_, e := newClient(t)
				c := clientFn(e)

				_, err := c.ExecuteAction(tt.id, tt.action, "", nil)

				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				got, err := e.GetTask("0")
				require.NoError(t, err)
				assert.Equal(t, state.StatusReady, got.Status)
			})
		}
	}
}
