package fsm_test

import (
	"testing"
	"time"

	"github.com/nrwiersma/inbox/engine/internal/fsm"
	"github.com/nrwiersma/inbox/engine/internal/rpc"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSM_InsertTask(t *testing.T) {
	due := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	f, err := fsm.New()
	require.NoError(t, err)

	resp, err := f.Apply(rpc.InsertTaskRequestType, &rpc.InsertTaskRequest{
		Task: state.Task{ID: "0", Name: "Task 0", Status: state.StatusReady, DueDate: due},
	})

	require.NoError(t, err)
	require.IsType(t, &state.Task{}, resp)
	task := resp.(*state.Task)
	assert.Equal(t, "Task 0", task.Name)
	assert.True(t, due.Equal(task.DueDate))
	assert.Equal(t, []state.Action{state.ActionClaim}, task.AllowedActions)
	assert.Equal(t, uint64(1), task.ModifyIndex)
	assert.Equal(t, uint64(1), f.Index())
}

func TestFSM_InsertTaskDuplicate(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)
	req := &rpc.InsertTaskRequest{Task: state.Task{ID: "0", Status: state.StatusReady}}
	_, err = f.Apply(rpc.InsertTaskRequestType, req)
	require.NoError(t, err)

	resp, err := f.Apply(rpc.InsertTaskRequestType, req)

	require.NoError(t, err)
	require.Implements(t, (*error)(nil), resp)
	assert.True(t, errors.Is(resp.(error), state.ErrDuplicateTask))
}

func TestFSM_Seed(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)

	resp, err := f.Apply(rpc.SeedRequestType, &rpc.SeedRequest{Tasks: []state.Task{
		{ID: "0", Status: state.StatusReady},
		{ID: "1", Status: state.StatusReserved, Owner: "ewittman"},
	}})

	require.NoError(t, err)
	assert.Nil(t, resp)
	tasks, err := f.Store().Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "ewittman", tasks[1].Owner)
}

func TestFSM_SeedIsAllOrNothing(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)

	resp, err := f.Apply(rpc.SeedRequestType, &rpc.SeedRequest{Tasks: []state.Task{
		{ID: "0", Status: state.StatusReady},
		{ID: "0", Status: state.StatusReady},
	}})

	require.NoError(t, err)
	require.Implements(t, (*error)(nil), resp)
	assert.True(t, errors.Is(resp.(error), state.ErrDuplicateTask))
	tasks, err := f.Store().Tasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 0)
}

func TestFSM_UpdateTask(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)
	_, err = f.Apply(rpc.InsertTaskRequestType, &rpc.InsertTaskRequest{Task: state.Task{ID: "0", Status: state.StatusReady}})
	require.NoError(t, err)
	desc := "updated"

	resp, err := f.Apply(rpc.UpdateTaskRequestType, &rpc.UpdateTaskRequest{ID: "0", Description: &desc})

	require.NoError(t, err)
	assert.Equal(t, true, resp)
	task, err := f.Store().Task("0")
	require.NoError(t, err)
	assert.Equal(t, "updated", task.Description)
}

func TestFSM_ExecuteAction(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)
	_, err = f.Apply(rpc.InsertTaskRequestType, &rpc.InsertTaskRequest{Task: state.Task{ID: "0", Status: state.StatusReady}})
	require.NoError(t, err)
	payload := map[string]string{"result": "ok"}

	resp, err := f.Apply(rpc.ExecuteActionRequestType, &rpc.ExecuteActionRequest{
		ID:      "0",
		Action:  state.ActionClaim,
		User:    "currentuser",
		Payload: payload,
	})

	require.NoError(t, err)
	require.IsType(t, &state.Task{}, resp)
	task := resp.(*state.Task)
	assert.Equal(t, state.StatusReserved, task.Status)
	assert.Equal(t, "currentuser", task.Owner)
	assert.Equal(t, uint64(2), task.ModifyIndex)
}

func TestFSM_UnknownMessageType(t *testing.T) {
	f, err := fsm.New()
	require.NoError(t, err)

	_, err = f.Apply(rpc.MessageType(42), struct{}{})

	assert.True(t, errors.Is(err, fsm.ErrUnknownMessageType))
	assert.Equal(t, uint64(0), f.Index())
}
