package fsm

import (
	"fmt"

	"github.com/nrwiersma/inbox/engine/internal/rpc"
	"github.com/nrwiersma/inbox/engine/state"
)

func (f *FSM) handleInsertTaskRequest(buf []byte, idx uint64) interface{} {
	var req rpc.InsertTaskRequest
	if err := rpc.Decode(buf, &req); err != nil {
		panic(fmt.Errorf("failed to decode request: %v", err))
	}

	if err := f.store.InsertTask(idx, &req.Task); err != nil {
		return err
	}

	task, err := f.store.Task(req.Task.ID)
	if err != nil {
		return err
	}
	return task
}

func (f *FSM) handleSeedRequest(buf []byte, idx uint64) interface{} {
	var req rpc.SeedRequest
	if err := rpc.Decode(buf, &req); err != nil {
		panic(fmt.Errorf("failed to decode request: %v", err))
	}

	restore := f.store.Restore(idx)
	for i := range req.Tasks {
		if err := restore.Task(&req.Tasks[i]); err != nil {
			restore.Abort()
			return err
		}
	}
	if err := restore.Commit(); err != nil {
		restore.Abort()
		return err
	}
	return nil
}

func (f *FSM) handleUpdateTaskRequest(buf []byte, idx uint64) interface{} {
	var req rpc.UpdateTaskRequest
	if err := rpc.Decode(buf, &req); err != nil {
		panic(fmt.Errorf("failed to decode request: %v", err))
	}

	ok, err := f.store.UpdateTask(idx, req.ID, state.TaskUpdate{
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return ok
}

func (f *FSM) handleExecuteActionRequest(buf []byte, idx uint64) interface{} {
	var req rpc.ExecuteActionRequest
	if err := rpc.Decode(buf, &req); err != nil {
		panic(fmt.Errorf("failed to decode request: %v", err))
	}

	task, err := f.store.ExecuteAction(idx, req.ID, req.Action, req.User, req.Payload)
	if err != nil {
		return err
	}
	return task
}
