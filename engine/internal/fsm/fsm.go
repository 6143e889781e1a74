package fsm

import (
	"fmt"
	"sync"

	"github.com/nrwiersma/inbox/engine/internal/rpc"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/pkg/errors"
)

// ErrUnknownMessageType is returned when a command has no handler.
var ErrUnknownMessageType = errors.New("fsm: unknown message type")

type handler func(buf []byte, index uint64) interface{}

// FSM is a finite state machine that applies commands to the
// state store. Commands are applied one at a time, each with its
// own monotonically increasing index.
type FSM struct {
	mu    sync.Mutex
	index uint64
	store *state.Store

	handlers map[rpc.MessageType]handler
}

// New returns an FSM with an empty state store.
func New() (*FSM, error) {
	store, err := state.New()
	if err != nil {
		return nil, err
	}

	fsm := &FSM{
		store: store,
	}

	fsm.handlers = map[rpc.MessageType]handler{
		rpc.InsertTaskRequestType:    fsm.handleInsertTaskRequest,
		rpc.UpdateTaskRequestType:    fsm.handleUpdateTaskRequest,
		rpc.ExecuteActionRequestType: fsm.handleExecuteActionRequest,
		rpc.SeedRequestType:          fsm.handleSeedRequest,
	}

	return fsm, nil
}

// Store returns the current state store.
func (f *FSM) Store() *state.Store {
	return f.store
}

// Index returns the index of the last applied command.
func (f *FSM) Index() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.index
}

// Apply encodes and applies a command, returning the handler response.
// The command is copied by the encoding, so the caller keeps ownership
// of msg.
func (f *FSM) Apply(t rpc.MessageType, msg interface{}) (interface{}, error) {
	buf, err := rpc.Encode(t, msg)
	if err != nil {
		return nil, errors.Wrap(err, "fsm: failed to encode request")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.apply(buf)
}

func (f *FSM) apply(buf []byte) (interface{}, error) {
	msgType, body, err := rpc.Split(buf)
	if err != nil {
		return nil, err
	}

	fn := f.handlers[msgType]
	if fn == nil {
		return nil, errors.WithMessage(ErrUnknownMessageType, fmt.Sprintf("%d", msgType))
	}

	f.index++
	return fn(body, f.index), nil
}
