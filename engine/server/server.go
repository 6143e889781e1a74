package server

import (
	"net/rpc"

	"github.com/nrwiersma/inbox/engine/inbox"
	"github.com/nrwiersma/inbox/engine/state"
	"github.com/nrwiersma/inbox/pkg/memcodec"
)

// Delegate represents an object that implements the task operations.
type Delegate interface {
	ListTasks(q inbox.Query) (*inbox.Result, error)
	GetTask(id string) (*state.Task, error)
	CreateTask(task *state.Task) (*state.Task, error)
	UpdateTask(id string, upd state.TaskUpdate) error
	ExecuteAction(id string, action state.Action, user string, payload map[string]string) (*state.Task, error)
}

// Server is an RPC server.
type Server struct {
	delegate Delegate

	server *rpc.Server
}

// New returns an RPC server.
func New(delegate Delegate) *Server {
	srv := &Server{
		delegate: delegate,
		server:   rpc.NewServer(),
	}

	_ = srv.server.Register(&Tasks{srv: srv})

	return srv
}

// ServeRequest serves a single request with the given codec.
func (s *Server) ServeRequest(codec rpc.ServerCodec) error {
	return s.server.ServeRequest(codec)
}

// Call makes an in memory call to the server.
func (s *Server) Call(method string, req, resp interface{}) error {
	codec := memcodec.New(method, req, resp)
	if err := s.server.ServeRequest(codec); err != nil {
		return err
	}
	return codec.Error
}
