// Package memcodec implements a net/rpc server codec that passes
// requests and replies in memory, without serialisation.
package memcodec

import (
	"errors"
	"fmt"
	"net/rpc"
	"reflect"
)

// Codec is an in memory net/rpc codec serving a single request.
type Codec struct {
	// Error is the error returned by the rpc response.
	Error error

	method string
	args   interface{}
	reply  interface{}
}

// New returns an in memory codec for a single call.
func New(method string, args, reply interface{}) *Codec {
	return &Codec{
		method: method,
		args:   args,
		reply:  reply,
	}
}

// ReadRequestHeader reads the request header.
func (c *Codec) ReadRequestHeader(req *rpc.Request) error {
	if c.method == "" {
		return errors.New("memcodec: method cannot be empty")
	}

	req.ServiceMethod = c.method
	return nil
}

// ReadRequestBody copies the call arguments into args.
func (c *Codec) ReadRequestBody(args interface{}) error {
	if args == nil {
		return errors.New("memcodec: args cannot be nil")
	}

	return assign(args, c.args)
}

// WriteResponse copies the reply into the call reply, or records the
// response error.
func (c *Codec) WriteResponse(resp *rpc.Response, reply interface{}) error {
	if resp.Error != "" {
		c.Error = errors.New(resp.Error)
		return nil
	}

	return assign(c.reply, reply)
}

// Close closes the codec.
func (c *Codec) Close() error {
	return nil
}

func assign(dst, src interface{}) error {
	d := reflect.Indirect(reflect.ValueOf(dst))
	s := reflect.Indirect(reflect.ValueOf(src))
	if !d.CanSet() {
		return fmt.Errorf("memcodec: cannot assign to %T", dst)
	}
	if s.Type() != d.Type() {
		return fmt.Errorf("memcodec: cannot assign %T to %T", src, dst)
	}

	d.Set(s)
	return nil
}
