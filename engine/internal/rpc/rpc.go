package rpc

import (
	"bytes"

	"github.com/hashicorp/go-msgpack/codec"
	"github.com/pkg/errors"
)

// MessageType is a command message type.
type MessageType int8

// Command message types.
const (
	InsertTaskRequestType MessageType = iota
	UpdateTaskRequestType
	ExecuteActionRequestType
	SeedRequestType
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case InsertTaskRequestType:
		return "insert-task"
	case UpdateTaskRequestType:
		return "update-task"
	case ExecuteActionRequestType:
		return "execute-action"
	case SeedRequestType:
		return "seed"
	default:
		return "unknown"
	}
}

// ErrShortCommand is returned when a command is missing its type header.
var ErrShortCommand = errors.New("rpc: command too short")

var handle = &codec.MsgpackHandle{}

// Encode returns the command prefixed with its message type.
func Encode(t MessageType, cmd interface{}) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{byte(t)})
	if err := codec.NewEncoder(buf, handle).Encode(cmd); err != nil {
		return nil, errors.Wrapf(err, "rpc: error encoding %s command", t)
	}
	return buf.Bytes(), nil
}

// Split separates the message type from the command body.
func Split(buf []byte) (MessageType, []byte, error) {
	if len(buf) < 1 {
		return 0, nil, ErrShortCommand
	}
	return MessageType(buf[0]), buf[1:], nil
}

// Decode decodes a command body.
func Decode(body []byte, cmd interface{}) error {
	return codec.NewDecoderBytes(body, handle).Decode(cmd)
}
