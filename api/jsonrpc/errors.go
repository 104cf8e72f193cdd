package jsonrpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/hedisam/tonrpc/internal/ton"
)

// Wire error codes. Every failure is reported inside an ok=false envelope carrying one of these.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeUnavailable    = -32001
	CodeNotFound       = -32004
)

// Err is an error with a json-rpc error code, written as the envelope's error object.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrf(code int, format string, args ...any) *Err {
	return &Err{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Err) Error() string {
	return e.Message
}

// toErr classifies any error surfaced while serving a request.
func toErr(err error) *Err {
	var rpcErr *Err
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, ton.ErrNotFound):
		return &Err{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, ton.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return &Err{Code: CodeUnavailable, Message: err.Error()}
	default:
		return &Err{Code: CodeInternal, Message: err.Error()}
	}
}
