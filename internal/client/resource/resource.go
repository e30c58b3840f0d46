// Package resource wraps the progress of an operation as Loading, Success
// or Error.
package resource

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
)

type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Resource is one of the three states. Build it with Loading, Success or
// Failure and inspect it with Match.
type Resource[T any] struct {
	state   State
	data    T
	message string
}

func Loading[T any]() Resource[T] {
	return Resource[T]{state: StateLoading}
}

func Success[T any](data T) Resource[T] {
	return Resource[T]{state: StateSuccess, data: data}
}

func Failure[T any](message string) Resource[T] {
	return Resource[T]{state: StateError, message: message}
}

// FromError classifies err into a Failure.
func FromError[T any](err error, fallback string) Resource[T] {
	return Failure[T](Message(err, fallback))
}

func (r Resource[T]) State() State { return r.state }

// IsTerminal reports whether r is Success or Error.
func (r Resource[T]) IsTerminal() bool { return r.state != StateLoading }

// Match calls exactly one handler, chosen by the state of r. All three
// handlers are required.
func Match[T, R any](r Resource[T], onLoading func() R, onSuccess func(T) R, onError func(string) R) R {
	switch r.state {
	case StateSuccess:
		return onSuccess(r.data)
	case StateError:
		return onError(r.message)
	default:
		return onLoading()
	}
}

// Run executes fn in its own goroutine. The returned channel yields Loading,
// then Success or an Error built with Message, and is then closed.
func Run[T any](ctx context.Context, fallback string, fn func(ctx context.Context) (T, error)) <-chan Resource[T] {
	out := make(chan Resource[T], 2)
	out <- Loading[T]()

	go func() {
		defer close(out)
		v, err := fn(ctx)
		if err != nil {
			out <- FromError[T](err, fallback)
			return
		}
		out <- Success(v)
	}()
	return out
}

// Message translates err into user-facing text.
//
//	404  Resource not found
//	403  Permission denied
//	409  User already belongs to the workspace
//	5xx  Server error, please try again later
//	timeout  Request timed out, please check your connection
//	401  Session expired, please log in again
//
// Any other error yields its own text, or fallback when that is blank.
func Message(err error, fallback string) string {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, remote.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, remote.ErrPermissionDenied):
		return "Permission denied"
	case errors.Is(err, remote.ErrConflict):
		return "User already belongs to the workspace"
	case errors.Is(err, remote.ErrServer):
		return "Server error, please try again later"
	case errors.Is(err, remote.ErrTimeout):
		return "Request timed out, please check your connection"
	case errors.Is(err, remote.ErrUnauthorized):
		return "Session expired, please log in again"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
