package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/client/resource"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
)

var (
	errNotLoggedIn = errors.New("not logged in")
	errUsage       = errors.New("bad usage")
	errUnavailable = errors.New("command unavailable")
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args ...string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, s := range args {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// first takes the current snapshot of s and closes it.
func first[T any](ctx context.Context, s *watch.Stream[T]) (T, error) {
	defer s.Close()
	var zero T
	select {
	case v, ok := <-s.C:
		if !ok {
			return zero, ctx.Err()
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// report runs fn and prints its outcome: show on success, the classified
// error message otherwise.
func report[T any](ctx context.Context, a *App, fallback string, fn func(ctx context.Context) (T, error), show func(T)) error {
	var failed error
	for r := range resource.Run(ctx, fallback, func(ctx context.Context) (T, error) {
		v, err := fn(ctx)
		failed = err
		return v, err
	}) {
		resource.Match(r,
			func() struct{} { return struct{}{} },
			func(v T) struct{} { show(v); return struct{}{} },
			func(msg string) struct{} { fmt.Fprintln(a.out, "Error:", msg); return struct{}{} },
		)
	}
	return failed
}

// refreshed runs a remote refresh before a listing. A failure is shown but
// the cached rows are still listed.
func (a *App) refreshed(ctx context.Context, refresh func(ctx context.Context) error) {
	if err := refresh(ctx); err != nil {
		fmt.Fprintf(a.out, "Showing cached data (%s)\n", resource.Message(err, "refresh failed"))
	}
}

func (a *App) invalid(err error) error {
	fmt.Fprintln(a.out, "Error:", err)
	return err
}

func (a *App) unavailable(what string) error {
	fmt.Fprintf(a.out, "%s are not available\n", what)
	return errUnavailable
}

func (a *App) printDeleted(what string) func(bool) {
	return func(removed bool) {
		if removed {
			fmt.Fprintf(a.out, "%s deleted\n", what)
		} else {
			fmt.Fprintf(a.out, "%s was already gone\n", what)
		}
	}
}
