package watch

import (
	"context"
	"reflect"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// Stream delivers successive snapshots on C. C holds at most one pending
// snapshot; a slow reader receives the newest one. C is closed once the
// stream stops, either through Close or through its context.
type Stream[T any] struct {
	C      <-chan T
	cancel context.CancelFunc
	done   chan struct{}
}

// Close unsubscribes and waits for the loader goroutine to exit.
func (s *Stream[T]) Close() {
	s.cancel()
	<-s.done
}

// Done is closed after the stream has stopped.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}

// LoadFunc reads one snapshot from the cache.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Watch emits load's result now and after every publish on topics. A load
// error is logged and replaced by fallback, so the stream itself never fails.
// Consecutive equal snapshots are emitted once.
func Watch[T any](ctx context.Context, hub *Hub, log logging.Logger, load LoadFunc[T], fallback T, topics ...Topic) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan T, 1)
	done := make(chan struct{})

	// Subscribe before the first load so no publish between them is missed.
	sub, unsubscribe := hub.subscribe(topics)

	go func() {
		defer close(done)
		defer close(out)
		defer unsubscribe()

		var last T
		emitted := false
		for {
			v, err := load(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Warn(ctx, "cache read failed", "topics", topics, "error", err)
				v = fallback
			}
			if !emitted || !reflect.DeepEqual(v, last) {
				replaceLatest(out, v)
				last = v
				emitted = true
			}

			select {
			case <-ctx.Done():
				return
			case <-sub.notify:
			}
		}
	}()

	return &Stream[T]{C: out, cancel: cancel, done: done}
}

// replaceLatest sends v, dropping a snapshot the reader has not taken yet.
// Only the stream goroutine sends on out, so the loop ends after at most one
// drop.
func replaceLatest[T any](out chan T, v T) {
	for {
		select {
		case out <- v:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}

// Map derives a stream by applying f to every snapshot of src. The derived
// stream owns src and closes it when it stops.
func Map[In, Out any](ctx context.Context, src *Stream[In], f func(In) Out) *Stream[Out] {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Out, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)
		defer src.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-src.C:
				if !ok {
					return
				}
				replaceLatest(out, f(v))
			}
		}
	}()

	return &Stream[Out]{C: out, cancel: cancel, done: done}
}
