package mailer

import (
	"context"
	"errors"
	"time"
)

// Future is the pending result of an asynchronous send.
type Future struct {
	err  error
	done chan struct{}
}

// completed returns a Future that already holds err.
func completed(err error) *Future {
	f := &Future{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// goAsync runs fn on its own goroutine.
func goAsync(ctx context.Context, fn func(context.Context) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Skip the work entirely when the caller already gave up.
		if err := ctx.Err(); err != nil {
			f.err = errors.Join(ErrSendFailed, err)
			return
		}
		f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the send completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout is like Await but gives up after timeout with ErrAwaitTimeout.
// The send itself keeps running; cancel its context to stop it.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.err
	case <-timer.C:
		return ErrAwaitTimeout
	}
}

// Done returns a channel closed when the send completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the send has completed, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// AwaitAll waits for every future and joins their errors.
func AwaitAll(futures ...*Future) error {
	errs := make([]error, 0, len(futures))
	for _, f := range futures {
		if err := f.Await(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
