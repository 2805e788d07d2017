package recurring

import (
	"context"

	"github.com/nitikab23/autoai/pkg/loop"
)

// Task is one cycle of a recurring job.
//
// The bool return is true when the cycle did something and more backlog
// may remain, false when the queue was empty.
type Task[T any] func(context.Context, T) (T, bool, error)

// a Task which execute rt ('rt()') and p.Next() with the result.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		new, ok, err := rt(ctx, t)
		return new, p.Next(ok, err)
	}
}
