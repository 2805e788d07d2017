// Package loop runs a task over and over until it asks to stop or its
// context is cancelled.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a task run.
//
// The zero value is Continue(0): run again immediately.
type Next struct {
	err      error
	quit     bool
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}
	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Continue schedules the next run after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. err may be nil for a normal stop.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task receives the value of its previous run and returns the next one,
// together with the verdict on whether to keep looping.
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task repeatedly, threading the T value through the runs,
// until task returns Break or ctx is done.
//
// It returns the last T in every case, paired with the Break error,
// or with ctx.Err() when the context ended the loop.
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		lc := &loopConfig{ctx: ctx}
		for _, opt := range options {
			lc = opt(lc)
		}

		v, n := func() (T, Next) {
			if lc.deferred != nil {
				defer lc.deferred()
			}
			return task(lc.ctx, value)
		}()

		if n.err != nil {
			return v, n.err
		}
		if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			// cancellation wins over a fired timer
			if !timer.Stop() {
				<-timer.C
			}
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout bounds each single run of the task.
//
// The deadline is set on the context the task receives, not on the
// loop as a whole.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				if lc.deferred != nil {
					defer lc.deferred()
				}
				cancel()
			},
		}
	}
}
