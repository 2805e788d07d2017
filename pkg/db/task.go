package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownTaskStatus = errors.New("unknown task status")

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskRunning TaskStatus = "running"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

func (s TaskStatus) String() string {
	return string(s)
}

func AsTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskPending, TaskRunning, TaskDone, TaskFailed:
		return TaskStatus(s), nil
	default:
		return TaskStatus(s), fmt.Errorf("%w: %s", ErrUnknownTaskStatus, s)
	}
}

// ExtractionTask is a queued request to extract metadata of one table.
type ExtractionTask struct {
	TaskId       string
	ProjectId    string
	ConnectionId string
	TableRef

	Status    TaskStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskInterface interface {
	// Enqueue registers pending tasks for the tables.
	//
	// Tables already having a pending or running task in the same
	// project are skipped. It returns the tasks actually created.
	Enqueue(ctx context.Context, projectId string, connectionId string, refs []TableRef) ([]ExtractionTask, error)

	// PickAndRun pops one pending task, marks it running, and applies f.
	//
	// The task row is locked while f runs; concurrent workers skip it.
	// When f returns nil, the task is marked done.
	// When f returns an error, the task is marked failed and the error
	// text is recorded; PickAndRun itself returns nil in that case.
	//
	// The first return value is false when no pending task was found.
	PickAndRun(ctx context.Context, f func(ExtractionTask) error) (bool, error)

	// Find returns tasks of a project, newest first.
	Find(ctx context.Context, projectId string) ([]ExtractionTask, error)
}
