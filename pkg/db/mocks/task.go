package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
)

type TaskInterface struct {
	Impl struct {
		Enqueue    func(context.Context, string, string, []kdb.TableRef) ([]kdb.ExtractionTask, error)
		PickAndRun func(context.Context, func(kdb.ExtractionTask) error) (bool, error)
		Find       func(context.Context, string) ([]kdb.ExtractionTask, error)
	}
	Calls struct {
		Enqueue CallLog[struct {
			ProjectId    string
			ConnectionId string
			Refs         []kdb.TableRef
		}]
		PickAndRun CallLog[struct{}]
		Find       CallLog[struct{ ProjectId string }]
	}
}

func NewTaskInterface() *TaskInterface {
	return &TaskInterface{}
}

var _ kdb.TaskInterface = &TaskInterface{}

func (ti *TaskInterface) Enqueue(ctx context.Context, projectId string, connectionId string, refs []kdb.TableRef) ([]kdb.ExtractionTask, error) {
	ti.Calls.Enqueue = append(ti.Calls.Enqueue, struct {
		ProjectId    string
		ConnectionId string
		Refs         []kdb.TableRef
	}{ProjectId: projectId, ConnectionId: connectionId, Refs: refs})
	if ti.Impl.Enqueue != nil {
		return ti.Impl.Enqueue(ctx, projectId, connectionId, refs)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TaskInterface) PickAndRun(ctx context.Context, f func(kdb.ExtractionTask) error) (bool, error) {
	ti.Calls.PickAndRun = append(ti.Calls.PickAndRun, struct{}{})
	if ti.Impl.PickAndRun != nil {
		return ti.Impl.PickAndRun(ctx, f)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TaskInterface) Find(ctx context.Context, projectId string) ([]kdb.ExtractionTask, error) {
	ti.Calls.Find = append(ti.Calls.Find, struct{ ProjectId string }{ProjectId: projectId})
	if ti.Impl.Find != nil {
		return ti.Impl.Find(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}
