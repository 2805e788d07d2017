package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
)

type ProjectInterface struct {
	Impl struct {
		Register      func(context.Context, kdb.ProjectParam) (kdb.Project, error)
		Get           func(context.Context, []string) (map[string]kdb.Project, error)
		Find          func(context.Context) ([]string, error)
		Delete        func(context.Context, string) error
		AddDataSource func(context.Context, string, kdb.DataSourceParam) (kdb.DataSource, error)
	}
	Calls struct {
		Register      CallLog[kdb.ProjectParam]
		Get           CallLog[struct{ ProjectId []string }]
		Find          CallLog[struct{}]
		Delete        CallLog[struct{ ProjectId string }]
		AddDataSource CallLog[struct {
			ProjectId string
			Param     kdb.DataSourceParam
		}]
	}
}

func NewProjectInterface() *ProjectInterface {
	return &ProjectInterface{}
}

var _ kdb.ProjectInterface = &ProjectInterface{}

func (pi *ProjectInterface) Register(ctx context.Context, param kdb.ProjectParam) (kdb.Project, error) {
	pi.Calls.Register = append(pi.Calls.Register, param)
	if pi.Impl.Register != nil {
		return pi.Impl.Register(ctx, param)
	}
	panic(errors.New("it should not be called"))
}

func (pi *ProjectInterface) Get(ctx context.Context, projectIds []string) (map[string]kdb.Project, error) {
	pi.Calls.Get = append(pi.Calls.Get, struct{ ProjectId []string }{ProjectId: projectIds})
	if pi.Impl.Get != nil {
		return pi.Impl.Get(ctx, projectIds)
	}
	panic(errors.New("it should not be called"))
}

func (pi *ProjectInterface) Find(ctx context.Context) ([]string, error) {
	pi.Calls.Find = append(pi.Calls.Find, struct{}{})
	if pi.Impl.Find != nil {
		return pi.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (pi *ProjectInterface) Delete(ctx context.Context, projectId string) error {
	pi.Calls.Delete = append(pi.Calls.Delete, struct{ ProjectId string }{ProjectId: projectId})
	if pi.Impl.Delete != nil {
		return pi.Impl.Delete(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}

func (pi *ProjectInterface) AddDataSource(ctx context.Context, projectId string, param kdb.DataSourceParam) (kdb.DataSource, error) {
	pi.Calls.AddDataSource = append(pi.Calls.AddDataSource, struct {
		ProjectId string
		Param     kdb.DataSourceParam
	}{ProjectId: projectId, Param: param})
	if pi.Impl.AddDataSource != nil {
		return pi.Impl.AddDataSource(ctx, projectId, param)
	}
	panic(errors.New("it should not be called"))
}
