package db

import (
	"context"
	"fmt"
	"time"

	"github.com/nitikab23/autoai/pkg/cmp"
)

type Project struct {
	ProjectId   string
	Name        string
	Description string

	// SkipEnrich suppresses LLM enrichment for the whole project.
	SkipEnrich bool

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DataSources []DataSource
}

func (p Project) Equal(o Project) bool {
	return p.ProjectId == o.ProjectId &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.SkipEnrich == o.SkipEnrich &&
		p.CreatedAt.Equal(o.CreatedAt) &&
		p.UpdatedAt.Equal(o.UpdatedAt) &&
		cmp.SliceEqWith(
			p.DataSources, o.DataSources,
			func(a, b DataSource) bool { return a.Equal(b) },
		)
}

type DataSource struct {
	DataSourceId string
	ConnectionId string
	Catalog      string
	Schema       string
	Tables       []string
	CreatedAt    time.Time
}

func (d DataSource) Equal(o DataSource) bool {
	return d.DataSourceId == o.DataSourceId &&
		d.ConnectionId == o.ConnectionId &&
		d.Catalog == o.Catalog &&
		d.Schema == o.Schema &&
		cmp.SliceEq(d.Tables, o.Tables) &&
		d.CreatedAt.Equal(o.CreatedAt)
}

type ProjectParam struct {
	Name        string
	Description string
	SkipEnrich  bool
}

func (p ProjectParam) Validate() (ProjectParam, error) {
	if p.Name == "" {
		return p, fmt.Errorf(`%w: "name" is required`, ErrInvalidArgument)
	}
	return p, nil
}

type DataSourceParam struct {
	ConnectionId string
	Catalog      string
	Schema       string
	Tables       []string
}

func (p DataSourceParam) Validate() (DataSourceParam, error) {
	if p.ConnectionId == "" {
		return p, fmt.Errorf(`%w: "connectionId" is required`, ErrInvalidArgument)
	}
	if p.Catalog == "" || p.Schema == "" {
		return p, fmt.Errorf(`%w: "catalog" and "schema" are required`, ErrInvalidArgument)
	}
	return p, nil
}

type ProjectInterface interface {
	// Register saves a new project.
	//
	// It returns ErrAlreadyExists when the name is taken.
	Register(ctx context.Context, param ProjectParam) (Project, error)

	// Get retrieves projects (with their data sources) by ids.
	//
	// Ids without a record are just omitted from the result.
	Get(ctx context.Context, projectIds []string) (map[string]Project, error)

	// Find returns ids of all projects, ordered by creation time.
	Find(ctx context.Context) ([]string, error)

	// Delete removes a project with its data sources, stored metadata
	// and extraction tasks.
	//
	// It returns ErrMissing when no such project exists.
	Delete(ctx context.Context, projectId string) error

	// AddDataSource attaches a data source to a project and bumps the
	// project's updated timestamp.
	//
	// It returns ErrMissing when the project does not exist.
	AddDataSource(ctx context.Context, projectId string, param DataSourceParam) (DataSource, error)
}
