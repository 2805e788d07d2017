package projects

import (
	"github.com/nitikab23/autoai-api-types/internal/utils/cmp"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
)

// Spec is a request to create a new project.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SkipEnrich  bool   `json:"skipEnrich,omitempty"`
}

type Summary struct {
	ProjectId       string          `json:"projectId"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	SkipEnrich      bool            `json:"skipEnrich"`
	DataSourceCount int             `json:"dataSourcesCount"`
	CreatedAt       rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt       rfctime.RFC3339 `json:"updatedAt"`
}

func (s Summary) Equal(o Summary) bool {
	return s.ProjectId == o.ProjectId &&
		s.Name == o.Name &&
		s.Description == o.Description &&
		s.SkipEnrich == o.SkipEnrich &&
		s.DataSourceCount == o.DataSourceCount &&
		s.CreatedAt.Equal(o.CreatedAt) &&
		s.UpdatedAt.Equal(o.UpdatedAt)
}

type Detail struct {
	Summary
	DataSources []DataSource `json:"dataSources"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Summary.Equal(o.Summary) &&
		cmp.SliceEqualUnordered(d.DataSources, o.DataSources)
}

// DataSource is a catalog/schema (and a selection of its tables)
// registered to a project.
type DataSource struct {
	DataSourceId string          `json:"dataSourceId"`
	ConnectionId string          `json:"connectionId"`
	Catalog      string          `json:"catalog"`
	Schema       string          `json:"schema"`
	Tables       []string        `json:"tables"`
	CreatedAt    rfctime.RFC3339 `json:"createdAt"`
}

func (d DataSource) Equal(o DataSource) bool {
	return d.DataSourceId == o.DataSourceId &&
		d.ConnectionId == o.ConnectionId &&
		d.Catalog == o.Catalog &&
		d.Schema == o.Schema &&
		cmp.SliceEq(d.Tables, o.Tables) &&
		d.CreatedAt.Equal(o.CreatedAt)
}

// DataSourceSpec is a request to register a data source to a project.
//
// When Tables is empty, every table found in the schema is registered.
type DataSourceSpec struct {
	ConnectionId string   `json:"connectionId"`
	Catalog      string   `json:"catalog"`
	Schema       string   `json:"schema"`
	Tables       []string `json:"tables,omitempty"`
}

// DataSourceResult reports which tables were queued for metadata
// extraction after a data source registration. Tables that already had
// a pending or running task are listed as skipped.
type DataSourceResult struct {
	DataSourceId string   `json:"dataSourceId"`
	Queued       []string `json:"queued"`
	Skipped      []string `json:"skipped"`
}

func (r DataSourceResult) Equal(o DataSourceResult) bool {
	return r.DataSourceId == o.DataSourceId &&
		cmp.SliceEq(r.Queued, o.Queued) &&
		cmp.SliceEq(r.Skipped, o.Skipped)
}
