package metadata

import (
	"fmt"

	"github.com/nitikab23/autoai-api-types/internal/utils/cmp"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
	"github.com/nitikab23/autoai-api-types/projects"
)

// TableRef points a table through Trino.
type TableRef struct {
	Catalog string `json:"catalog"`
	Schema  string `json:"schema"`
	Table   string `json:"table"`
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.Catalog, t.Schema, t.Table)
}

func (t TableRef) Equal(o TableRef) bool {
	return t == o
}

type Column struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Nullable     bool     `json:"nullable"`
	Description  string   `json:"description,omitempty"`
	SampleValues []string `json:"sampleValues,omitempty"`
}

func (c Column) Equal(o Column) bool {
	return c.Name == o.Name &&
		c.Type == o.Type &&
		c.Nullable == o.Nullable &&
		c.Description == o.Description &&
		cmp.SliceEq(c.SampleValues, o.SampleValues)
}

// Detail is the full stored metadata of a table.
//
// Sample values are stringified on extraction; nil means the cell was NULL.
type Detail struct {
	TableRef
	Columns     []Column             `json:"columns"`
	SampleData  []map[string]*string `json:"sampleData,omitempty"`
	RowCount    *int64               `json:"rowCount,omitempty"`
	Description string               `json:"description,omitempty"`
	ExtractedAt rfctime.RFC3339      `json:"extractedAt"`
}

func (d Detail) Equal(o Detail) bool {
	if d.RowCount == nil != (o.RowCount == nil) {
		return false
	}
	if d.RowCount != nil && *d.RowCount != *o.RowCount {
		return false
	}
	return d.TableRef.Equal(o.TableRef) &&
		cmp.SliceEqEq(d.Columns, o.Columns) &&
		len(d.SampleData) == len(o.SampleData) &&
		d.Description == o.Description &&
		d.ExtractedAt.Equal(o.ExtractedAt)
}

// Summary is Detail without sample rows, used in project-wide listings.
type Summary struct {
	TableRef
	Columns     []Column        `json:"columns"`
	RowCount    *int64          `json:"rowCount,omitempty"`
	Description string          `json:"description,omitempty"`
	ExtractedAt rfctime.RFC3339 `json:"extractedAt"`
}

func (s Summary) Equal(o Summary) bool {
	if s.RowCount == nil != (o.RowCount == nil) {
		return false
	}
	if s.RowCount != nil && *s.RowCount != *o.RowCount {
		return false
	}
	return s.TableRef.Equal(o.TableRef) &&
		cmp.SliceEqEq(s.Columns, o.Columns) &&
		s.Description == o.Description &&
		s.ExtractedAt.Equal(o.ExtractedAt)
}

// ProjectMetadata is the consolidated metadata of a project.
//
// Tables is keyed by "catalog.schema.table".
type ProjectMetadata struct {
	ProjectId   string                `json:"projectId"`
	ProjectName string                `json:"projectName"`
	Description string                `json:"description,omitempty"`
	DataSources []projects.DataSource `json:"dataSources"`
	Tables      map[string]Summary    `json:"tables"`
}

// BatchSpec requests synchronous extraction of several tables.
type BatchSpec struct {
	ConnectionId string     `json:"connectionId"`
	Tables       []TableRef `json:"tables"`
}

type FailedTable struct {
	TableRef
	Error string `json:"error"`
}

func (f FailedTable) Equal(o FailedTable) bool {
	return f.TableRef.Equal(o.TableRef) && f.Error == o.Error
}

type BatchResult struct {
	Successful     []Detail      `json:"successful"`
	Failed         []FailedTable `json:"failed"`
	TotalProcessed int           `json:"totalProcessed"`
}
