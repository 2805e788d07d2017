package db

import (
	"context"
	"fmt"
	"time"

	"github.com/nitikab23/autoai/pkg/cmp"
)

// TableRef identifies a table through Trino.
type TableRef struct {
	Catalog string
	Schema  string
	Table   string
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.Catalog, t.Schema, t.Table)
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

// TableMetadata is extracted metadata of a single table in a project.
//
// Columns and SampleData are persisted as jsonb.
// A nil value in a sample row means the cell was NULL.
type TableMetadata struct {
	ProjectId    string
	ConnectionId string
	TableRef

	Columns     []Column
	SampleData  []map[string]*string
	RowCount    *int64
	Description string
	ExtractedAt time.Time
}

func (m TableMetadata) Equal(o TableMetadata) bool {
	if (m.RowCount == nil) != (o.RowCount == nil) {
		return false
	}
	if m.RowCount != nil && *m.RowCount != *o.RowCount {
		return false
	}
	return m.ProjectId == o.ProjectId &&
		m.ConnectionId == o.ConnectionId &&
		m.TableRef == o.TableRef &&
		cmp.SliceEqWith(m.Columns, o.Columns, func(a, b Column) bool { return a.Equal(b) }) &&
		len(m.SampleData) == len(o.SampleData) &&
		m.Description == o.Description &&
		m.ExtractedAt.Equal(o.ExtractedAt)
}

type MetadataInterface interface {
	// Upsert stores metadata, replacing any previous record of the
	// same (project, catalog, schema, table).
	Upsert(ctx context.Context, metadata TableMetadata) error

	// Get retrieves stored metadata of one table.
	//
	// It returns ErrMissing when the table was never extracted.
	Get(ctx context.Context, projectId string, ref TableRef) (TableMetadata, error)

	// GetForProject retrieves all stored metadata of a project,
	// keyed by "catalog.schema.table".
	GetForProject(ctx context.Context, projectId string) (map[string]TableMetadata, error)

	// Delete removes stored metadata of one table.
	Delete(ctx context.Context, projectId string, ref TableRef) error
}
