package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
)

// Database bundles the entity mocks as a kdb.AutoAIDatabase.
type Database struct {
	connection *ConnectionInterface
	project    *ProjectInterface
	metadata   *MetadataInterface
	task       *TaskInterface
	schema     *SchemaInterface
}

func NewDatabase() *Database {
	return &Database{
		connection: NewConnectionInterface(),
		project:    NewProjectInterface(),
		metadata:   NewMetadataInterface(),
		task:       NewTaskInterface(),
		schema:     NewSchemaInterface(),
	}
}

var _ kdb.AutoAIDatabase = &Database{}

func (d *Database) Connections() kdb.ConnectionInterface { return d.connection }
func (d *Database) Projects() kdb.ProjectInterface       { return d.project }
func (d *Database) Metadata() kdb.MetadataInterface      { return d.metadata }
func (d *Database) Tasks() kdb.TaskInterface             { return d.task }
func (d *Database) Schema() kdb.SchemaInterface          { return d.schema }
func (d *Database) Close() error                         { return nil }

// typed accessors, to reach Impl and Calls in tests.

func (d *Database) ConnectionMock() *ConnectionInterface { return d.connection }
func (d *Database) ProjectMock() *ProjectInterface       { return d.project }
func (d *Database) MetadataMock() *MetadataInterface     { return d.metadata }
func (d *Database) TaskMock() *TaskInterface             { return d.task }
func (d *Database) SchemaMock() *SchemaInterface         { return d.schema }

type SchemaInterface struct {
	Impl struct {
		Version func(context.Context) (int, error)
		Upgrade func(context.Context) error
		Context func(context.Context) (context.Context, context.CancelFunc)
	}
	Calls struct {
		Version CallLog[struct{}]
		Upgrade CallLog[struct{}]
		Context CallLog[struct{}]
	}
}

func NewSchemaInterface() *SchemaInterface {
	return &SchemaInterface{}
}

var _ kdb.SchemaInterface = &SchemaInterface{}

func (si *SchemaInterface) Version(ctx context.Context) (int, error) {
	si.Calls.Version = append(si.Calls.Version, struct{}{})
	if si.Impl.Version != nil {
		return si.Impl.Version(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (si *SchemaInterface) Upgrade(ctx context.Context) error {
	si.Calls.Upgrade = append(si.Calls.Upgrade, struct{}{})
	if si.Impl.Upgrade != nil {
		return si.Impl.Upgrade(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (si *SchemaInterface) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	si.Calls.Context = append(si.Calls.Context, struct{}{})
	if si.Impl.Context != nil {
		return si.Impl.Context(ctx)
	}
	return ctx, func() {}
}
