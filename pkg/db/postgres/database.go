package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/db/postgres/connection"
	"github.com/nitikab23/autoai/pkg/db/postgres/metadata"
	kpool "github.com/nitikab23/autoai/pkg/db/postgres/pool"
	"github.com/nitikab23/autoai/pkg/db/postgres/project"
	"github.com/nitikab23/autoai/pkg/db/postgres/schema"
	"github.com/nitikab23/autoai/pkg/db/postgres/task"
)

type autoaiDBPostgres struct {
	pool *pgxpool.Pool

	connection kdb.ConnectionInterface
	project    kdb.ProjectInterface
	metadata   kdb.MetadataInterface
	task       kdb.TaskInterface
	schema     kdb.SchemaInterface
}

var _ kdb.AutoAIDatabase = &autoaiDBPostgres{}

type Config struct {
	schemaRepository string
}

type Option func(*Config) *Config

// WithSchemaRepository points the database at a directory of versioned
// DDL files. Without it, schema upgrades are not available.
func WithSchemaRepository(path string) Option {
	return func(c *Config) *Config {
		c.schemaRepository = path
		return c
	}
}

// New connects to PostgreSQL at url and returns the database facade.
func New(ctx context.Context, url string, options ...Option) (kdb.AutoAIDatabase, error) {
	conf := &Config{}
	for _, opt := range options {
		conf = opt(conf)
	}

	pgpool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	pool := kpool.Wrap(pgpool)

	var sch kdb.SchemaInterface = schema.Null()
	if conf.schemaRepository != "" {
		sch = schema.New(pool, conf.schemaRepository)
	}

	return &autoaiDBPostgres{
		pool:       pgpool,
		connection: connection.New(pool),
		project:    project.New(pool),
		metadata:   metadata.New(pool),
		task:       task.New(pool),
		schema:     sch,
	}, nil
}

func (d *autoaiDBPostgres) Connections() kdb.ConnectionInterface {
	return d.connection
}

func (d *autoaiDBPostgres) Projects() kdb.ProjectInterface {
	return d.project
}

func (d *autoaiDBPostgres) Metadata() kdb.MetadataInterface {
	return d.metadata
}

func (d *autoaiDBPostgres) Tasks() kdb.TaskInterface {
	return d.task
}

func (d *autoaiDBPostgres) Schema() kdb.SchemaInterface {
	return d.schema
}

func (d *autoaiDBPostgres) Close() error {
	d.pool.Close()
	return nil
}
