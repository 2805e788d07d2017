package db

import (
	"context"
	"errors"
)

var (
	// requested record does not exist.
	ErrMissing = errors.New("missing record")

	// a record with the same identity already exists.
	ErrAlreadyExists = errors.New("record already exists")

	// request parameters do not make a valid record.
	ErrInvalidArgument = errors.New("invalid argument")
)

type AutoAIDatabase interface {
	Connections() ConnectionInterface
	Projects() ProjectInterface
	Metadata() MetadataInterface
	Tasks() TaskInterface
	Schema() SchemaInterface
	Close() error
}

type SchemaInterface interface {
	// Version returns the current schema version of the database.
	//
	// 0 means the database has no schema yet.
	Version(ctx context.Context) (int, error)

	// Upgrade applies schema versions newer than the current one.
	Upgrade(ctx context.Context) error

	// Context derives a context which gets cancelled when the database
	// schema is found to be older than the schema repository.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
