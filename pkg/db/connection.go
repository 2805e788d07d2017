package db

import (
	"context"
	"fmt"
	"time"
)

// Connection is a registered Trino coordinator endpoint.
type Connection struct {
	ConnectionId string
	Name         string
	Host         string
	Port         int
	User         string

	// Password may be empty. It is stored but never exposed via the API.
	Password string

	HTTPScheme string

	// Verify controls TLS certificate verification of https sessions.
	// It also gates the reachability check at registration time.
	Verify bool

	// default catalog/schema. may be empty.
	Catalog string
	Schema  string

	CreatedAt time.Time
}

func (c Connection) Equal(o Connection) bool {
	return c.ConnectionId == o.ConnectionId &&
		c.Name == o.Name &&
		c.Host == o.Host &&
		c.Port == o.Port &&
		c.User == o.User &&
		c.Password == o.Password &&
		c.HTTPScheme == o.HTTPScheme &&
		c.Verify == o.Verify &&
		c.Catalog == o.Catalog &&
		c.Schema == o.Schema &&
		c.CreatedAt.Equal(o.CreatedAt)
}

// ConnectionParam is what a user sends to register a Connection.
type ConnectionParam struct {
	Name       string
	Host       string
	Port       int
	User       string
	Password   string
	HTTPScheme string
	Verify     bool
	Catalog    string
	Schema     string
}

// Validate fills defaults and rejects unusable parameters.
func (p ConnectionParam) Validate() (ConnectionParam, error) {
	if p.Host == "" {
		return p, fmt.Errorf(`%w: "host" is required`, ErrInvalidArgument)
	}
	if p.Port <= 0 || 65535 < p.Port {
		return p, fmt.Errorf(`%w: "port" should be in 1..65535, but %d`, ErrInvalidArgument, p.Port)
	}
	if p.User == "" {
		return p, fmt.Errorf(`%w: "user" is required`, ErrInvalidArgument)
	}
	switch p.HTTPScheme {
	case "":
		p.HTTPScheme = "http"
	case "http", "https":
		// ok
	default:
		return p, fmt.Errorf(
			`%w: "httpScheme" should be http or https, but %s`,
			ErrInvalidArgument, p.HTTPScheme,
		)
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("%s@%s:%d", p.User, p.Host, p.Port)
	}
	return p, nil
}

type ConnectionInterface interface {
	// Register saves a new connection and returns it with its new id.
	Register(ctx context.Context, param ConnectionParam) (Connection, error)

	// Get retrieves connections identified by connectionIds.
	//
	// Ids without a record are just omitted from the result.
	Get(ctx context.Context, connectionIds []string) (map[string]Connection, error)

	// Find returns ids of all registered connections, ordered by creation time.
	Find(ctx context.Context) ([]string, error)

	// Delete removes a connection.
	//
	// It returns ErrMissing when no such connection exists.
	Delete(ctx context.Context, connectionId string) error
}
