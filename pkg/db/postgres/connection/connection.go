package connection

import (
	"context"

	"github.com/google/uuid"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpgerr "github.com/nitikab23/autoai/pkg/db/postgres/errors"
	kpool "github.com/nitikab23/autoai/pkg/db/postgres/pool"
)

type connectionPG struct { // implements kdb.ConnectionInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *connectionPG {
	return &connectionPG{pool: pool}
}

var _ kdb.ConnectionInterface = &connectionPG{}

func (c *connectionPG) Register(ctx context.Context, param kdb.ConnectionParam) (kdb.Connection, error) {
	param, err := param.Validate()
	if err != nil {
		return kdb.Connection{}, err
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return kdb.Connection{}, err
	}
	defer conn.Release()

	connectionId := uuid.NewString()

	registered := kdb.Connection{
		ConnectionId: connectionId,
		Name:         param.Name,
		Host:         param.Host,
		Port:         param.Port,
		User:         param.User,
		Password:     param.Password,
		HTTPScheme:   param.HTTPScheme,
		Verify:       param.Verify,
		Catalog:      param.Catalog,
		Schema:       param.Schema,
	}

	if err := conn.QueryRow(
		ctx,
		`
		insert into "connection" (
			"connection_id", "name", "host", "port", "trino_user",
			"password", "http_scheme", "verify", "catalog", "schema"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning "created_at"
		`,
		connectionId, param.Name, param.Host, param.Port, param.User,
		param.Password, param.HTTPScheme, param.Verify, param.Catalog, param.Schema,
	).Scan(&registered.CreatedAt); err != nil {
		if kpgerr.IsUniqueViolation(err) {
			return kdb.Connection{}, kpgerr.Duplication{
				Table: "connection", Identity: param.Name,
			}
		}
		return kdb.Connection{}, err
	}

	return registered, nil
}

func (c *connectionPG) Get(ctx context.Context, connectionIds []string) (map[string]kdb.Connection, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	result := map[string]kdb.Connection{}
	if len(connectionIds) == 0 {
		return result, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select
			"connection_id", "name", "host", "port", "trino_user",
			"password", "http_scheme", "verify", "catalog", "schema",
			"created_at"
		from "connection"
		where "connection_id" = any($1::varchar[])
		`,
		connectionIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item kdb.Connection
		if err := rows.Scan(
			&item.ConnectionId, &item.Name, &item.Host, &item.Port, &item.User,
			&item.Password, &item.HTTPScheme, &item.Verify, &item.Catalog, &item.Schema,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[item.ConnectionId] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *connectionPG) Find(ctx context.Context) ([]string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "connection_id" from "connection" order by "created_at", "connection_id"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	connectionIds := []string{}
	for rows.Next() {
		var connectionId string
		if err := rows.Scan(&connectionId); err != nil {
			return nil, err
		}
		connectionIds = append(connectionIds, connectionId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return connectionIds, nil
}

func (c *connectionPG) Delete(ctx context.Context, connectionId string) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "connection" where "connection_id" = $1`,
		connectionId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "connection", Identity: connectionId}
	}

	return nil
}
