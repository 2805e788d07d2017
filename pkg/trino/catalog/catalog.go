package catalog

import (
	"context"
	"fmt"

	kdb "github.com/nitikab23/autoai/pkg/db"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
)

// Browser lists what a Trino connection can see.
type Browser interface {
	ListCatalogs(ctx context.Context, conn kdb.Connection) ([]string, error)
	ListSchemas(ctx context.Context, conn kdb.Connection, catalog string) ([]string, error)
	ListTables(ctx context.Context, conn kdb.Connection, catalog string, schema string) ([]string, error)
}

type browser struct {
	opener ktrino.Opener
}

func New(opener ktrino.Opener) Browser {
	return &browser{opener: opener}
}

func (b *browser) ListCatalogs(ctx context.Context, conn kdb.Connection) ([]string, error) {
	return b.listNames(ctx, conn, `SHOW CATALOGS`)
}

func (b *browser) ListSchemas(ctx context.Context, conn kdb.Connection, catalog string) ([]string, error) {
	return b.listNames(ctx, conn, fmt.Sprintf(
		`SHOW SCHEMAS FROM %s`, ktrino.QuoteIdentifier(catalog),
	))
}

func (b *browser) ListTables(ctx context.Context, conn kdb.Connection, catalog string, schema string) ([]string, error) {
	return b.listNames(ctx, conn, fmt.Sprintf(
		`SHOW TABLES FROM %s.%s`,
		ktrino.QuoteIdentifier(catalog), ktrino.QuoteIdentifier(schema),
	))
}

func (b *browser) listNames(ctx context.Context, conn kdb.Connection, query string) ([]string, error) {
	db, err := b.opener.Open(conn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
