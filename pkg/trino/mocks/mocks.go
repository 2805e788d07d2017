package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
	"github.com/nitikab23/autoai/pkg/trino/catalog"
	"github.com/nitikab23/autoai/pkg/trino/extract"
)

type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

type Browser struct {
	Impl struct {
		ListCatalogs func(context.Context, kdb.Connection) ([]string, error)
		ListSchemas  func(context.Context, kdb.Connection, string) ([]string, error)
		ListTables   func(context.Context, kdb.Connection, string, string) ([]string, error)
	}
	Calls struct {
		ListCatalogs CallLog[struct{ ConnectionId string }]
		ListSchemas  CallLog[struct {
			ConnectionId string
			Catalog      string
		}]
		ListTables CallLog[struct {
			ConnectionId string
			Catalog      string
			Schema       string
		}]
	}
}

func NewBrowser() *Browser {
	return &Browser{}
}

var _ catalog.Browser = &Browser{}

func (b *Browser) ListCatalogs(ctx context.Context, conn kdb.Connection) ([]string, error) {
	b.Calls.ListCatalogs = append(b.Calls.ListCatalogs, struct{ ConnectionId string }{ConnectionId: conn.ConnectionId})
	if b.Impl.ListCatalogs != nil {
		return b.Impl.ListCatalogs(ctx, conn)
	}
	panic(errors.New("it should not be called"))
}

func (b *Browser) ListSchemas(ctx context.Context, conn kdb.Connection, catalog string) ([]string, error) {
	b.Calls.ListSchemas = append(b.Calls.ListSchemas, struct {
		ConnectionId string
		Catalog      string
	}{ConnectionId: conn.ConnectionId, Catalog: catalog})
	if b.Impl.ListSchemas != nil {
		return b.Impl.ListSchemas(ctx, conn, catalog)
	}
	panic(errors.New("it should not be called"))
}

func (b *Browser) ListTables(ctx context.Context, conn kdb.Connection, catalog string, schema string) ([]string, error) {
	b.Calls.ListTables = append(b.Calls.ListTables, struct {
		ConnectionId string
		Catalog      string
		Schema       string
	}{ConnectionId: conn.ConnectionId, Catalog: catalog, Schema: schema})
	if b.Impl.ListTables != nil {
		return b.Impl.ListTables(ctx, conn, catalog, schema)
	}
	panic(errors.New("it should not be called"))
}

type Pinger struct {
	Impl struct {
		Ping func(context.Context, kdb.Connection) error
	}
	Calls struct {
		Ping CallLog[struct {
			Host string
			Port int
		}]
	}
}

func NewPinger() *Pinger {
	return &Pinger{}
}

var _ ktrino.Pinger = &Pinger{}

func (p *Pinger) Ping(ctx context.Context, conn kdb.Connection) error {
	p.Calls.Ping = append(p.Calls.Ping, struct {
		Host string
		Port int
	}{Host: conn.Host, Port: conn.Port})
	if p.Impl.Ping != nil {
		return p.Impl.Ping(ctx, conn)
	}
	panic(errors.New("it should not be called"))
}

type Extractor struct {
	Impl struct {
		ExtractTable func(context.Context, kdb.Connection, kdb.TableRef) (kdb.TableMetadata, error)
	}
	Calls struct {
		ExtractTable CallLog[struct {
			ConnectionId string
			Ref          kdb.TableRef
		}]
	}
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ extract.Extractor = &Extractor{}

func (e *Extractor) ExtractTable(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error) {
	e.Calls.ExtractTable = append(e.Calls.ExtractTable, struct {
		ConnectionId string
		Ref          kdb.TableRef
	}{ConnectionId: conn.ConnectionId, Ref: ref})
	if e.Impl.ExtractTable != nil {
		return e.Impl.ExtractTable(ctx, conn, ref)
	}
	panic(errors.New("it should not be called"))
}
