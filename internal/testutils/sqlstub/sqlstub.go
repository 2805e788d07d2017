// Package sqlstub serves canned results through a database/sql driver,
// so code speaking to Trino can be tested without a live coordinator.
package sqlstub

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	kdb "github.com/nitikab23/autoai/pkg/db"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
)

// Result is served for one query, in the order queries arrive.
type Result struct {
	Columns []string
	Rows    [][]driver.Value
	Err     error
}

// Opener hands out databases backed by the canned results.
type Opener struct {
	name string
	d    *stubDriver
}

var _ ktrino.Opener = &Opener{}

var seq atomic.Int64

func New(results ...Result) *Opener {
	d := &stubDriver{results: results}
	name := fmt.Sprintf("sqlstub-%d", seq.Add(1))
	sql.Register(name, d)
	return &Opener{name: name, d: d}
}

func (o *Opener) Open(kdb.Connection) (*sql.DB, error) {
	return sql.Open(o.name, "")
}

// Queries returns the queries received so far.
func (o *Opener) Queries() []string {
	o.d.mu.Lock()
	defer o.d.mu.Unlock()
	return append([]string{}, o.d.queries...)
}

type stubDriver struct {
	mu      sync.Mutex
	results []Result
	queries []string
}

var _ driver.Driver = &stubDriver{}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return &stubConn{d: d}, nil
}

type stubConn struct {
	d *stubDriver
}

var _ driver.Conn = &stubConn{}
var _ driver.QueryerContext = &stubConn{}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("sqlstub: prepare is not supported (query: %s)", query)
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("sqlstub: transactions are not supported")
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()

	c.d.queries = append(c.d.queries, query)
	if len(c.d.results) == 0 {
		return nil, fmt.Errorf("sqlstub: no result left for query: %s", query)
	}
	next := c.d.results[0]
	c.d.results = c.d.results[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &stubRows{columns: next.Columns, rows: next.Rows}, nil
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
}

var _ driver.Rows = &stubRows{}

func (r *stubRows) Columns() []string { return r.columns }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}
