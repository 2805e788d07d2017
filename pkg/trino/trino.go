// Package trino speaks to Trino coordinators registered as connections.
package trino

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/trinodb/trino-go-client/trino"
)

// Opener opens SQL sessions against a registered connection.
type Opener interface {
	Open(conn kdb.Connection) (*sql.DB, error)
}

type stdOpener struct {
	source string
}

// NewOpener returns an Opener using the trino driver.
//
// source is reported to the coordinator as the query source.
func NewOpener(source string) Opener {
	return &stdOpener{source: source}
}

func (o *stdOpener) Open(conn kdb.Connection) (*sql.DB, error) {
	dsn, err := formatDSN(conn, o.source)
	if err != nil {
		return nil, err
	}
	return sql.Open("trino", dsn)
}

// insecureClientName keys the http.Client registered for https
// connections stored with verify=false.
const insecureClientName = "autoai-insecure"

var insecureClientOnce sync.Once
var insecureClientErr error

func registerInsecureClient() error {
	insecureClientOnce.Do(func() {
		insecureClientErr = trino.RegisterCustomClient(insecureClientName, &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		})
	})
	return insecureClientErr
}

func formatDSN(conn kdb.Connection, source string) (string, error) {
	serverURI := url.URL{
		Scheme: conn.HTTPScheme,
		Host:   fmt.Sprintf("%s:%d", conn.Host, conn.Port),
		User:   url.User(conn.User),
	}
	if conn.Password != "" {
		serverURI.User = url.UserPassword(conn.User, conn.Password)
	}

	config := trino.Config{
		ServerURI: serverURI.String(),
		Source:    source,
		Catalog:   conn.Catalog,
		Schema:    conn.Schema,
	}

	// verify only matters over TLS. With verify=false the session goes
	// through a client that does not check the coordinator certificate.
	if conn.HTTPScheme == "https" && !conn.Verify {
		if err := registerInsecureClient(); err != nil {
			return "", err
		}
		config.CustomClientName = insecureClientName
	}

	return config.FormatDSN()
}

// Ping tests that a connection actually reaches a live coordinator.
func Ping(ctx context.Context, opener Opener, conn kdb.Connection) error {
	db, err := opener.Open(conn)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

// Pinger probes whether a connection reaches a live coordinator.
type Pinger interface {
	Ping(ctx context.Context, conn kdb.Connection) error
}

type stdPinger struct {
	opener Opener
}

func NewPinger(opener Opener) Pinger {
	return &stdPinger{opener: opener}
}

func (p *stdPinger) Ping(ctx context.Context, conn kdb.Connection) error {
	return Ping(ctx, p.opener, conn)
}

// QuoteIdentifier makes s safe to interpolate as a SQL identifier.
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QualifiedTable builds a quoted catalog.schema.table reference.
func QualifiedTable(ref kdb.TableRef) string {
	return strings.Join(
		[]string{
			QuoteIdentifier(ref.Catalog),
			QuoteIdentifier(ref.Schema),
			QuoteIdentifier(ref.Table),
		},
		".",
	)
}
