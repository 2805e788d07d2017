package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kdb "github.com/nitikab23/autoai/pkg/db"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kdb.ErrMissing
}

// a record with the same identity is already there.
type Duplication struct {
	Table    string
	Identity string
}

var _ error = Duplication{}

func (d Duplication) Error() string {
	return fmt.Sprintf("%s already exists in %s", d.Identity, d.Table)
}

func (d Duplication) Unwrap() error {
	return kdb.ErrAlreadyExists
}

// IsUniqueViolation tells whether err is PostgreSQL's unique_violation.
func IsUniqueViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation
}

// IsNoRows tells whether err means a query found no rows.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
