package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpgerr "github.com/nitikab23/autoai/pkg/db/postgres/errors"
)

func TestIsUniqueViolation(t *testing.T) {
	for name, testcase := range map[string]struct {
		given    error
		expected bool
	}{
		"a unique_violation is detected": {
			given:    &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			expected: true,
		},
		"a wrapped unique_violation is detected": {
			given:    fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			expected: true,
		},
		"other postgres errors are not": {
			given:    &pgconn.PgError{Code: pgerrcode.NotNullViolation},
			expected: false,
		},
		"a plain error is not": {
			given:    errors.New("fake error"),
			expected: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := kpgerr.IsUniqueViolation(testcase.given); actual != testcase.expected {
				t.Errorf("unmatch: actual = %v, expected = %v", actual, testcase.expected)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	if !kpgerr.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Error("a wrapped pgx.ErrNoRows should be detected")
	}
	if kpgerr.IsNoRows(errors.New("fake error")) {
		t.Error("other errors should not be")
	}
}

func TestSentinelWrappers(t *testing.T) {
	t.Run("Missing unwraps to the missing sentinel", func(t *testing.T) {
		err := kpgerr.Missing{Table: "project", Identity: "proj-1"}
		if !errors.Is(err, kdb.ErrMissing) {
			t.Error("Missing should be kdb.ErrMissing")
		}
		if msg := err.Error(); msg != "proj-1 is not found in project" {
			t.Errorf("unmatch message: %s", msg)
		}
	})

	t.Run("Duplication unwraps to the already-exists sentinel", func(t *testing.T) {
		err := kpgerr.Duplication{Table: "connection", Identity: "warehouse"}
		if !errors.Is(err, kdb.ErrAlreadyExists) {
			t.Error("Duplication should be kdb.ErrAlreadyExists")
		}
		if msg := err.Error(); msg != "warehouse already exists in connection" {
			t.Errorf("unmatch message: %s", msg)
		}
	})
}
