package extract

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	kdb "github.com/nitikab23/autoai/pkg/db"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
	"github.com/nitikab23/autoai/pkg/utils/pointer"
)

const DefaultSampleLimit = 3

// Extractor reads structure, sample rows and row counts of a table.
type Extractor interface {
	ExtractTable(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error)
}

type extractor struct {
	opener      ktrino.Opener
	sampleLimit int
}

func New(opener ktrino.Opener) Extractor {
	return &extractor{opener: opener, sampleLimit: DefaultSampleLimit}
}

// ExtractTable reads column definitions, up to sampleLimit sample rows
// and the row count of the table.
//
// Column definitions are required; when they cannot be read, it fails.
// Sample rows and row count are best effort: on failure the samples are
// left empty and the row count nil, without error.
func (e *extractor) ExtractTable(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error) {
	db, err := e.opener.Open(conn)
	if err != nil {
		return kdb.TableMetadata{}, err
	}
	defer db.Close()

	columns, err := e.columns(ctx, db, ref)
	if err != nil {
		return kdb.TableMetadata{}, fmt.Errorf(
			"cannot read columns of %s: %w", ref.String(), err,
		)
	}
	if len(columns) == 0 {
		return kdb.TableMetadata{}, fmt.Errorf(
			"%w: no such table: %s", kdb.ErrMissing, ref.String(),
		)
	}

	samples := e.samples(ctx, db, ref)
	for i, col := range columns {
		values := []string{}
		for _, row := range samples {
			if v, ok := row[col.Name]; ok && v != nil {
				values = append(values, *v)
			}
		}
		columns[i].SampleValues = values
	}

	metadata := kdb.TableMetadata{
		ConnectionId: conn.ConnectionId,
		TableRef:     ref,
		Columns:      columns,
		SampleData:   samples,
		RowCount:     e.rowCount(ctx, db, ref),
		ExtractedAt:  time.Now(),
	}
	return metadata, nil
}

func (e *extractor) columns(ctx context.Context, db *sql.DB, ref kdb.TableRef) ([]kdb.Column, error) {
	rows, err := db.QueryContext(
		ctx,
		fmt.Sprintf(
			`
			SELECT column_name, data_type, is_nullable
			FROM %s.information_schema.columns
			WHERE table_schema = ? AND table_name = ?
			ORDER BY ordinal_position
			`,
			ktrino.QuoteIdentifier(ref.Catalog),
		),
		ref.Schema, ref.Table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []kdb.Column{}
	for rows.Next() {
		var name, typ, nullable string
		if err := rows.Scan(&name, &typ, &nullable); err != nil {
			return nil, err
		}
		columns = append(columns, kdb.Column{
			Name:     name,
			Type:     typ,
			Nullable: nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}

func (e *extractor) samples(ctx context.Context, db *sql.DB, ref kdb.TableRef) []map[string]*string {
	rows, err := db.QueryContext(
		ctx,
		fmt.Sprintf(
			`SELECT * FROM %s LIMIT %d`,
			ktrino.QualifiedTable(ref), e.sampleLimit,
		),
	)
	if err != nil {
		return []map[string]*string{}
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return []map[string]*string{}
	}

	samples := []map[string]*string{}
	for rows.Next() {
		cells := make([]interface{}, len(names))
		for i := range cells {
			cells[i] = new(interface{})
		}
		if err := rows.Scan(cells...); err != nil {
			return []map[string]*string{}
		}

		sample := map[string]*string{}
		for i, name := range names {
			sample[name] = Stringify(*(cells[i].(*interface{})))
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return []map[string]*string{}
	}

	return samples
}

func (e *extractor) rowCount(ctx context.Context, db *sql.DB, ref kdb.TableRef) *int64 {
	var count int64
	if err := db.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, ktrino.QualifiedTable(ref)),
	).Scan(&count); err != nil {
		return nil
	}
	return &count
}

// Stringify renders a sampled cell for storage.
//
// nil stays nil (the cell was NULL). Binary values are masked since
// they are not meaningful as text. Timestamps use RFC3339.
func Stringify(v interface{}) *string {
	switch value := v.(type) {
	case nil:
		return nil
	case []byte:
		return pointer.Ref("[BINARY DATA]")
	case time.Time:
		return pointer.Ref(value.Format(time.RFC3339))
	case string:
		return pointer.Ref(value)
	default:
		return pointer.Ref(fmt.Sprintf("%v", value))
	}
}
