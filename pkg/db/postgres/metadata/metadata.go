package metadata

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgtype"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpgerr "github.com/nitikab23/autoai/pkg/db/postgres/errors"
	kpool "github.com/nitikab23/autoai/pkg/db/postgres/pool"
)

type metadataPG struct { // implements kdb.MetadataInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *metadataPG {
	return &metadataPG{pool: pool}
}

var _ kdb.MetadataInterface = &metadataPG{}

func asJSONB(v interface{}) (pgtype.JSONB, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return pgtype.JSONB{}, err
	}
	return pgtype.JSONB{Bytes: b, Status: pgtype.Present}, nil
}

func (m *metadataPG) Upsert(ctx context.Context, metadata kdb.TableMetadata) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if metadata.Columns == nil {
		metadata.Columns = []kdb.Column{}
	}
	if metadata.SampleData == nil {
		metadata.SampleData = []map[string]*string{}
	}

	columns, err := asJSONB(metadata.Columns)
	if err != nil {
		return err
	}
	sampleData, err := asJSONB(metadata.SampleData)
	if err != nil {
		return err
	}

	_, err = conn.Exec(
		ctx,
		`
		insert into "table_metadata" (
			"project_id", "connection_id", "catalog", "schema", "table",
			"columns", "sample_data", "row_count", "description", "extracted_at"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		on conflict ("project_id", "catalog", "schema", "table") do update set
			"connection_id" = excluded."connection_id",
			"columns" = excluded."columns",
			"sample_data" = excluded."sample_data",
			"row_count" = excluded."row_count",
			"description" = excluded."description",
			"extracted_at" = excluded."extracted_at"
		`,
		metadata.ProjectId, metadata.ConnectionId,
		metadata.Catalog, metadata.Schema, metadata.Table,
		columns, sampleData, metadata.RowCount,
		metadata.Description, metadata.ExtractedAt,
	)
	return err
}

func (m *metadataPG) Get(ctx context.Context, projectId string, ref kdb.TableRef) (kdb.TableMetadata, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return kdb.TableMetadata{}, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"project_id", "connection_id", "catalog", "schema", "table",
			"columns", "sample_data", "row_count", "description", "extracted_at"
		from "table_metadata"
		where "project_id" = $1
			and "catalog" = $2 and "schema" = $3 and "table" = $4
		`,
		projectId, ref.Catalog, ref.Schema, ref.Table,
	)
	if err != nil {
		return kdb.TableMetadata{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return kdb.TableMetadata{}, err
		}
		return kdb.TableMetadata{}, kpgerr.Missing{
			Table: "table_metadata", Identity: ref.String(),
		}
	}

	item, err := scanMetadata(rows)
	if err != nil {
		return kdb.TableMetadata{}, err
	}
	return item, nil
}

func (m *metadataPG) GetForProject(ctx context.Context, projectId string) (map[string]kdb.TableMetadata, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"project_id", "connection_id", "catalog", "schema", "table",
			"columns", "sample_data", "row_count", "description", "extracted_at"
		from "table_metadata"
		where "project_id" = $1
		order by "catalog", "schema", "table"
		`,
		projectId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]kdb.TableMetadata{}
	for rows.Next() {
		item, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		result[item.TableRef.String()] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (m *metadataPG) Delete(ctx context.Context, projectId string, ref kdb.TableRef) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		delete from "table_metadata"
		where "project_id" = $1
			and "catalog" = $2 and "schema" = $3 and "table" = $4
		`,
		projectId, ref.Catalog, ref.Schema, ref.Table,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "table_metadata", Identity: ref.String()}
	}

	return nil
}

type row interface {
	Scan(dest ...interface{}) error
}

func scanMetadata(r row) (kdb.TableMetadata, error) {
	var item kdb.TableMetadata
	var columns, sampleData pgtype.JSONB

	if err := r.Scan(
		&item.ProjectId, &item.ConnectionId,
		&item.Catalog, &item.Schema, &item.Table,
		&columns, &sampleData, &item.RowCount,
		&item.Description, &item.ExtractedAt,
	); err != nil {
		return kdb.TableMetadata{}, err
	}

	if err := json.Unmarshal(columns.Bytes, &item.Columns); err != nil {
		return kdb.TableMetadata{}, err
	}
	if err := json.Unmarshal(sampleData.Bytes, &item.SampleData); err != nil {
		return kdb.TableMetadata{}, err
	}

	return item, nil
}
