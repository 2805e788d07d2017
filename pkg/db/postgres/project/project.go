package project

import (
	"context"

	"github.com/google/uuid"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpgerr "github.com/nitikab23/autoai/pkg/db/postgres/errors"
	kpool "github.com/nitikab23/autoai/pkg/db/postgres/pool"
)

type projectPG struct { // implements kdb.ProjectInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *projectPG {
	return &projectPG{pool: pool}
}

var _ kdb.ProjectInterface = &projectPG{}

func (p *projectPG) Register(ctx context.Context, param kdb.ProjectParam) (kdb.Project, error) {
	param, err := param.Validate()
	if err != nil {
		return kdb.Project{}, err
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return kdb.Project{}, err
	}
	defer conn.Release()

	projectId := uuid.NewString()

	registered := kdb.Project{
		ProjectId:   projectId,
		Name:        param.Name,
		Description: param.Description,
		SkipEnrich:  param.SkipEnrich,
		DataSources: []kdb.DataSource{},
	}

	if err := conn.QueryRow(
		ctx,
		`
		insert into "project" ("project_id", "name", "description", "skip_enrich")
		values ($1, $2, $3, $4)
		returning "created_at", "updated_at"
		`,
		projectId, param.Name, param.Description, param.SkipEnrich,
	).Scan(&registered.CreatedAt, &registered.UpdatedAt); err != nil {
		if kpgerr.IsUniqueViolation(err) {
			return kdb.Project{}, kpgerr.Duplication{
				Table: "project", Identity: param.Name,
			}
		}
		return kdb.Project{}, err
	}

	return registered, nil
}

func (p *projectPG) Get(ctx context.Context, projectIds []string) (map[string]kdb.Project, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	result := map[string]kdb.Project{}
	if len(projectIds) == 0 {
		return result, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select
			"project_id", "name", "description", "skip_enrich",
			"created_at", "updated_at"
		from "project"
		where "project_id" = any($1::varchar[])
		`,
		projectIds,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var item kdb.Project
		if err := rows.Scan(
			&item.ProjectId, &item.Name, &item.Description, &item.SkipEnrich,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, err
		}
		item.DataSources = []kdb.DataSource{}
		result[item.ProjectId] = item
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	dsrows, err := conn.Query(
		ctx,
		`
		select
			"data_source_id", "project_id", "connection_id",
			"catalog", "schema", "tables", "created_at"
		from "data_source"
		where "project_id" = any($1::varchar[])
		order by "created_at", "data_source_id"
		`,
		projectIds,
	)
	if err != nil {
		return nil, err
	}
	defer dsrows.Close()

	for dsrows.Next() {
		var projectId string
		var ds kdb.DataSource
		if err := dsrows.Scan(
			&ds.DataSourceId, &projectId, &ds.ConnectionId,
			&ds.Catalog, &ds.Schema, &ds.Tables, &ds.CreatedAt,
		); err != nil {
			return nil, err
		}
		if proj, ok := result[projectId]; ok {
			proj.DataSources = append(proj.DataSources, ds)
			result[projectId] = proj
		}
	}
	if err := dsrows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *projectPG) Find(ctx context.Context) ([]string, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "project_id" from "project" order by "created_at", "project_id"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projectIds := []string{}
	for rows.Next() {
		var projectId string
		if err := rows.Scan(&projectId); err != nil {
			return nil, err
		}
		projectIds = append(projectIds, projectId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projectIds, nil
}

func (p *projectPG) Delete(ctx context.Context, projectId string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	// data_source, table_metadata and extraction_task rows follow by cascade.
	tag, err := conn.Exec(
		ctx,
		`delete from "project" where "project_id" = $1`,
		projectId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "project", Identity: projectId}
	}

	return nil
}

func (p *projectPG) AddDataSource(ctx context.Context, projectId string, param kdb.DataSourceParam) (kdb.DataSource, error) {
	param, err := param.Validate()
	if err != nil {
		return kdb.DataSource{}, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return kdb.DataSource{}, err
	}
	defer tx.Rollback(ctx)

	var found string
	if err := tx.QueryRow(
		ctx,
		`select "project_id" from "project" where "project_id" = $1 for update`,
		projectId,
	).Scan(&found); err != nil {
		if kpgerr.IsNoRows(err) {
			return kdb.DataSource{}, kpgerr.Missing{Table: "project", Identity: projectId}
		}
		return kdb.DataSource{}, err
	}

	tables := param.Tables
	if tables == nil {
		tables = []string{}
	}

	ds := kdb.DataSource{
		DataSourceId: uuid.NewString(),
		ConnectionId: param.ConnectionId,
		Catalog:      param.Catalog,
		Schema:       param.Schema,
		Tables:       tables,
	}

	if err := tx.QueryRow(
		ctx,
		`
		insert into "data_source" (
			"data_source_id", "project_id", "connection_id",
			"catalog", "schema", "tables"
		)
		values ($1, $2, $3, $4, $5, $6)
		returning "created_at"
		`,
		ds.DataSourceId, projectId, ds.ConnectionId,
		ds.Catalog, ds.Schema, tables,
	).Scan(&ds.CreatedAt); err != nil {
		return kdb.DataSource{}, err
	}

	if _, err := tx.Exec(
		ctx,
		`update "project" set "updated_at" = now() where "project_id" = $1`,
		projectId,
	); err != nil {
		return kdb.DataSource{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return kdb.DataSource{}, err
	}

	return ds, nil
}
