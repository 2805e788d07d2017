package task

import (
	"context"

	"github.com/google/uuid"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpool "github.com/nitikab23/autoai/pkg/db/postgres/pool"
)

type taskPG struct { // implements kdb.TaskInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *taskPG {
	return &taskPG{pool: pool}
}

var _ kdb.TaskInterface = &taskPG{}

func (t *taskPG) Enqueue(ctx context.Context, projectId string, connectionId string, refs []kdb.TableRef) ([]kdb.ExtractionTask, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := []kdb.ExtractionTask{}
	for _, ref := range refs {
		var inFlight int
		if err := tx.QueryRow(
			ctx,
			`
			select count(*) from "extraction_task"
			where "project_id" = $1
				and "catalog" = $2 and "schema" = $3 and "table" = $4
				and "status" in ('pending', 'running')
			`,
			projectId, ref.Catalog, ref.Schema, ref.Table,
		).Scan(&inFlight); err != nil {
			return nil, err
		}
		if 0 < inFlight {
			continue
		}

		task := kdb.ExtractionTask{
			TaskId:       uuid.NewString(),
			ProjectId:    projectId,
			ConnectionId: connectionId,
			TableRef:     ref,
			Status:       kdb.TaskPending,
		}
		if err := tx.QueryRow(
			ctx,
			`
			insert into "extraction_task" (
				"task_id", "project_id", "connection_id",
				"catalog", "schema", "table", "status"
			)
			values ($1, $2, $3, $4, $5, $6, 'pending')
			returning "created_at", "updated_at"
			`,
			task.TaskId, projectId, connectionId,
			ref.Catalog, ref.Schema, ref.Table,
		).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		created = append(created, task)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (t *taskPG) PickAndRun(ctx context.Context, f func(kdb.ExtractionTask) error) (bool, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(
		ctx,
		`
		select
			"task_id", "project_id", "connection_id",
			"catalog", "schema", "table", "status",
			"error", "created_at", "updated_at"
		from "extraction_task"
		where "status" = 'pending'
		order by "created_at"
		limit 1
		for update skip locked
		`,
	)
	if err != nil {
		return false, err
	}

	if !rows.Next() {
		err := rows.Err()
		rows.Close()
		return false, err
	}

	var picked kdb.ExtractionTask
	var status string
	if err := rows.Scan(
		&picked.TaskId, &picked.ProjectId, &picked.ConnectionId,
		&picked.Catalog, &picked.Schema, &picked.Table, &status,
		&picked.Error, &picked.CreatedAt, &picked.UpdatedAt,
	); err != nil {
		rows.Close()
		return false, err
	}
	rows.Close()
	if picked.Status, err = kdb.AsTaskStatus(status); err != nil {
		return false, err
	}

	if _, err := tx.Exec(
		ctx,
		`update "extraction_task" set "status" = 'running', "updated_at" = now() where "task_id" = $1`,
		picked.TaskId,
	); err != nil {
		return false, err
	}
	picked.Status = kdb.TaskRunning

	if ferr := f(picked); ferr != nil {
		if _, err := tx.Exec(
			ctx,
			`update "extraction_task" set "status" = 'failed', "error" = $2, "updated_at" = now() where "task_id" = $1`,
			picked.TaskId, ferr.Error(),
		); err != nil {
			return true, err
		}
	} else {
		if _, err := tx.Exec(
			ctx,
			`update "extraction_task" set "status" = 'done', "updated_at" = now() where "task_id" = $1`,
			picked.TaskId,
		); err != nil {
			return true, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (t *taskPG) Find(ctx context.Context, projectId string) ([]kdb.ExtractionTask, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"task_id", "project_id", "connection_id",
			"catalog", "schema", "table", "status",
			"error", "created_at", "updated_at"
		from "extraction_task"
		where "project_id" = $1
		order by "created_at" desc, "task_id"
		`,
		projectId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []kdb.ExtractionTask{}
	for rows.Next() {
		var item kdb.ExtractionTask
		var status string
		if err := rows.Scan(
			&item.TaskId, &item.ProjectId, &item.ConnectionId,
			&item.Catalog, &item.Schema, &item.Table, &status,
			&item.Error, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if item.Status, err = kdb.AsTaskStatus(status); err != nil {
			return nil, err
		}
		tasks = append(tasks, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
