package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apiproj "github.com/nitikab23/autoai-api-types/projects"
	apierr "github.com/nitikab23/autoai/pkg/api-types-binding/errors"
	bindproj "github.com/nitikab23/autoai/pkg/api-types-binding/projects"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/trino/catalog"
	"github.com/nitikab23/autoai/pkg/utils"
)

// RegisterProjectHandler handles POST /api/projects.
func RegisterProjectHandler(dbProj kdb.ProjectInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apiproj.Spec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("project spec is required as JSON", err)
		}

		registered, err := dbProj.Register(ctx, bindproj.AsParam(spec))
		if err != nil {
			if errors.Is(err, kdb.ErrInvalidArgument) {
				return apierr.BadRequest("invalid project spec", err)
			}
			if errors.Is(err, kdb.ErrAlreadyExists) {
				return apierr.Conflict("project name is already used", apierr.WithError(err))
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindproj.ComposeDetail(registered))
	}
}

// FindProjectHandler handles GET /api/projects.
func FindProjectHandler(dbProj kdb.ProjectInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		projectIds, err := dbProj.Find(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		projects, err := dbProj.Get(ctx, projectIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		resp := []apiproj.Summary{}
		for _, projectId := range projectIds {
			if p, ok := projects[projectId]; ok {
				resp = append(resp, bindproj.ComposeSummary(p))
			}
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// GetProjectHandler handles GET /api/projects/:projectId.
func GetProjectHandler(dbProj kdb.ProjectInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		project, err := getProject(ctx, dbProj, c.Param("projectId"))
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, bindproj.ComposeDetail(project))
	}
}

// DeleteProjectHandler handles DELETE /api/projects/:projectId.
func DeleteProjectHandler(dbProj kdb.ProjectInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := dbProj.Delete(ctx, c.Param("projectId")); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// AddDataSourceHandler handles POST /api/projects/:projectId/data-sources.
//
// It registers the data source and queues extraction tasks for its
// tables. When the spec names no tables, every table found in the
// schema is taken.
func AddDataSourceHandler(
	dbProj kdb.ProjectInterface,
	dbConn kdb.ConnectionInterface,
	dbTask kdb.TaskInterface,
	browser catalog.Browser,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		projectId := c.Param("projectId")

		spec := apiproj.DataSourceSpec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("data source spec is required as JSON", err)
		}

		conn, err := getConnection(ctx, dbConn, spec.ConnectionId)
		if err != nil {
			return err
		}

		tables := spec.Tables
		if len(tables) == 0 {
			found, err := browser.ListTables(ctx, conn, spec.Catalog, spec.Schema)
			if err != nil {
				return apierr.BadGateway("cannot list tables via the connection", err)
			}
			tables = found
		}

		spec.Tables = tables
		ds, err := dbProj.AddDataSource(ctx, projectId, bindproj.AsDataSourceParam(spec))
		if err != nil {
			if errors.Is(err, kdb.ErrInvalidArgument) {
				return apierr.BadRequest("invalid data source spec", err)
			}
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		refs := utils.Map(tables, func(table string) kdb.TableRef {
			return kdb.TableRef{Catalog: spec.Catalog, Schema: spec.Schema, Table: table}
		})
		queued, err := dbTask.Enqueue(ctx, projectId, conn.ConnectionId, refs)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		queuedTables := utils.Map(queued, func(t kdb.ExtractionTask) string {
			return t.Table
		})
		skipped := []string{}
		for _, table := range tables {
			hit := false
			for _, q := range queuedTables {
				if q == table {
					hit = true
					break
				}
			}
			if !hit {
				skipped = append(skipped, table)
			}
		}

		return c.JSON(http.StatusAccepted, apiproj.DataSourceResult{
			DataSourceId: ds.DataSourceId,
			Queued:       queuedTables,
			Skipped:      skipped,
		})
	}
}

func getProject(ctx context.Context, dbProj kdb.ProjectInterface, projectId string) (kdb.Project, error) {
	projects, err := dbProj.Get(ctx, []string{projectId})
	if err != nil {
		return kdb.Project{}, apierr.InternalServerError(err)
	}
	project, ok := projects[projectId]
	if !ok {
		return kdb.Project{}, apierr.NotFound()
	}
	return project, nil
}
