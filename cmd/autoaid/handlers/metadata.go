package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apimeta "github.com/nitikab23/autoai-api-types/metadata"
	apierr "github.com/nitikab23/autoai/pkg/api-types-binding/errors"
	bindmeta "github.com/nitikab23/autoai/pkg/api-types-binding/metadata"
	bindproj "github.com/nitikab23/autoai/pkg/api-types-binding/projects"
	bindtasks "github.com/nitikab23/autoai/pkg/api-types-binding/tasks"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/enrich"
	"github.com/nitikab23/autoai/pkg/trino/extract"
	"github.com/nitikab23/autoai/pkg/utils"
)

// GetProjectMetadataHandler handles GET /api/projects/:projectId/metadata.
//
// It only reads what was extracted before. It never extracts by itself.
func GetProjectMetadataHandler(dbProj kdb.ProjectInterface, dbMeta kdb.MetadataInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		project, err := getProject(ctx, dbProj, c.Param("projectId"))
		if err != nil {
			return err
		}

		stored, err := dbMeta.GetForProject(ctx, project.ProjectId)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		tables := map[string]apimeta.Summary{}
		for key, m := range stored {
			tables[key] = bindmeta.ComposeSummary(m)
		}

		return c.JSON(http.StatusOK, apimeta.ProjectMetadata{
			ProjectId:   project.ProjectId,
			ProjectName: project.Name,
			Description: project.Description,
			DataSources: utils.Map(project.DataSources, bindproj.ComposeDataSource),
			Tables:      tables,
		})
	}
}

// GetTableMetadataHandler handles
// GET /api/projects/:projectId/metadata/:catalog/:schema/:table.
func GetTableMetadataHandler(dbMeta kdb.MetadataInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		ref := kdb.TableRef{
			Catalog: c.Param("catalog"),
			Schema:  c.Param("schema"),
			Table:   c.Param("table"),
		}
		stored, err := dbMeta.Get(ctx, c.Param("projectId"), ref)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindmeta.ComposeDetail(stored))
	}
}

// DeleteTableMetadataHandler handles
// DELETE /api/projects/:projectId/metadata/:catalog/:schema/:table.
func DeleteTableMetadataHandler(dbMeta kdb.MetadataInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		ref := kdb.TableRef{
			Catalog: c.Param("catalog"),
			Schema:  c.Param("schema"),
			Table:   c.Param("table"),
		}
		if err := dbMeta.Delete(ctx, c.Param("projectId"), ref); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// ExtractBatchHandler handles POST /api/projects/:projectId/metadata/batch.
//
// Extraction runs synchronously, table by table. A table failing does
// not stop the batch; it is reported in the result instead.
func ExtractBatchHandler(
	dbProj kdb.ProjectInterface,
	dbConn kdb.ConnectionInterface,
	dbMeta kdb.MetadataInterface,
	extractor extract.Extractor,
	enricher enrich.Enricher,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apimeta.BatchSpec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("batch spec is required as JSON", err)
		}
		if len(spec.Tables) == 0 {
			return apierr.BadRequest(
				"at least one table is required",
				errors.New("empty batch"),
			)
		}

		project, err := getProject(ctx, dbProj, c.Param("projectId"))
		if err != nil {
			return err
		}
		conn, err := getConnection(ctx, dbConn, spec.ConnectionId)
		if err != nil {
			return err
		}

		result := apimeta.BatchResult{
			Successful: []apimeta.Detail{},
			Failed:     []apimeta.FailedTable{},
		}
		for _, table := range spec.Tables {
			ref := bindmeta.AsTableRef(table)

			extracted, err := extractor.ExtractTable(ctx, conn, ref)
			if err != nil {
				result.Failed = append(result.Failed, apimeta.FailedTable{
					TableRef: table, Error: err.Error(),
				})
				continue
			}
			extracted.ProjectId = project.ProjectId

			if !project.SkipEnrich {
				if enriched, err := enricher.Enrich(ctx, extracted); err == nil {
					extracted = enriched
				} else {
					c.Logger().Warnf(
						"enrichment failed for %s (keeping raw metadata): %s",
						ref.String(), err,
					)
				}
			}

			if err := dbMeta.Upsert(ctx, extracted); err != nil {
				result.Failed = append(result.Failed, apimeta.FailedTable{
					TableRef: table, Error: err.Error(),
				})
				continue
			}

			result.Successful = append(result.Successful, bindmeta.ComposeDetail(extracted))
		}
		result.TotalProcessed = len(spec.Tables)

		return c.JSON(http.StatusOK, result)
	}
}

// FindTaskHandler handles GET /api/projects/:projectId/tasks.
func FindTaskHandler(dbProj kdb.ProjectInterface, dbTask kdb.TaskInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		project, err := getProject(ctx, dbProj, c.Param("projectId"))
		if err != nil {
			return err
		}

		found, err := dbTask.Find(ctx, project.ProjectId)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, utils.Map(found, bindtasks.ComposeSummary))
	}
}
