package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	apimeta "github.com/nitikab23/autoai-api-types/metadata"
	apitasks "github.com/nitikab23/autoai-api-types/tasks"
	httptestutil "github.com/nitikab23/autoai/internal/testutils/http"
	kdb "github.com/nitikab23/autoai/pkg/db"
	dbmock "github.com/nitikab23/autoai/pkg/db/mocks"
	enrichmock "github.com/nitikab23/autoai/pkg/enrich/mocks"
	trinomock "github.com/nitikab23/autoai/pkg/trino/mocks"
	"github.com/nitikab23/autoai/pkg/utils/try"

	"github.com/nitikab23/autoai/cmd/autoaid/handlers"
)

func TestGetProjectMetadataHandler(t *testing.T) {

	extractedAt := try.To(
		time.Parse(time.RFC3339, "2025-10-02T10:00:00+00:00"),
	).OrFatal(t)

	t.Run("it consolidates stored metadata without extracting", func(t *testing.T) {
		dbproj := dbmock.NewProjectInterface()
		dbproj.Impl.Get = func(context.Context, []string) (map[string]kdb.Project, error) {
			return map[string]kdb.Project{
				"proj-1": {
					ProjectId: "proj-1", Name: "churn-analysis",
					Description: "customer churn",
					DataSources: []kdb.DataSource{
						{DataSourceId: "ds-1", ConnectionId: "conn-1", Catalog: "hive", Schema: "sales"},
					},
				},
			}, nil
		}

		rowCount := int64(120)
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.GetForProject = func(ctx context.Context, projectId string) (map[string]kdb.TableMetadata, error) {
			return map[string]kdb.TableMetadata{
				"hive.sales.orders": {
					ProjectId: projectId, ConnectionId: "conn-1",
					TableRef: kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
					Columns: []kdb.Column{
						{Name: "order_id", Type: "bigint", Nullable: false},
					},
					RowCount:    &rowCount,
					Description: "orders placed by customers",
					ExtractedAt: extractedAt,
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/proj-1/metadata")
		c.SetPath("/api/projects/:projectId/metadata")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.GetProjectMetadataHandler(dbproj, dbmeta)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := apimeta.ProjectMetadata{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not project metadata: %s", err)
		}
		if actual.ProjectId != "proj-1" || actual.ProjectName != "churn-analysis" {
			t.Errorf("unexpected project header: %#v", actual)
		}
		if len(actual.DataSources) != 1 {
			t.Errorf("data sources are not exposed: %#v", actual.DataSources)
		}
		summary, ok := actual.Tables["hive.sales.orders"]
		if !ok {
			t.Fatalf("table metadata is not keyed by its full name: %#v", actual.Tables)
		}
		if summary.Description != "orders placed by customers" ||
			summary.RowCount == nil || *summary.RowCount != 120 {
			t.Errorf("unexpected summary: %#v", summary)
		}
	})

	t.Run("when the project is missing, it responds not found", func(t *testing.T) {
		dbproj := dbmock.NewProjectInterface()
		dbproj.Impl.Get = func(context.Context, []string) (map[string]kdb.Project, error) {
			return map[string]kdb.Project{}, nil
		}
		dbmeta := dbmock.NewMetadataInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/projects/proj-missing/metadata")
		c.SetPath("/api/projects/:projectId/metadata")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-missing")

		testee := handlers.GetProjectMetadataHandler(dbproj, dbmeta)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
		if dbmeta.Calls.GetForProject.Times() != 0 {
			t.Error("metadata should not be read for a missing project")
		}
	})
}

func TestGetTableMetadataHandler(t *testing.T) {

	t.Run("when no metadata is stored for the table, it responds not found", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Get = func(context.Context, string, kdb.TableRef) (kdb.TableMetadata, error) {
			return kdb.TableMetadata{}, kdb.ErrMissing
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/projects/proj-1/metadata/hive/sales/ghost")
		c.SetPath("/api/projects/:projectId/metadata/:catalog/:schema/:table")
		c.SetParamNames("projectId", "catalog", "schema", "table")
		c.SetParamValues("proj-1", "hive", "sales", "ghost")

		testee := handlers.GetTableMetadataHandler(dbmeta)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}

		if dbmeta.Calls.Get.Times() != 1 {
			t.Fatalf("Get is called %d times, expected once", dbmeta.Calls.Get.Times())
		}
		expected := kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "ghost"}
		if dbmeta.Calls.Get[0].Ref != expected {
			t.Errorf("unmatch ref: actual = %+v, expected = %+v", dbmeta.Calls.Get[0].Ref, expected)
		}
	})

	t.Run("it responds the stored metadata", func(t *testing.T) {
		extractedAt := try.To(
			time.Parse(time.RFC3339, "2025-10-02T10:00:00+00:00"),
		).OrFatal(t)

		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Get = func(ctx context.Context, projectId string, ref kdb.TableRef) (kdb.TableMetadata, error) {
			return kdb.TableMetadata{
				ProjectId: projectId, ConnectionId: "conn-1", TableRef: ref,
				Columns: []kdb.Column{
					{Name: "order_id", Type: "bigint", Nullable: false},
				},
				SampleData:  []map[string]*string{},
				ExtractedAt: extractedAt,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/proj-1/metadata/hive/sales/orders")
		c.SetPath("/api/projects/:projectId/metadata/:catalog/:schema/:table")
		c.SetParamNames("projectId", "catalog", "schema", "table")
		c.SetParamValues("proj-1", "hive", "sales", "orders")

		testee := handlers.GetTableMetadataHandler(dbmeta)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := apimeta.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not table metadata: %s", err)
		}
		if actual.Table != "orders" || len(actual.Columns) != 1 {
			t.Errorf("unexpected detail: %#v", actual)
		}
	})
}

func TestDeleteTableMetadataHandler(t *testing.T) {

	t.Run("it deletes the stored metadata and responds no content", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Delete = func(context.Context, string, kdb.TableRef) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/projects/proj-1/metadata/hive/sales/orders")
		c.SetPath("/api/projects/:projectId/metadata/:catalog/:schema/:table")
		c.SetParamNames("projectId", "catalog", "schema", "table")
		c.SetParamValues("proj-1", "hive", "sales", "orders")

		testee := handlers.DeleteTableMetadataHandler(dbmeta)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Code != http.StatusNoContent {
			t.Errorf("unmatch status code:%d, expected:%d", respRec.Code, http.StatusNoContent)
		}

		if dbmeta.Calls.Delete.Times() != 1 {
			t.Fatalf("Delete is called %d times, expected once", dbmeta.Calls.Delete.Times())
		}
		deleted := dbmeta.Calls.Delete[0]
		expected := kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"}
		if deleted.ProjectId != "proj-1" || deleted.Ref != expected {
			t.Errorf("unmatch deletion: actual = %+v", deleted)
		}
	})

	t.Run("when no metadata is stored for the table, it responds not found", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Delete = func(context.Context, string, kdb.TableRef) error {
			return kdb.ErrMissing
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/projects/proj-1/metadata/hive/sales/ghost")
		c.SetPath("/api/projects/:projectId/metadata/:catalog/:schema/:table")
		c.SetParamNames("projectId", "catalog", "schema", "table")
		c.SetParamValues("proj-1", "hive", "sales", "ghost")

		testee := handlers.DeleteTableMetadataHandler(dbmeta)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestExtractBatchHandler(t *testing.T) {

	conn := kdb.Connection{
		ConnectionId: "conn-1", Host: "trino.example.com", Port: 8080, User: "analyst",
	}

	projectGetter := func(skipEnrich bool) *dbmock.ProjectInterface {
		dbproj := dbmock.NewProjectInterface()
		dbproj.Impl.Get = func(context.Context, []string) (map[string]kdb.Project, error) {
			return map[string]kdb.Project{
				"proj-1": {ProjectId: "proj-1", Name: "churn-analysis", SkipEnrich: skipEnrich},
			}, nil
		}
		return dbproj
	}
	connectionGetter := func() *dbmock.ConnectionInterface {
		dbconn := dbmock.NewConnectionInterface()
		dbconn.Impl.Get = func(context.Context, []string) (map[string]kdb.Connection, error) {
			return map[string]kdb.Connection{"conn-1": conn}, nil
		}
		return dbconn
	}

	batchBody := []byte(`{
		"connectionId": "conn-1",
		"tables": [
			{"catalog": "hive", "schema": "sales", "table": "orders"},
			{"catalog": "hive", "schema": "sales", "table": "ghost"}
		]
	}`)

	t.Run("it extracts, enriches and stores each table, reporting failures", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Upsert = func(context.Context, kdb.TableMetadata) error { return nil }

		extractor := trinomock.NewExtractor()
		extractor.Impl.ExtractTable = func(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error) {
			if ref.Table == "ghost" {
				return kdb.TableMetadata{}, errors.New("no such table: hive.sales.ghost")
			}
			return kdb.TableMetadata{
				ConnectionId: conn.ConnectionId, TableRef: ref,
				Columns: []kdb.Column{{Name: "order_id", Type: "bigint"}},
			}, nil
		}

		enricher := enrichmock.NewEnricher()
		enricher.Impl.Enrich = func(ctx context.Context, m kdb.TableMetadata) (kdb.TableMetadata, error) {
			m.Description = "enriched"
			return m, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/projects/proj-1/metadata/batch",
			bytes.NewReader(batchBody),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/api/projects/:projectId/metadata/batch")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.ExtractBatchHandler(
			projectGetter(false), connectionGetter(), dbmeta, extractor, enricher,
		)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if respRec.Code != http.StatusOK {
			t.Errorf("unmatch status code:%d, expected:%d", respRec.Code, http.StatusOK)
		}

		actual := apimeta.BatchResult{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a batch result: %s", err)
		}
		if actual.TotalProcessed != 2 {
			t.Errorf("unmatch totalProcessed:%d, expected:2", actual.TotalProcessed)
		}
		if len(actual.Successful) != 1 || actual.Successful[0].Table != "orders" {
			t.Errorf("unexpected successful tables: %#v", actual.Successful)
		}
		if actual.Successful[0].Description != "enriched" {
			t.Errorf("enrichment is not applied: %#v", actual.Successful[0])
		}
		if len(actual.Failed) != 1 || actual.Failed[0].Table != "ghost" {
			t.Errorf("unexpected failed tables: %#v", actual.Failed)
		}

		if dbmeta.Calls.Upsert.Times() != 1 {
			t.Errorf("Upsert is called %d times, expected once", dbmeta.Calls.Upsert.Times())
		}
		if dbmeta.Calls.Upsert[0].ProjectId != "proj-1" {
			t.Errorf("stored metadata is not bound to the project: %#v", dbmeta.Calls.Upsert[0])
		}
	})

	t.Run("when the project skips enrichment, the enricher is not asked", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Upsert = func(context.Context, kdb.TableMetadata) error { return nil }

		extractor := trinomock.NewExtractor()
		extractor.Impl.ExtractTable = func(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error) {
			return kdb.TableMetadata{ConnectionId: conn.ConnectionId, TableRef: ref}, nil
		}

		enricher := enrichmock.NewEnricher()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/projects/proj-1/metadata/batch",
			bytes.NewReader([]byte(`{"connectionId": "conn-1", "tables": [{"catalog": "hive", "schema": "sales", "table": "orders"}]}`)),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/api/projects/:projectId/metadata/batch")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.ExtractBatchHandler(
			projectGetter(true), connectionGetter(), dbmeta, extractor, enricher,
		)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if len(enricher.Calls.Enrich) != 0 {
			t.Errorf("Enrich is called %d times, expected never", len(enricher.Calls.Enrich))
		}
		if dbmeta.Calls.Upsert.Times() != 1 {
			t.Errorf("Upsert is called %d times, expected once", dbmeta.Calls.Upsert.Times())
		}
	})

	t.Run("when enrichment fails, the raw metadata is stored anyway", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		dbmeta.Impl.Upsert = func(context.Context, kdb.TableMetadata) error { return nil }

		extractor := trinomock.NewExtractor()
		extractor.Impl.ExtractTable = func(ctx context.Context, conn kdb.Connection, ref kdb.TableRef) (kdb.TableMetadata, error) {
			return kdb.TableMetadata{
				ConnectionId: conn.ConnectionId, TableRef: ref,
				Columns: []kdb.Column{{Name: "order_id", Type: "bigint"}},
			}, nil
		}

		enricher := enrichmock.NewEnricher()
		enricher.Impl.Enrich = func(context.Context, kdb.TableMetadata) (kdb.TableMetadata, error) {
			return kdb.TableMetadata{}, errors.New("model is unreachable")
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/projects/proj-1/metadata/batch",
			bytes.NewReader([]byte(`{"connectionId": "conn-1", "tables": [{"catalog": "hive", "schema": "sales", "table": "orders"}]}`)),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/api/projects/:projectId/metadata/batch")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.ExtractBatchHandler(
			projectGetter(false), connectionGetter(), dbmeta, extractor, enricher,
		)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := apimeta.BatchResult{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a batch result: %s", err)
		}
		if len(actual.Successful) != 1 || len(actual.Failed) != 0 {
			t.Errorf("an enrichment failure should not fail the table: %#v", actual)
		}

		if dbmeta.Calls.Upsert.Times() != 1 {
			t.Fatalf("Upsert is called %d times, expected once", dbmeta.Calls.Upsert.Times())
		}
		if stored := dbmeta.Calls.Upsert[0]; len(stored.Columns) != 1 || stored.Description != "" {
			t.Errorf("raw metadata should be stored as extracted: %#v", stored)
		}
	})

	t.Run("when the batch is empty, it responds bad request", func(t *testing.T) {
		dbmeta := dbmock.NewMetadataInterface()
		extractor := trinomock.NewExtractor()
		enricher := enrichmock.NewEnricher()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/projects/proj-1/metadata/batch",
			bytes.NewReader([]byte(`{"connectionId": "conn-1", "tables": []}`)),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/api/projects/:projectId/metadata/batch")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.ExtractBatchHandler(
			projectGetter(false), connectionGetter(), dbmeta, extractor, enricher,
		)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
		if extractor.Calls.ExtractTable.Times() != 0 {
			t.Error("nothing should be extracted for an empty batch")
		}
	})
}

func TestFindTaskHandler(t *testing.T) {

	t.Run("it responds the project's tasks", func(t *testing.T) {
		createdAt := try.To(
			time.Parse(time.RFC3339, "2025-10-02T11:00:00+00:00"),
		).OrFatal(t)

		dbproj := dbmock.NewProjectInterface()
		dbproj.Impl.Get = func(context.Context, []string) (map[string]kdb.Project, error) {
			return map[string]kdb.Project{
				"proj-1": {ProjectId: "proj-1", Name: "churn-analysis"},
			}, nil
		}

		dbtask := dbmock.NewTaskInterface()
		dbtask.Impl.Find = func(ctx context.Context, projectId string) ([]kdb.ExtractionTask, error) {
			return []kdb.ExtractionTask{
				{
					TaskId: "task-1", ProjectId: projectId, ConnectionId: "conn-1",
					TableRef: kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
					Status:   kdb.TaskDone,
					CreatedAt: createdAt, UpdatedAt: createdAt,
				},
				{
					TaskId: "task-2", ProjectId: projectId, ConnectionId: "conn-1",
					TableRef: kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "ghost"},
					Status:   kdb.TaskFailed, Error: "no such table",
					CreatedAt: createdAt, UpdatedAt: createdAt,
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/proj-1/tasks")
		c.SetPath("/api/projects/:projectId/tasks")
		c.SetParamNames("projectId")
		c.SetParamValues("proj-1")

		testee := handlers.FindTaskHandler(dbproj, dbtask)
		if err := testee(c); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		actual := []apitasks.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a task listing: %s", err)
		}
		if len(actual) != 2 {
			t.Fatalf("unmatch task count:%d, expected:2", len(actual))
		}
		if actual[0].TaskId != "task-1" || actual[0].Status != "done" {
			t.Errorf("unexpected task: %#v", actual[0])
		}
		if actual[1].Status != "failed" || actual[1].Error != "no such table" {
			t.Errorf("failed task should carry its error: %#v", actual[1])
		}
	})
}
