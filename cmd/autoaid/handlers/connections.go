package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apiconn "github.com/nitikab23/autoai-api-types/connections"
	bindconn "github.com/nitikab23/autoai/pkg/api-types-binding/connections"
	apierr "github.com/nitikab23/autoai/pkg/api-types-binding/errors"
	kdb "github.com/nitikab23/autoai/pkg/db"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
	"github.com/nitikab23/autoai/pkg/trino/catalog"
)

// RegisterConnectionHandler handles POST /api/connections.
//
// Unless the spec opts out with verify=false, the coordinator is pinged
// before anything is saved.
func RegisterConnectionHandler(dbConn kdb.ConnectionInterface, pinger ktrino.Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apiconn.Spec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("connection spec is required as JSON", err)
		}

		param := bindconn.AsParam(spec)
		if param.Verify {
			validated, err := param.Validate()
			if err != nil {
				return apierr.BadRequest("invalid connection spec", err)
			}
			probe := kdb.Connection{
				Host:       validated.Host,
				Port:       validated.Port,
				User:       validated.User,
				Password:   validated.Password,
				HTTPScheme: validated.HTTPScheme,
				Verify:     validated.Verify,
				Catalog:    validated.Catalog,
				Schema:     validated.Schema,
			}
			if err := pinger.Ping(ctx, probe); err != nil {
				return apierr.BadRequest("connection cannot reach a Trino coordinator", err)
			}
		}

		registered, err := dbConn.Register(ctx, param)
		if err != nil {
			if errors.Is(err, kdb.ErrInvalidArgument) {
				return apierr.BadRequest("invalid connection spec", err)
			}
			if errors.Is(err, kdb.ErrAlreadyExists) {
				return apierr.Conflict("connection name is already used", apierr.WithError(err))
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindconn.ComposeSummary(registered))
	}
}

// FindConnectionHandler handles GET /api/connections.
func FindConnectionHandler(dbConn kdb.ConnectionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		connectionIds, err := dbConn.Find(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		connections, err := dbConn.Get(ctx, connectionIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		resp := []apiconn.Summary{}
		for _, connectionId := range connectionIds {
			if conn, ok := connections[connectionId]; ok {
				resp = append(resp, bindconn.ComposeSummary(conn))
			}
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// GetConnectionHandler handles GET /api/connections/:connectionId.
func GetConnectionHandler(dbConn kdb.ConnectionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		connectionId := c.Param("connectionId")

		conn, err := getConnection(ctx, dbConn, connectionId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, bindconn.ComposeSummary(conn))
	}
}

// DeleteConnectionHandler handles DELETE /api/connections/:connectionId.
func DeleteConnectionHandler(dbConn kdb.ConnectionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		connectionId := c.Param("connectionId")

		if err := dbConn.Delete(ctx, connectionId); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// ListCatalogsHandler handles GET /api/connections/:connectionId/catalogs.
func ListCatalogsHandler(dbConn kdb.ConnectionInterface, browser catalog.Browser) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		conn, err := getConnection(ctx, dbConn, c.Param("connectionId"))
		if err != nil {
			return err
		}

		catalogs, err := browser.ListCatalogs(ctx, conn)
		if err != nil {
			return apierr.BadGateway("cannot list catalogs via the connection", err)
		}

		return c.JSON(http.StatusOK, apiconn.Catalogs{Catalogs: catalogs})
	}
}

// ListSchemasHandler handles GET /api/connections/:connectionId/catalogs/:catalog/schemas.
func ListSchemasHandler(dbConn kdb.ConnectionInterface, browser catalog.Browser) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		conn, err := getConnection(ctx, dbConn, c.Param("connectionId"))
		if err != nil {
			return err
		}

		cat := c.Param("catalog")
		schemas, err := browser.ListSchemas(ctx, conn, cat)
		if err != nil {
			return apierr.BadGateway("cannot list schemas via the connection", err)
		}

		return c.JSON(http.StatusOK, apiconn.Schemas{Catalog: cat, Schemas: schemas})
	}
}

// ListTablesHandler handles GET /api/connections/:connectionId/catalogs/:catalog/schemas/:schema/tables.
func ListTablesHandler(dbConn kdb.ConnectionInterface, browser catalog.Browser) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		conn, err := getConnection(ctx, dbConn, c.Param("connectionId"))
		if err != nil {
			return err
		}

		cat, schema := c.Param("catalog"), c.Param("schema")
		tables, err := browser.ListTables(ctx, conn, cat, schema)
		if err != nil {
			return apierr.BadGateway("cannot list tables via the connection", err)
		}

		return c.JSON(http.StatusOK, apiconn.Tables{
			Catalog: cat, Schema: schema, Tables: tables,
		})
	}
}

func getConnection(ctx context.Context, dbConn kdb.ConnectionInterface, connectionId string) (kdb.Connection, error) {
	connections, err := dbConn.Get(ctx, []string{connectionId})
	if err != nil {
		return kdb.Connection{}, apierr.InternalServerError(err)
	}
	conn, ok := connections[connectionId]
	if !ok {
		return kdb.Connection{}, apierr.NotFound()
	}
	return conn, nil
}
