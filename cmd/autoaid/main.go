package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nitikab23/autoai/pkg/auth"
	kcf "github.com/nitikab23/autoai/pkg/configs/frontend"
	kdb "github.com/nitikab23/autoai/pkg/db"
	kpg "github.com/nitikab23/autoai/pkg/db/postgres"
	"github.com/nitikab23/autoai/pkg/enrich"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
	"github.com/nitikab23/autoai/pkg/trino/catalog"
	"github.com/nitikab23/autoai/pkg/trino/extract"
	"github.com/nitikab23/autoai/pkg/utils/echoutil"
	"github.com/nitikab23/autoai/pkg/utils/filewatch"
	kstrings "github.com/nitikab23/autoai/pkg/utils/strings"

	"github.com/nitikab23/autoai/cmd/autoaid/handlers"

	_ "github.com/trinodb/trino-go-client/trino"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	pIssueToken := flag.String(
		"issue-token", "",
		"print a bearer token for the given subject and exit, instead of serving",
	)
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcf.LoadFrontendConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	if *pIssueToken != "" {
		secret := conf.Auth().Secret()
		if secret == "" {
			log.Fatal("can not issue a token: no auth secret is configured")
		}
		token, err := auth.Issue([]byte(secret), *pIssueToken, 24*time.Hour)
		if err != nil {
			log.Fatalf("can not issue a token: %s", err)
		}
		fmt.Println(token)
		return
	}

	{
		// restart when the config file changes.
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	api, err := root("/api")
	if err != nil {
		log.Fatalf("api root /api is invalid url or path: %s", err)
	}

	// get dbaccesor
	ctx := context.Background()
	db, err := getDBAccesor(ctx, conf.Database())
	if err != nil {
		log.Fatalf("can not connect to database: %s", err.Error())
	}
	defer db.Close()

	opener := ktrino.NewOpener(conf.Trino().Source())
	browser := catalog.New(opener)
	extractor := extract.New(opener)

	enricher := enrich.Null()
	if apiKey := conf.OpenAI().APIKey(); apiKey != "" {
		opts := []enrich.Option{}
		if model := conf.OpenAI().Model(); model != "" {
			opts = append(opts, enrich.WithModel(model))
		}
		if baseURL := conf.OpenAI().BaseURL(); baseURL != "" {
			opts = append(opts, enrich.WithBaseURL(baseURL))
		}
		enricher = enrich.New(apiKey, opts...)
	} else {
		e.Logger.Warn("no OpenAI API key. metadata enrichment is disabled.")
	}

	if secret := conf.Auth().Secret(); secret != "" {
		e.Use(auth.Middleware([]byte(secret)))
	} else {
		e.Logger.Warn("no auth secret. the API accepts anyone.")
	}

	// handlers
	{
		e.POST(api("connections"), handlers.RegisterConnectionHandler(db.Connections(), ktrino.NewPinger(opener)))
		e.GET(api("connections"), handlers.FindConnectionHandler(db.Connections()))
		e.GET(api("connections/:connectionId/"), handlers.GetConnectionHandler(db.Connections()))
		e.DELETE(api("connections/:connectionId/"), handlers.DeleteConnectionHandler(db.Connections()))

		e.GET(
			api("connections/:connectionId/catalogs"),
			handlers.ListCatalogsHandler(db.Connections(), browser),
		)
		e.GET(
			api("connections/:connectionId/catalogs/:catalog/schemas"),
			handlers.ListSchemasHandler(db.Connections(), browser),
		)
		e.GET(
			api("connections/:connectionId/catalogs/:catalog/schemas/:schema/tables"),
			handlers.ListTablesHandler(db.Connections(), browser),
		)
	}

	{
		e.POST(api("projects"), handlers.RegisterProjectHandler(db.Projects()))
		e.GET(api("projects"), handlers.FindProjectHandler(db.Projects()))
		e.GET(api("projects/:projectId/"), handlers.GetProjectHandler(db.Projects()))
		e.DELETE(api("projects/:projectId/"), handlers.DeleteProjectHandler(db.Projects()))

		e.POST(
			api("projects/:projectId/data-sources"),
			handlers.AddDataSourceHandler(db.Projects(), db.Connections(), db.Tasks(), browser),
		)
		e.GET(
			api("projects/:projectId/tasks"),
			handlers.FindTaskHandler(db.Projects(), db.Tasks()),
		)
	}

	{
		e.GET(
			api("projects/:projectId/metadata"),
			handlers.GetProjectMetadataHandler(db.Projects(), db.Metadata()),
		)
		e.GET(
			api("projects/:projectId/metadata/:catalog/:schema/:table/"),
			handlers.GetTableMetadataHandler(db.Metadata()),
		)
		e.DELETE(
			api("projects/:projectId/metadata/:catalog/:schema/:table/"),
			handlers.DeleteTableMetadataHandler(db.Metadata()),
		)
		e.POST(
			api("projects/:projectId/metadata/batch"),
			handlers.ExtractBatchHandler(
				db.Projects(), db.Connections(), db.Metadata(), extractor, enricher,
			),
		)
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(fmt.Sprintf(":%d", conf.Port()), cert, key))
	} else {
		e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Port())))
	}
}

func getDBAccesor(ctx context.Context, dburi string) (kdb.AutoAIDatabase, error) {
	return kpg.New(ctx, dburi)
}

// create api URL factory
//
// args:
//   - root: api root
//
// return:
// - func: it receive relative path from root, and returns full-path of URL.
func root(r string) (func(...string) string, error) {
	//    when r is https://example.org:8080/api/root/path
	origin := "" // https://example.org:8080/ . "/" terminated. if r is path only, this is empty.
	base := ""   // /api/root/path
	{
		b, err := url.Parse(r)
		if err != nil {
			return nil, err
		}
		base = b.Path
		if b.Host != "" || b.Scheme != "" {
			_r := *b
			r := &_r
			r.RawPath = ""
			r.Path = ""
			r.RawQuery = ""
			r.Fragment = ""
			origin = r.String()
		}
	}
	origin = kstrings.EnsureSuffix(origin, "/")

	return func(s ...string) string {
		parts := make([]string, len(s)+1)
		parts[0] = base
		copy(parts[1:], s)
		path := path.Join(parts...)
		path = kstrings.TrimPrefixAll(path, "/")

		return kstrings.EnsureSuffix(origin+path, "/")
	}, nil
}
