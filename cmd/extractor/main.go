package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nitikab23/autoai/cmd/extractor/recurring"
	"github.com/nitikab23/autoai/cmd/extractor/tasks/extraction"
	configs "github.com/nitikab23/autoai/pkg/configs/worker"
	kpg "github.com/nitikab23/autoai/pkg/db/postgres"
	"github.com/nitikab23/autoai/pkg/enrich"
	"github.com/nitikab23/autoai/pkg/loop"
	ktrino "github.com/nitikab23/autoai/pkg/trino"
	"github.com/nitikab23/autoai/pkg/trino/extract"
	"github.com/nitikab23/autoai/pkg/utils/args"
	"github.com/nitikab23/autoai/pkg/utils/filewatch"
	"github.com/nitikab23/autoai/pkg/utils/try"

	_ "github.com/trinodb/trino-go-client/trino"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	// call cancel() when this function exits
	defer cancel()

	pconfig := flag.String(
		"config", os.Getenv("AUTOAI_WORKER_CONFIG"), "path to config file",
	)
	pSchemaRepo := flag.String(
		"schema-repo", os.Getenv("AUTOAI_SCHEMA"), "schema repository path",
	)
	policy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog).`+
			` "forever[:COOLDOWN]" = run forever until error. When backlog is over, `+
			`wait COOLDOWN (optional duration. default: config interval) as inteval.`+
			` "backlog" = run until error or backlog is over.`,
	)
	flag.Parse()

	{
		// watch config
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(configs.LoadWorkerConfig(*pconfig)).OrFatal(logger)

	db := try.To(kpg.New(
		ctx, conf.Database(), kpg.WithSchemaRepository(*pSchemaRepo),
	)).OrFatal(logger)
	defer db.Close()

	{
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	opener := ktrino.NewOpener(conf.Source())
	extractor := extract.New(opener)

	enricher := enrich.Null()
	if apiKey := conf.OpenAIAPIKey(); apiKey != "" {
		opts := []enrich.Option{}
		if model := conf.OpenAIModel(); model != "" {
			opts = append(opts, enrich.WithModel(model))
		}
		if baseURL := conf.OpenAIBaseURL(); baseURL != "" {
			opts = append(opts, enrich.WithBaseURL(baseURL))
		}
		enricher = enrich.New(apiKey, opts...)
	} else {
		logger.Println("no OpenAI API key. metadata enrichment is disabled.")
	}

	pol := recurring.Policy(recurring.Forever(conf.Interval()))
	if policy.IsSet() {
		pol = policy.Value()
	}
	pol = recurring.UntilError(pol)

	logger.Printf(`start extraction loop /w policy "%s"`, pol.String())

	task := extraction.Task(
		db.Tasks(), db.Connections(), db.Projects(), db.Metadata(),
		extractor, enricher, logger,
	)
	stats, err := loop.Start(
		ctx, extraction.Seed(), task.Applied(pol),
		loop.WithTimeout(conf.TaskTimeout()),
	)

	logger.Printf("extraction loop stopped. processed %d tasks.", stats.Processed)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Fatal(err, " (loop context is cancelled by: ", context.Cause(ctx), ")")
	}
	logger.Fatal(err)
}
