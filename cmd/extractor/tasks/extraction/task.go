package extraction

import (
	"context"
	"fmt"
	"log"

	"github.com/nitikab23/autoai/cmd/extractor/recurring"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/enrich"
	"github.com/nitikab23/autoai/pkg/trino/extract"
)

// Stats counts what the worker has done so far.
type Stats struct {
	Processed int
}

// initial value for task
func Seed() Stats {
	return Stats{}
}

// Task drains the extraction queue, one task per cycle.
//
// A task failing (unreachable coordinator, dropped table, ...) is
// recorded on the task itself and does not stop the loop. Only
// database trouble breaks it.
func Task(
	dbTask kdb.TaskInterface,
	dbConn kdb.ConnectionInterface,
	dbProj kdb.ProjectInterface,
	dbMeta kdb.MetadataInterface,
	extractor extract.Extractor,
	enricher enrich.Enricher,
	logger *log.Logger,
) recurring.Task[Stats] {
	return func(ctx context.Context, stats Stats) (Stats, bool, error) {
		picked, err := dbTask.PickAndRun(ctx, func(t kdb.ExtractionTask) error {
			logger.Printf("extracting %s (task %s)", t.TableRef.String(), t.TaskId)

			connections, err := dbConn.Get(ctx, []string{t.ConnectionId})
			if err != nil {
				return err
			}
			conn, ok := connections[t.ConnectionId]
			if !ok {
				return fmt.Errorf("%w: connection %s", kdb.ErrMissing, t.ConnectionId)
			}

			projects, err := dbProj.Get(ctx, []string{t.ProjectId})
			if err != nil {
				return err
			}
			project, ok := projects[t.ProjectId]
			if !ok {
				return fmt.Errorf("%w: project %s", kdb.ErrMissing, t.ProjectId)
			}

			extracted, err := extractor.ExtractTable(ctx, conn, t.TableRef)
			if err != nil {
				return err
			}
			extracted.ProjectId = project.ProjectId

			if !project.SkipEnrich {
				if enriched, err := enricher.Enrich(ctx, extracted); err == nil {
					extracted = enriched
				} else {
					logger.Printf(
						"enrichment failed for %s (keeping raw metadata): %s",
						t.TableRef.String(), err,
					)
				}
			}

			return dbMeta.Upsert(ctx, extracted)
		})
		if err != nil {
			return stats, false, err
		}
		if picked {
			stats.Processed += 1
		}
		return stats, picked, nil
	}
}
