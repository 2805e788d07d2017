package tasks

import (
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
	apitasks "github.com/nitikab23/autoai-api-types/tasks"
	bindmeta "github.com/nitikab23/autoai/pkg/api-types-binding/metadata"
	kdb "github.com/nitikab23/autoai/pkg/db"
)

func ComposeSummary(t kdb.ExtractionTask) apitasks.Summary {
	return apitasks.Summary{
		TaskId:    t.TaskId,
		TableRef:  bindmeta.ComposeTableRef(t.TableRef),
		Status:    t.Status.String(),
		Error:     t.Error,
		CreatedAt: rfctime.New(t.CreatedAt),
		UpdatedAt: rfctime.New(t.UpdatedAt),
	}
}
