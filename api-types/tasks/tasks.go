package tasks

import (
	"github.com/nitikab23/autoai-api-types/metadata"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
)

// Summary is the state of one queued extraction task.
type Summary struct {
	TaskId string `json:"taskId"`
	metadata.TableRef
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

func (s Summary) Equal(o Summary) bool {
	return s.TaskId == o.TaskId &&
		s.TableRef.Equal(o.TableRef) &&
		s.Status == o.Status &&
		s.Error == o.Error &&
		s.CreatedAt.Equal(o.CreatedAt) &&
		s.UpdatedAt.Equal(o.UpdatedAt)
}
