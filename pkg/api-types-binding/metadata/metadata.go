package metadata

import (
	apimeta "github.com/nitikab23/autoai-api-types/metadata"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/utils"
)

func ComposeTableRef(r kdb.TableRef) apimeta.TableRef {
	return apimeta.TableRef{Catalog: r.Catalog, Schema: r.Schema, Table: r.Table}
}

func AsTableRef(r apimeta.TableRef) kdb.TableRef {
	return kdb.TableRef{Catalog: r.Catalog, Schema: r.Schema, Table: r.Table}
}

func ComposeColumn(c kdb.Column) apimeta.Column {
	return apimeta.Column{
		Name:         c.Name,
		Type:         c.Type,
		Nullable:     c.Nullable,
		Description:  c.Description,
		SampleValues: c.SampleValues,
	}
}

func ComposeDetail(m kdb.TableMetadata) apimeta.Detail {
	return apimeta.Detail{
		TableRef:    ComposeTableRef(m.TableRef),
		Columns:     utils.Map(m.Columns, ComposeColumn),
		SampleData:  m.SampleData,
		RowCount:    m.RowCount,
		Description: m.Description,
		ExtractedAt: rfctime.New(m.ExtractedAt),
	}
}

// ComposeSummary drops sample rows for project-wide listings.
func ComposeSummary(m kdb.TableMetadata) apimeta.Summary {
	return apimeta.Summary{
		TableRef:    ComposeTableRef(m.TableRef),
		Columns:     utils.Map(m.Columns, ComposeColumn),
		RowCount:    m.RowCount,
		Description: m.Description,
		ExtractedAt: rfctime.New(m.ExtractedAt),
	}
}
