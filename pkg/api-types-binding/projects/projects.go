package projects

import (
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
	apiproj "github.com/nitikab23/autoai-api-types/projects"
	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/utils"
)

func ComposeSummary(p kdb.Project) apiproj.Summary {
	return apiproj.Summary{
		ProjectId:       p.ProjectId,
		Name:            p.Name,
		Description:     p.Description,
		SkipEnrich:      p.SkipEnrich,
		DataSourceCount: len(p.DataSources),
		CreatedAt:       rfctime.New(p.CreatedAt),
		UpdatedAt:       rfctime.New(p.UpdatedAt),
	}
}

func ComposeDetail(p kdb.Project) apiproj.Detail {
	return apiproj.Detail{
		Summary:     ComposeSummary(p),
		DataSources: utils.Map(p.DataSources, ComposeDataSource),
	}
}

func ComposeDataSource(d kdb.DataSource) apiproj.DataSource {
	tables := d.Tables
	if tables == nil {
		tables = []string{}
	}
	return apiproj.DataSource{
		DataSourceId: d.DataSourceId,
		ConnectionId: d.ConnectionId,
		Catalog:      d.Catalog,
		Schema:       d.Schema,
		Tables:       tables,
		CreatedAt:    rfctime.New(d.CreatedAt),
	}
}

func AsParam(s apiproj.Spec) kdb.ProjectParam {
	return kdb.ProjectParam{
		Name:        s.Name,
		Description: s.Description,
		SkipEnrich:  s.SkipEnrich,
	}
}

func AsDataSourceParam(s apiproj.DataSourceSpec) kdb.DataSourceParam {
	return kdb.DataSourceParam{
		ConnectionId: s.ConnectionId,
		Catalog:      s.Catalog,
		Schema:       s.Schema,
		Tables:       s.Tables,
	}
}
