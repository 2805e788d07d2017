package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
)

type MetadataInterface struct {
	Impl struct {
		Upsert        func(context.Context, kdb.TableMetadata) error
		Get           func(context.Context, string, kdb.TableRef) (kdb.TableMetadata, error)
		GetForProject func(context.Context, string) (map[string]kdb.TableMetadata, error)
		Delete        func(context.Context, string, kdb.TableRef) error
	}
	Calls struct {
		Upsert CallLog[kdb.TableMetadata]
		Get    CallLog[struct {
			ProjectId string
			Ref       kdb.TableRef
		}]
		GetForProject CallLog[struct{ ProjectId string }]
		Delete        CallLog[struct {
			ProjectId string
			Ref       kdb.TableRef
		}]
	}
}

func NewMetadataInterface() *MetadataInterface {
	return &MetadataInterface{}
}

var _ kdb.MetadataInterface = &MetadataInterface{}

func (mi *MetadataInterface) Upsert(ctx context.Context, metadata kdb.TableMetadata) error {
	mi.Calls.Upsert = append(mi.Calls.Upsert, metadata)
	if mi.Impl.Upsert != nil {
		return mi.Impl.Upsert(ctx, metadata)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MetadataInterface) Get(ctx context.Context, projectId string, ref kdb.TableRef) (kdb.TableMetadata, error) {
	mi.Calls.Get = append(mi.Calls.Get, struct {
		ProjectId string
		Ref       kdb.TableRef
	}{ProjectId: projectId, Ref: ref})
	if mi.Impl.Get != nil {
		return mi.Impl.Get(ctx, projectId, ref)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MetadataInterface) GetForProject(ctx context.Context, projectId string) (map[string]kdb.TableMetadata, error) {
	mi.Calls.GetForProject = append(mi.Calls.GetForProject, struct{ ProjectId string }{ProjectId: projectId})
	if mi.Impl.GetForProject != nil {
		return mi.Impl.GetForProject(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MetadataInterface) Delete(ctx context.Context, projectId string, ref kdb.TableRef) error {
	mi.Calls.Delete = append(mi.Calls.Delete, struct {
		ProjectId string
		Ref       kdb.TableRef
	}{ProjectId: projectId, Ref: ref})
	if mi.Impl.Delete != nil {
		return mi.Impl.Delete(ctx, projectId, ref)
	}
	panic(errors.New("it should not be called"))
}
