package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/enrich"
)

type Enricher struct {
	Impl struct {
		Enrich func(context.Context, kdb.TableMetadata) (kdb.TableMetadata, error)
	}
	Calls struct {
		Enrich []kdb.TableMetadata
	}
}

func NewEnricher() *Enricher {
	return &Enricher{}
}

var _ enrich.Enricher = &Enricher{}

func (e *Enricher) Enrich(ctx context.Context, metadata kdb.TableMetadata) (kdb.TableMetadata, error) {
	e.Calls.Enrich = append(e.Calls.Enrich, metadata)
	if e.Impl.Enrich != nil {
		return e.Impl.Enrich(ctx, metadata)
	}
	panic(errors.New("it should not be called"))
}
