package mocks

import (
	"context"
	"errors"

	kdb "github.com/nitikab23/autoai/pkg/db"
)

type ConnectionInterface struct {
	Impl struct {
		Register func(context.Context, kdb.ConnectionParam) (kdb.Connection, error)
		Get      func(context.Context, []string) (map[string]kdb.Connection, error)
		Find     func(context.Context) ([]string, error)
		Delete   func(context.Context, string) error
	}
	Calls struct {
		Register CallLog[kdb.ConnectionParam]
		Get      CallLog[struct{ ConnectionId []string }]
		Find     CallLog[struct{}]
		Delete   CallLog[struct{ ConnectionId string }]
	}
}

func NewConnectionInterface() *ConnectionInterface {
	return &ConnectionInterface{}
}

var _ kdb.ConnectionInterface = &ConnectionInterface{}

func (ci *ConnectionInterface) Register(ctx context.Context, param kdb.ConnectionParam) (kdb.Connection, error) {
	ci.Calls.Register = append(ci.Calls.Register, param)
	if ci.Impl.Register != nil {
		return ci.Impl.Register(ctx, param)
	}
	panic(errors.New("it should not be called"))
}

func (ci *ConnectionInterface) Get(ctx context.Context, connectionIds []string) (map[string]kdb.Connection, error) {
	ci.Calls.Get = append(ci.Calls.Get, struct{ ConnectionId []string }{ConnectionId: connectionIds})
	if ci.Impl.Get != nil {
		return ci.Impl.Get(ctx, connectionIds)
	}
	panic(errors.New("it should not be called"))
}

func (ci *ConnectionInterface) Find(ctx context.Context) ([]string, error) {
	ci.Calls.Find = append(ci.Calls.Find, struct{}{})
	if ci.Impl.Find != nil {
		return ci.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (ci *ConnectionInterface) Delete(ctx context.Context, connectionId string) error {
	ci.Calls.Delete = append(ci.Calls.Delete, struct{ ConnectionId string }{ConnectionId: connectionId})
	if ci.Impl.Delete != nil {
		return ci.Impl.Delete(ctx, connectionId)
	}
	panic(errors.New("it should not be called"))
}
