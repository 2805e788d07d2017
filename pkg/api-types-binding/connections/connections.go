package connections

import (
	apiconn "github.com/nitikab23/autoai-api-types/connections"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
	kdb "github.com/nitikab23/autoai/pkg/db"
)

// ComposeSummary renders a stored connection for the API.
//
// The password intentionally does not survive the trip.
func ComposeSummary(c kdb.Connection) apiconn.Summary {
	return apiconn.Summary{
		ConnectionId: c.ConnectionId,
		Name:         c.Name,
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		HTTPScheme:   c.HTTPScheme,
		Verify:       c.Verify,
		Catalog:      c.Catalog,
		Schema:       c.Schema,
		CreatedAt:    rfctime.New(c.CreatedAt),
	}
}

// AsParam converts an API spec into registration parameters.
func AsParam(s apiconn.Spec) kdb.ConnectionParam {
	verify := true
	if s.Verify != nil {
		verify = *s.Verify
	}
	return kdb.ConnectionParam{
		Name:       s.Name,
		Host:       s.Host,
		Port:       s.Port,
		User:       s.User,
		Password:   s.Password,
		HTTPScheme: s.HTTPScheme,
		Verify:     verify,
		Catalog:    s.Catalog,
		Schema:     s.Schema,
	}
}
