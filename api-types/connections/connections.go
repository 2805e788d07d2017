package connections

import (
	"github.com/nitikab23/autoai-api-types/internal/utils/cmp"
	"github.com/nitikab23/autoai-api-types/misc/rfctime"
)

// Spec is a request to register a new Trino connection.
type Spec struct {
	Name       string `json:"name"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	User       string `json:"user"`
	Password   string `json:"password,omitempty"`
	HTTPScheme string `json:"httpScheme,omitempty"`
	Verify     *bool  `json:"verify,omitempty"`
	Catalog    string `json:"catalog,omitempty"`
	Schema     string `json:"schema,omitempty"`
}

// Summary is a registered connection as the API exposes it.
//
// Passwords are write-only. They never appear here.
type Summary struct {
	ConnectionId string          `json:"connectionId"`
	Name         string          `json:"name"`
	Host         string          `json:"host"`
	Port         int             `json:"port"`
	User         string          `json:"user"`
	HTTPScheme   string          `json:"httpScheme"`
	Verify       bool            `json:"verify"`
	Catalog      string          `json:"catalog,omitempty"`
	Schema       string          `json:"schema,omitempty"`
	CreatedAt    rfctime.RFC3339 `json:"createdAt"`
}

func (s Summary) Equal(o Summary) bool {
	return s.ConnectionId == o.ConnectionId &&
		s.Name == o.Name &&
		s.Host == o.Host &&
		s.Port == o.Port &&
		s.User == o.User &&
		s.HTTPScheme == o.HTTPScheme &&
		s.Verify == o.Verify &&
		s.Catalog == o.Catalog &&
		s.Schema == o.Schema &&
		s.CreatedAt.Equal(o.CreatedAt)
}

// Catalogs is the listing of catalogs reachable through a connection.
type Catalogs struct {
	Catalogs []string `json:"catalogs"`
}

func (c Catalogs) Equal(o Catalogs) bool {
	return cmp.SliceEq(c.Catalogs, o.Catalogs)
}

type Schemas struct {
	Catalog string   `json:"catalog"`
	Schemas []string `json:"schemas"`
}

func (s Schemas) Equal(o Schemas) bool {
	return s.Catalog == o.Catalog && cmp.SliceEq(s.Schemas, o.Schemas)
}

type Tables struct {
	Catalog string   `json:"catalog"`
	Schema  string   `json:"schema"`
	Tables  []string `json:"tables"`
}

func (t Tables) Equal(o Tables) bool {
	return t.Catalog == o.Catalog &&
		t.Schema == o.Schema &&
		cmp.SliceEq(t.Tables, o.Tables)
}
