package frontend

import (
	"fmt"
	"os"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type FrontendConfigMarshall struct {
	Port     int32                 `yaml:"port"`
	Database string                `yaml:"database"`
	Trino    *TrinoConfigMarshall  `yaml:"trino,omitempty"`
	OpenAI   *OpenAIConfigMarshall `yaml:"openai,omitempty"`
	Auth     *AuthConfigMarshall   `yaml:"auth,omitempty"`
}

var _ Marshalled[*FrontendConfig] = &FrontendConfigMarshall{}

func (m *FrontendConfigMarshall) trySeal(path string) *FrontendConfig {
	port := m.Port
	if port == 0 {
		port = 8000
	}

	database := m.Database
	if database == "" {
		database = os.Getenv("AUTOAI_DATABASE")
	}
	if database == "" {
		panic(fmt.Sprintf(
			"%s.database: no connection string (nor environment variable AUTOAI_DATABASE)",
			path,
		))
	}

	trino := m.Trino
	if trino == nil {
		trino = &TrinoConfigMarshall{}
	}
	openai := m.OpenAI
	if openai == nil {
		openai = &OpenAIConfigMarshall{}
	}
	auth := m.Auth
	if auth == nil {
		auth = &AuthConfigMarshall{}
	}

	return &FrontendConfig{
		port:     port,
		database: database,
		trino:    trino.trySeal(path + ".trino"),
		openai:   openai.trySeal(path + ".openai"),
		auth:     auth.trySeal(path + ".auth"),
	}
}

type TrinoConfigMarshall struct {
	Source string `yaml:"source,omitempty"`
}

var _ Marshalled[*TrinoConfig] = &TrinoConfigMarshall{}

func (m *TrinoConfigMarshall) trySeal(string) *TrinoConfig {
	source := m.Source
	if source == "" {
		source = "autoai"
	}
	return &TrinoConfig{source: source}
}

type OpenAIConfigMarshall struct {
	APIKey  string `yaml:"apiKey,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

var _ Marshalled[*OpenAIConfig] = &OpenAIConfigMarshall{}

func (m *OpenAIConfigMarshall) trySeal(string) *OpenAIConfig {
	apiKey := m.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &OpenAIConfig{
		apiKey:  apiKey,
		model:   m.Model,
		baseURL: m.BaseURL,
	}
}

type AuthConfigMarshall struct {
	Secret string `yaml:"secret,omitempty"`
}

var _ Marshalled[*AuthConfig] = &AuthConfigMarshall{}

func (m *AuthConfigMarshall) trySeal(string) *AuthConfig {
	secret := m.Secret
	if secret == "" {
		secret = os.Getenv("AUTOAI_AUTH_SECRET")
	}
	return &AuthConfig{secret: secret}
}
