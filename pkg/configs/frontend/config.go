package frontend

// FrontendConfig is the sealed configuration of the API server.
type FrontendConfig struct {
	port     int32
	database string
	trino    *TrinoConfig
	openai   *OpenAIConfig
	auth     *AuthConfig
}

func (c *FrontendConfig) Port() int32 {
	return c.port
}

// Database is the connection string of the metadata store.
func (c *FrontendConfig) Database() string {
	return c.database
}

func (c *FrontendConfig) Trino() *TrinoConfig {
	return c.trino
}

func (c *FrontendConfig) OpenAI() *OpenAIConfig {
	return c.openai
}

func (c *FrontendConfig) Auth() *AuthConfig {
	return c.auth
}

type TrinoConfig struct {
	source string
}

// Source is reported to coordinators as the query source tag.
func (c *TrinoConfig) Source() string {
	return c.source
}

type OpenAIConfig struct {
	apiKey  string
	model   string
	baseURL string
}

// APIKey may be empty. Then enrichment is disabled.
func (c *OpenAIConfig) APIKey() string {
	return c.apiKey
}

func (c *OpenAIConfig) Model() string {
	return c.model
}

func (c *OpenAIConfig) BaseURL() string {
	return c.baseURL
}

type AuthConfig struct {
	secret string
}

// Secret signs API bearer tokens. Empty disables authentication.
func (c *AuthConfig) Secret() string {
	return c.secret
}
