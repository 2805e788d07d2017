package worker

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WorkerConfig is the sealed configuration of the extraction worker.
type WorkerConfig struct {
	database    string
	interval    time.Duration
	taskTimeout time.Duration
	source      string

	openaiAPIKey  string
	openaiModel   string
	openaiBaseURL string
}

func (c *WorkerConfig) Database() string {
	return c.database
}

// Interval between polls of the task queue when it is empty.
func (c *WorkerConfig) Interval() time.Duration {
	return c.interval
}

// TaskTimeout bounds one pass over the queue, extraction included.
func (c *WorkerConfig) TaskTimeout() time.Duration {
	return c.taskTimeout
}

func (c *WorkerConfig) Source() string {
	return c.source
}

func (c *WorkerConfig) OpenAIAPIKey() string {
	return c.openaiAPIKey
}

func (c *WorkerConfig) OpenAIModel() string {
	return c.openaiModel
}

func (c *WorkerConfig) OpenAIBaseURL() string {
	return c.openaiBaseURL
}

type WorkerConfigMarshall struct {
	Database    string `yaml:"database"`
	Interval    string `yaml:"interval,omitempty"`
	TaskTimeout string `yaml:"taskTimeout,omitempty"`
	Trino       struct {
		Source string `yaml:"source,omitempty"`
	} `yaml:"trino,omitempty"`
	OpenAI struct {
		APIKey  string `yaml:"apiKey,omitempty"`
		Model   string `yaml:"model,omitempty"`
		BaseURL string `yaml:"baseURL,omitempty"`
	} `yaml:"openai,omitempty"`
}

// TrySeal verifies the marshalled config and seals it.
//
// IT WILL PANIC if any misconfiguration is found.
func (m *WorkerConfigMarshall) TrySeal() *WorkerConfig {
	database := m.Database
	if database == "" {
		database = os.Getenv("AUTOAI_DATABASE")
	}
	if database == "" {
		panic("(root).database: no connection string (nor environment variable AUTOAI_DATABASE)")
	}

	interval := 10 * time.Second
	if m.Interval != "" {
		parsed, err := time.ParseDuration(m.Interval)
		if err != nil {
			panic(fmt.Sprintf("(root).interval: %s", err))
		}
		interval = parsed
	}

	taskTimeout := 5 * time.Minute
	if m.TaskTimeout != "" {
		parsed, err := time.ParseDuration(m.TaskTimeout)
		if err != nil {
			panic(fmt.Sprintf("(root).taskTimeout: %s", err))
		}
		taskTimeout = parsed
	}

	source := m.Trino.Source
	if source == "" {
		source = "autoai-extractor"
	}

	apiKey := m.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return &WorkerConfig{
		database:      database,
		interval:      interval,
		taskTimeout:   taskTimeout,
		source:        source,
		openaiAPIKey:  apiKey,
		openaiModel:   m.OpenAI.Model,
		openaiBaseURL: m.OpenAI.BaseURL,
	}
}

// load the worker config from a file.
func LoadWorkerConfig(filepath string) (*WorkerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *WorkerConfig, err error) {
	var _out *WorkerConfigMarshall
	if err = yaml.Unmarshal(conf, &_out); err != nil {
		return nil, err
	}
	if _out == nil {
		_out = &WorkerConfigMarshall{}
	}
	return _out.TrySeal(), nil
}
