// Package enrich generates natural-language descriptions of extracted
// table metadata with an LLM.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

var ErrEmptyCompletion = errors.New("the model returned no completion")

// Enricher fills Description fields of metadata.
//
// Enrichment is best effort: callers should log failures and keep the
// unenriched metadata rather than fail the extraction.
type Enricher interface {
	Enrich(ctx context.Context, metadata kdb.TableMetadata) (kdb.TableMetadata, error)
}

type Option func(*openaiEnricher) *openaiEnricher

func WithModel(model string) Option {
	return func(e *openaiEnricher) *openaiEnricher {
		e.model = model
		return e
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(e *openaiEnricher) *openaiEnricher {
		e.baseURL = baseURL
		return e
	}
}

type openaiEnricher struct {
	client  *openai.Client
	model   string
	baseURL string
}

func New(apiKey string, options ...Option) Enricher {
	e := &openaiEnricher{model: DefaultModel}
	for _, opt := range options {
		e = opt(e)
	}

	config := openai.DefaultConfig(apiKey)
	if e.baseURL != "" {
		config.BaseURL = e.baseURL
	}
	e.client = openai.NewClientWithConfig(config)

	return e
}

var _ Enricher = &openaiEnricher{}

type completionPayload struct {
	TableDescription   string            `json:"table_description"`
	ColumnDescriptions map[string]string `json:"column_descriptions"`
}

func (e *openaiEnricher) Enrich(ctx context.Context, metadata kdb.TableMetadata) (kdb.TableMetadata, error) {
	resp, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.model,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: `You are a data catalog assistant. ` +
						`Given the structure and sample rows of a database table, respond with a JSON object ` +
						`{"table_description": string, "column_descriptions": {column name: string}}. ` +
						`Descriptions are one or two sentences about the business meaning of the data.`,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: Prompt(metadata),
				},
			},
		},
	)
	if err != nil {
		return metadata, err
	}
	if len(resp.Choices) == 0 {
		return metadata, ErrEmptyCompletion
	}

	var payload completionPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return metadata, fmt.Errorf("unparsable completion: %w", err)
	}

	return Apply(metadata, payload.TableDescription, payload.ColumnDescriptions), nil
}

// Prompt renders metadata as the user message sent to the model.
func Prompt(metadata kdb.TableMetadata) string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Table: %s\n", metadata.TableRef.String())
	if metadata.RowCount != nil {
		fmt.Fprintf(sb, "Rows: %d\n", *metadata.RowCount)
	}
	sb.WriteString("Columns:\n")
	for _, col := range metadata.Columns {
		fmt.Fprintf(sb, "- %s (%s", col.Name, col.Type)
		if col.Nullable {
			sb.WriteString(", nullable")
		}
		sb.WriteString(")")
		if 0 < len(col.SampleValues) {
			fmt.Fprintf(sb, " e.g. %s", strings.Join(col.SampleValues, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Apply writes descriptions into a copy of metadata.
//
// Columns the model did not mention keep their previous description.
func Apply(metadata kdb.TableMetadata, tableDescription string, columnDescriptions map[string]string) kdb.TableMetadata {
	if tableDescription != "" {
		metadata.Description = tableDescription
	}

	columns := make([]kdb.Column, len(metadata.Columns))
	copy(columns, metadata.Columns)
	for i, col := range columns {
		if desc, ok := columnDescriptions[col.Name]; ok && desc != "" {
			columns[i].Description = desc
		}
	}
	metadata.Columns = columns

	return metadata
}

// Null returns an Enricher leaving metadata as it is.
//
// Used when no API key is configured or a project opts out.
func Null() Enricher {
	return nullEnricher{}
}

type nullEnricher struct{}

func (nullEnricher) Enrich(_ context.Context, metadata kdb.TableMetadata) (kdb.TableMetadata, error) {
	return metadata, nil
}
