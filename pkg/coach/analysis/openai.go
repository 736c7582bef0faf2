package analysis

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

// DefaultOpenAIModel is the model used by OpenAIGenerator when none is set.
const DefaultOpenAIModel = "gpt-4o-mini"

var _ Generator = (*OpenAIGenerator)(nil)

// OpenAIGenerator issues the analysis request through an OpenAI-compatible
// API using the json_schema response format in strict mode.
type OpenAIGenerator struct {
	Client *openai.Client

	// Model defaults to DefaultOpenAIModel.
	Model string
}

// GenerateJSON runs one structured chat completion and returns the raw JSON.
func (g *OpenAIGenerator) GenerateJSON(ctx context.Context, prompt string, schema *jsonschema.Schema) ([]byte, error) {
	model := g.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "debate_analysis",
					Description: param.NewOpt("Structured scoring of a debate practice session"),
					Schema:      any(formatStrictSchema(schema.CloneSchemas())),
					Strict:      param.NewOpt(true),
				},
			},
		},
	}

	resp, err := g.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("analysis: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("analysis: no choices")
	}
	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("analysis: blocked: %s", choice.Message.Refusal)
	}
	if choice.FinishReason != "stop" {
		return nil, fmt.Errorf("analysis: unexpected finish reason: %s", choice.FinishReason)
	}
	if len(choice.Message.Content) == 0 {
		return nil, fmt.Errorf("analysis: no content")
	}
	return []byte(choice.Message.Content), nil
}

// formatStrictSchema rewrites a schema for OpenAI strict mode: every object
// gets additionalProperties:false, and every property becomes required, with
// previously optional ones made nullable.
//
// See https://platform.openai.com/docs/guides/structured-outputs
func formatStrictSchema(m *jsonschema.Schema) *jsonschema.Schema {
	if m == nil {
		return nil
	}

	if m.Type != "" && len(m.Types) > 0 {
		m.Types = append(m.Types, m.Type)
		m.Type = ""
	}
	typ := m.Type
	if typ == "" {
		for _, t := range m.Types {
			if t != "null" && t != "" {
				typ = t
				break
			}
		}
	}

	switch typ {
	case "array":
		m.Items = formatStrictSchema(m.Items)
	case "object":
		m.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}

		required := make(map[string]struct{})
		for _, v := range m.Required {
			required[v] = struct{}{}
		}
		for k, v := range m.Properties {
			if _, ok := required[k]; !ok {
				required[k] = struct{}{}
				if !slices.Contains(v.Types, "null") {
					v.Types = append(v.Types, "null")
				}
			}
			m.Properties[k] = formatStrictSchema(v)
		}
		m.Required = slices.Collect(maps.Keys(required))
	}
	return m
}
