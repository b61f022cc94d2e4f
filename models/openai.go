package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"golang.org/x/time/rate"

	"github.com/weave-labs/memkit/types"
	"github.com/weave-labs/memkit/utils"
)

// OpenAIModel implements Model on top of the OpenAI chat completions API.
//
// The Go SDK does not parse responses into caller-supplied structs, so the
// model advertises JSON-schema support rather than native structured
// outputs; schema enforcement happens server-side and parsing falls back to
// the text path.
type OpenAIModel struct {
	client     openai.Client
	clientOpts []option.RequestOption
	model      string
	format     ResponseFormat
	limiter    *rate.Limiter
	logger     utils.Logger
}

// OpenAIOption configures an OpenAIModel.
type OpenAIOption func(*OpenAIModel)

// WithRequestsPerMinute enables a client-side rate limiter. Zero or
// negative values leave limiting disabled.
func WithRequestsPerMinute(rpm int) OpenAIOption {
	return func(m *OpenAIModel) {
		if rpm > 0 {
			m.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
		}
	}
}

// WithOpenAILogger overrides the model's logger.
func WithOpenAILogger(logger utils.Logger) OpenAIOption {
	return func(m *OpenAIModel) {
		m.logger = logger
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(m *OpenAIModel) {
		if timeout > 0 {
			m.clientOpts = append(m.clientOpts, option.WithRequestTimeout(timeout))
		}
	}
}

// NewOpenAIModel creates a model handle for the given API key and model name.
func NewOpenAIModel(apiKey, model string, opts ...OpenAIOption) *OpenAIModel {
	m := &OpenAIModel{
		clientOpts: []option.RequestOption{option.WithAPIKey(apiKey)},
		model:      model,
		logger:     utils.NewLogger(utils.LogLevelWarn),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.client = openai.NewClient(m.clientOpts...)
	return m
}

func (m *OpenAIModel) ID() string { return m.model }

func (m *OpenAIModel) SupportsNativeStructuredOutputs() bool { return false }
func (m *OpenAIModel) SupportsJSONSchemaOutputs() bool       { return true }

func (m *OpenAIModel) SetResponseFormat(format ResponseFormat) { m.format = format }
func (m *OpenAIModel) ResponseFormat() ResponseFormat          { return m.format }

// Clone returns a shallow copy sharing the client and limiter but with an
// independent response-format slot.
func (m *OpenAIModel) Clone() Model {
	clone := *m
	return &clone
}

func (m *OpenAIModel) Respond(ctx context.Context, messages []types.Message) (*Response, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages provided")
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(m.model),
		Messages: toOpenAIMessages(messages),
	}

	switch f := m.format.(type) {
	case JSONSchemaFormat:
		schema, err := strictSchema(f.Schema)
		if err != nil {
			return nil, fmt.Errorf("build strict schema: %w", err)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   f.Name,
					Schema: schema,
					Strict: openai.Bool(true),
				},
			},
		}
	case JSONObjectFormat:
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	m.logger.Debug("sending chat completion request",
		"model", m.model,
		"messages", len(messages),
		"prompt_tokens_estimate", utils.CountTokens(m.model, joinContents(messages)),
	)

	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	resp := &Response{
		Content: completion.Choices[0].Message.Content,
	}
	resp.Usage = &Usage{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
	}

	m.logger.Debug("chat completion finished",
		"model", m.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return resp, nil
}

// strictSchema rewrites a reflected schema to satisfy the strict-mode rules
// of the structured-outputs API: every object must list all of its
// properties as required and forbid additional properties, with optionality
// expressed as a nullable type instead.
func strictSchema(schema *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	strictifyObject(root)
	return root, nil
}

func strictifyObject(node map[string]any) {
	properties, ok := node["properties"].(map[string]any)
	if !ok {
		return
	}

	required := make(map[string]bool)
	if names, ok := node["required"].([]any); ok {
		for _, n := range names {
			if name, ok := n.(string); ok {
				required[name] = true
			}
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	allRequired := make([]any, 0, len(names))
	for _, name := range names {
		allRequired = append(allRequired, name)
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		if !required[name] {
			if typ, ok := prop["type"].(string); ok {
				prop["type"] = []any{typ, "null"}
			}
		}
		strictifyObject(prop)
		if items, ok := prop["items"].(map[string]any); ok {
			strictifyObject(items)
		}
	}

	node["required"] = allRequired
	node["additionalProperties"] = false
}

func toOpenAIMessages(messages []types.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case types.RoleAssistant, types.RoleModel:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func joinContents(messages []types.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}
