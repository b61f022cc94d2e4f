package summary

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/weave-labs/memkit/models"
	"github.com/weave-labs/memkit/types"
	"github.com/weave-labs/memkit/utils"
)

// SessionSummarizer produces a SessionSummary from a conversation with a
// single model call.
//
// A summarizer is constructed once and reused. The model and system prompt
// are read-only during an invocation; output-format negotiation always
// happens on a per-call clone of the model handle, so concurrent calls on
// one summarizer cannot contaminate each other's configuration.
type SessionSummarizer struct {
	model        models.Model
	systemPrompt string
	logger       utils.Logger
	validate     *validator.Validate

	// summaryUpdated is set once the model returns non-empty content, even
	// when structured parsing subsequently fails. It is never reset.
	// Concurrent invocations race on it; last write wins.
	summaryUpdated atomic.Bool
}

// Option configures a SessionSummarizer.
type Option func(*SessionSummarizer)

// WithSystemPrompt replaces the synthesized summarization prompt with the
// given text, used verbatim.
func WithSystemPrompt(prompt string) Option {
	return func(s *SessionSummarizer) {
		s.systemPrompt = prompt
	}
}

// WithLogger overrides the summarizer's logger.
func WithLogger(logger utils.Logger) Option {
	return func(s *SessionSummarizer) {
		s.logger = logger
	}
}

// NewSessionSummarizer creates a summarizer backed by the given model.
// A nil model is tolerated; every run then returns no summary.
func NewSessionSummarizer(model models.Model, opts ...Option) *SessionSummarizer {
	s := &SessionSummarizer{
		model:    model,
		logger:   utils.NewLogger(utils.LogLevelWarn),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummaryUpdated reports whether any call so far got non-empty content back
// from the model. This tracks content presence, not parse success.
func (s *SessionSummarizer) SummaryUpdated() bool {
	return s.summaryUpdated.Load()
}

// Run summarizes the conversation, blocking until the model call completes.
func (s *SessionSummarizer) Run(conversation []types.Message) (*SessionSummary, error) {
	return s.RunContext(context.Background(), conversation)
}

// RunContext summarizes the conversation with the given context.
//
// Recoverable conditions (no model configured, empty conversation,
// unparseable response) return a nil summary and a nil error, with a
// diagnostic logged. Only a failing model call returns an error.
func (s *SessionSummarizer) RunContext(ctx context.Context, conversation []types.Message) (*SessionSummary, error) {
	if s.model == nil {
		s.logger.Error("no model configured for session summarizer")
		return nil, nil
	}
	if len(conversation) == 0 {
		s.logger.Info("no conversation provided for summarization")
		return nil, nil
	}

	s.logger.Debug("session summarizer start")

	model := s.model.Clone()
	negotiateOutputFormat(model)

	messages := []types.Message{
		s.systemMessage(conversation, model),
		// Some providers reject a request containing only a system message.
		{Role: types.RoleUser, Content: "Provide the summary of the conversation."},
	}

	response, err := model.Respond(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("session summarizer: model call: %w", err)
	}

	if response.Content != "" {
		s.summaryUpdated.Store(true)
	}

	s.logger.Debug("session summarizer end")

	// In native structured-output mode the provider already parsed the
	// response; return it as-is.
	if model.SupportsNativeStructuredOutputs() {
		if parsed, ok := response.Parsed.(*SessionSummary); ok && parsed != nil {
			return parsed, nil
		}
	}

	if response.Content == "" {
		return nil, nil
	}

	var result SessionSummary
	if err := utils.ParseInto(response.Content, &result); err != nil {
		s.logger.Warn("failed to parse session summary response", "error", err)
		return nil, nil
	}
	if err := s.validate.Struct(&result); err != nil {
		s.logger.Warn("session summary response failed validation", "error", err)
		return nil, nil
	}
	return &result, nil
}

// negotiateOutputFormat configures the (cloned) model handle for the
// strongest structured-output mode it supports.
func negotiateOutputFormat(model models.Model) {
	switch {
	case model.SupportsNativeStructuredOutputs():
		model.SetResponseFormat(models.NativeFormat{Target: &SessionSummary{}})
	case model.SupportsJSONSchemaOutputs():
		model.SetResponseFormat(models.JSONSchemaFormat{
			Name:   "SessionSummary",
			Schema: Schema(),
		})
	default:
		model.SetResponseFormat(models.JSONObjectFormat{})
	}
}
