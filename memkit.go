// Package memkit provides session summarization for agent memory: it turns
// an ordered conversation history into a concise structured summary with a
// single language-model call.
//
// The root package is a thin facade over the subpackages. Typical usage:
//
//	summarizer, err := memkit.New(config.SetModel("gpt-4o-mini"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := summarizer.Run(conversation)
package memkit

import (
	"fmt"

	"github.com/weave-labs/memkit/config"
	"github.com/weave-labs/memkit/models"
	"github.com/weave-labs/memkit/summary"
	"github.com/weave-labs/memkit/types"
	"github.com/weave-labs/memkit/utils"
)

// Message is a single conversation turn.
type Message = types.Message

// Role constants for conversation turns.
const (
	RoleUser      = types.RoleUser
	RoleAssistant = types.RoleAssistant
	RoleSystem    = types.RoleSystem
)

// SessionSummary is the structured result of a summarization call.
type SessionSummary = summary.SessionSummary

// SessionSummarizer produces session summaries; see the summary package.
type SessionSummarizer = summary.SessionSummarizer

// NewSessionSummarizer creates a summarizer for an already-constructed
// model handle.
func NewSessionSummarizer(model models.Model, opts ...summary.Option) *summary.SessionSummarizer {
	return summary.NewSessionSummarizer(model, opts...)
}

// New assembles a summarizer from environment configuration plus the given
// overrides. API keys are read from <PROVIDER>_API_KEY variables.
func New(opts ...config.ConfigOption) (*summary.SessionSummarizer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.ApplyOptions(cfg, opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	model, err := newModel(cfg, logger)
	if err != nil {
		return nil, err
	}

	summarizerOpts := []summary.Option{summary.WithLogger(logger)}
	if cfg.SystemPrompt != "" {
		summarizerOpts = append(summarizerOpts, summary.WithSystemPrompt(cfg.SystemPrompt))
	}
	return summary.NewSessionSummarizer(model, summarizerOpts...), nil
}

func newModel(cfg *config.Config, logger utils.Logger) (models.Model, error) {
	switch cfg.Provider {
	case "openai":
		apiKey := cfg.APIKeys[cfg.Provider]
		if apiKey == "" {
			return nil, fmt.Errorf("no API key found for provider %q", cfg.Provider)
		}
		return models.NewOpenAIModel(apiKey, cfg.Model,
			models.WithRequestsPerMinute(cfg.RequestsPerMinute),
			models.WithTimeout(cfg.Timeout),
			models.WithOpenAILogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
