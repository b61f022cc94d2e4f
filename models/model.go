// Package models defines the model boundary consumed by the summarization
// layer and provides concrete implementations for supported providers.
package models

import (
	"context"

	"github.com/invopop/jsonschema"

	"github.com/weave-labs/memkit/types"
)

// Model is the handle the library uses to talk to a language model.
//
// Implementations advertise their structured-output capabilities and expose
// a mutable response-format slot. Callers that configure the slot must do so
// on a Clone, never on a shared instance, so repeated or concurrent calls do
// not leak configuration across invocations.
type Model interface {
	// ID returns the provider-specific model identifier.
	ID() string

	// Capability checks
	SupportsNativeStructuredOutputs() bool
	SupportsJSONSchemaOutputs() bool

	// Response format configuration
	SetResponseFormat(format ResponseFormat)
	ResponseFormat() ResponseFormat

	// Clone returns a shallow copy sharing the underlying client but with
	// an independent response-format slot.
	Clone() Model

	// Respond sends the message sequence to the model and returns its final
	// response. The call may run nested tool invocations internally before
	// returning.
	Respond(ctx context.Context, messages []types.Message) (*Response, error)
}

// ResponseFormat is a sealed interface covering the three ways a model can
// be instructed to produce structured output.
type ResponseFormat interface {
	isResponseFormat()
}

// NativeFormat requests the provider's native structured-output mode.
// Target is a pointer to the value the provider should parse into.
type NativeFormat struct {
	Target any
}

// JSONSchemaFormat requests schema-constrained JSON output.
type JSONSchemaFormat struct {
	Name   string
	Schema *jsonschema.Schema
}

// JSONObjectFormat requests a generic JSON object with no schema contract.
// Prompts must carry their own formatting instructions in this mode.
type JSONObjectFormat struct{}

func (NativeFormat) isResponseFormat()     {}
func (JSONSchemaFormat) isResponseFormat() {}
func (JSONObjectFormat) isResponseFormat() {}

// Response represents the final response from a model call.
type Response struct {
	// Content is the raw text content, empty when the model returned none.
	Content string

	// Parsed holds the provider-parsed structured object when the model ran
	// in native structured-output mode, nil otherwise.
	Parsed any

	// Usage contains token usage information when the provider reports it.
	Usage *Usage
}

// Usage contains token usage statistics for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
