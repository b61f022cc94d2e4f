// Package summary generates concise session summaries of agent
// conversations with a single language-model call.
package summary

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
)

// SessionSummary is the structured result of a summarization call.
type SessionSummary struct {
	// Summary of the session. Concise, focused on important information,
	// nothing made up.
	Summary string `json:"summary" validate:"required" jsonschema_description:"Summary of the session. Be concise and focus on only important information. Do not make anything up."`

	// Topics discussed in the session, nil when the model reported none.
	Topics []string `json:"topics,omitempty" jsonschema_description:"Topics discussed in the session."`
}

// JSON renders the summary as indented JSON.
func (s *SessionSummary) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var schemaOnce = sync.OnceValue(func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return reflector.Reflect(&SessionSummary{})
})

// Schema returns the JSON schema of SessionSummary, used for schema-aware
// output negotiation and for prompt-embedded formatting instructions.
func Schema() *jsonschema.Schema {
	return schemaOnce()
}
