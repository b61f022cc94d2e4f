package summary

import (
	"encoding/json"
	"strings"

	"github.com/weave-labs/memkit/models"
	"github.com/weave-labs/memkit/types"
)

const defaultInstructions = `Analyze the following conversation between a user and an assistant, and extract the following details:
  - summary (string): Provide a concise summary of the session, focusing on important information that would be helpful for future interactions.
  - topics (optional list of strings): List the topics discussed in the session.
Please ignore any frivolous information. Do not make anything up.
Conversation:
`

// systemMessage builds the system message for a summarization call. The
// configured override prompt wins; otherwise the default instructions are
// followed by the rendered transcript and, when the model has no
// structured-output contract, explicit JSON formatting instructions.
func (s *SessionSummarizer) systemMessage(conversation []types.Message, model models.Model) types.Message {
	if s.systemPrompt != "" {
		return types.Message{Role: types.RoleSystem, Content: s.systemPrompt}
	}

	var b strings.Builder
	b.WriteString(defaultInstructions)
	b.WriteString(renderTranscript(conversation))

	if _, ok := model.ResponseFormat().(models.JSONObjectFormat); ok {
		b.WriteString("\n")
		b.WriteString(jsonOutputInstructions())
	}

	return types.Message{Role: types.RoleSystem, Content: b.String()}
}

// renderTranscript renders user and assistant turns as alternating
// "User:"/"Assistant:" lines. Turns with any other role are omitted.
func renderTranscript(conversation []types.Message) string {
	lines := make([]string, 0, len(conversation))
	for _, msg := range conversation {
		switch msg.Role {
		case types.RoleUser:
			lines = append(lines, "User: "+msg.Content)
		case types.RoleAssistant, types.RoleModel:
			lines = append(lines, "Assistant: "+msg.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// jsonOutputInstructions describes the exact JSON shape expected, for
// models running in generic JSON-object mode.
func jsonOutputInstructions() string {
	var b strings.Builder
	b.WriteString("Provide your output as a JSON object matching the following schema:\n")
	if data, err := json.MarshalIndent(Schema(), "", "  "); err == nil {
		b.Write(data)
		b.WriteString("\n")
	}
	b.WriteString("Start your response with `{` and end it with `}`. Output nothing other than the JSON object.")
	return b.String()
}
