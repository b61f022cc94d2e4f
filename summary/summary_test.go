package summary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaShape(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "object", schema["type"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "summary")
	assert.Contains(t, properties, "topics")

	required, ok := schema["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "summary")
	assert.NotContains(t, required, "topics")
}

func TestSessionSummaryJSON(t *testing.T) {
	s := &SessionSummary{Summary: "short", Topics: []string{"go"}}
	out, err := s.JSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"summary": "short"`)
	assert.Contains(t, out, `"go"`)

	noTopics := &SessionSummary{Summary: "short"}
	out, err = noTopics.JSON()
	require.NoError(t, err)
	assert.NotContains(t, out, "topics")
}
