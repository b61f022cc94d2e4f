package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	out, err := ExtractJSON(`{"summary":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"hi"}`, out)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here you go:\n```json\n{\"summary\": \"hi\"}\n```\nLet me know if you need more."
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"summary": "hi"}`, out)
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	raw := `Sure! The summary is {"summary":"hi","topics":["a"]} as requested.`
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"hi","topics":["a"]}`, out)
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `{"summary":"uses {braces}","topics":["x"]}`
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("no structured data here")
	assert.Error(t, err)
}

func TestParseInto(t *testing.T) {
	var v struct {
		Summary string   `json:"summary"`
		Topics  []string `json:"topics"`
	}
	err := ParseInto("```json\n{\"summary\":\"hi\",\"topics\":[\"go\"]}\n```", &v)
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Summary)
	assert.Equal(t, []string{"go"}, v.Topics)
}

func TestParseIntoInvalidJSON(t *testing.T) {
	var v struct{}
	err := ParseInto("{not valid json}", &v)
	assert.Error(t, err)
}
