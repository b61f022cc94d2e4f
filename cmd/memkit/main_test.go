package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weave-labs/memkit/types"
)

func TestLoadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	content := "user\tWhat is the capital of France?\n" +
		"assistant\tThe capital of France is Paris.\n" +
		"\n" +
		"a bare line without a role\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conversation, err := loadTranscript(path)
	require.NoError(t, err)
	require.Len(t, conversation, 3)

	assert.Equal(t, types.RoleUser, conversation[0].Role)
	assert.Equal(t, "What is the capital of France?", conversation[0].Content)
	assert.Equal(t, types.RoleAssistant, conversation[1].Role)
	assert.Equal(t, types.RoleUser, conversation[2].Role, "lines without a role default to user")
	assert.Equal(t, "a bare line without a role", conversation[2].Content)
}

func TestLoadTranscriptMissingFile(t *testing.T) {
	_, err := loadTranscript(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
