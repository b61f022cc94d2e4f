package models

import (
	"context"
	"sync"

	"github.com/weave-labs/memkit/types"
)

// MockModel implements the Model interface for testing purposes.
//
// Capability flags and the response function are plain fields so tests can
// configure them directly. Clones share the call recorder with the instance
// they were cloned from, so a test can inspect every call made through any
// clone while each clone keeps its own response-format slot.
type MockModel struct {
	ModelID                 string
	NativeStructuredOutputs bool
	JSONSchemaOutputs       bool

	// RespondFunc produces the mock response. When nil, Respond returns an
	// empty response.
	RespondFunc func(ctx context.Context, messages []types.Message) (*Response, error)

	format   ResponseFormat
	recorder *callRecorder
}

// MockCall records a single Respond invocation.
type MockCall struct {
	// Model is the clone that served the call.
	Model    *MockModel
	Messages []types.Message
	// Format is the response format configured on the clone at call time.
	Format ResponseFormat
}

type callRecorder struct {
	mu    sync.Mutex
	calls []MockCall
}

func (r *callRecorder) record(call MockCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callRecorder) snapshot() []MockCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MockCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// NewMockModel creates a mock model with no capabilities enabled.
func NewMockModel() *MockModel {
	return &MockModel{
		ModelID:  "mock",
		recorder: &callRecorder{},
	}
}

func (m *MockModel) ID() string { return m.ModelID }

func (m *MockModel) SupportsNativeStructuredOutputs() bool { return m.NativeStructuredOutputs }
func (m *MockModel) SupportsJSONSchemaOutputs() bool       { return m.JSONSchemaOutputs }

func (m *MockModel) SetResponseFormat(format ResponseFormat) { m.format = format }
func (m *MockModel) ResponseFormat() ResponseFormat          { return m.format }

func (m *MockModel) Clone() Model {
	clone := *m
	return &clone
}

func (m *MockModel) Respond(ctx context.Context, messages []types.Message) (*Response, error) {
	m.recorder.record(MockCall{
		Model:    m,
		Messages: messages,
		Format:   m.format,
	})
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, messages)
	}
	return &Response{}, nil
}

// Calls returns a copy of every recorded call, across all clones.
func (m *MockModel) Calls() []MockCall {
	return m.recorder.snapshot()
}
