// Package types contains shared type definitions used across the memkit library.
// It helps avoid import cycles while providing common data structures.
package types

// Role identifies the speaker of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleModel is an alias some providers use for assistant turns.
	RoleModel  Role = "model"
	RoleSystem Role = "system"
	RoleTool   Role = "tool"
)

// Message represents a single turn in a conversation.
// Messages are immutable once handed to the library; callers own the slice.
type Message struct {
	Role    Role   // Role of the message sender
	Content string // The actual message content
}
