package chat

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the visible conversation. Turns are immutable
// once created.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Synthetic marks turns injected by the application itself, such as
	// the restart notice, rather than produced by the user or the model.
	Synthetic bool `json:"synthetic,omitempty"`
}

// LogEntry is an audit record of a turn plus timestamp and the model that
// was active when it was recorded.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
}

// SessionConfig selects the model and the fixed system prompt for a chat
// session. Changing the model invalidates the active session.
type SessionConfig struct {
	Model        string
	SystemPrompt string
}
