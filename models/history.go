package models

// Canonical conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a normalized conversation turn: one role, one piece of text.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// HistoryItem is one client-supplied conversation turn. Frontend snapshots have
// shipped several shapes over time (role vs type, content vs message vs text),
// so every accepted field is kept here and resolution happens in one place,
// services.NormalizeHistory.
type HistoryItem struct {
	Role    string `json:"role,omitempty"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
	Text    string `json:"text,omitempty"`
}
