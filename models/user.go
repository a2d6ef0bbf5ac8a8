package models

import "time"

// UserIdentity is the authenticated requester. Guest identities are issued by
// the kiosk deployment and never touch the datastore.
type UserIdentity struct {
	ID    int64  `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Guest bool   `json:"guest,omitempty"`
}

// User is a persisted account row.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Conversation is a persisted conversation row.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a persisted conversation turn.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserConfig holds per-user voice preferences.
type UserConfig struct {
	VoiceProvider string `json:"voice_provider"`
	VoiceID       string `json:"voice_id,omitempty"`
	STTLanguage   string `json:"stt_language"`
}
