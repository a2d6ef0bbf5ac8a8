package models

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message        string        `json:"message"`
	History        []HistoryItem `json:"history"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Language       string        `json:"language,omitempty"`
}

// TTSRequest is the body of POST /api/tts.
type TTSRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty"`
	VoiceID  string `json:"voice_id,omitempty"`
	Language string `json:"language,omitempty"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	Title string `json:"title,omitempty"`
}
