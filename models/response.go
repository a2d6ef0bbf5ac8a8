package models

// ChatResponse is returned by POST /api/chat. Sentences carry the speakable
// units in order so the client can start synthesis before reading the full
// text; MapTarget is the stall identifier extracted from a navigation
// directive, empty when the response contains none.
type ChatResponse struct {
	Response  string   `json:"response"`
	Sentences []string `json:"sentences,omitempty"`
	MapTarget string   `json:"map_target,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// TTSResponse carries synthesized audio as base64, matching what the browser
// decodes into an AudioBuffer.
type TTSResponse struct {
	AudioContent string `json:"audioContent"`
	Provider     string `json:"provider,omitempty"`
}

// ContextResponse is returned by GET /api/context.
type ContextResponse struct {
	Context string `json:"context"`
}

// AuthResponse is returned by the auth endpoints.
type AuthResponse struct {
	Token  string       `json:"token,omitempty"`
	User   UserIdentity `json:"user"`
	Config *UserConfig  `json:"config,omitempty"`
}
