package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"3001"`

	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	ChatModel      string `env:"GEMINI_CHAT_MODEL" envDefault:"gemini-2.0-flash"`
	EmbeddingModel string `env:"GEMINI_EMBEDDING_MODEL" envDefault:"text-embedding-004"`

	KnowledgePath string `env:"KNOWLEDGE_DB_PATH" envDefault:"data/db.json"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"data/techex.db"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"dist"`

	HistoryWindow int `env:"HISTORY_WINDOW" envDefault:"6"`
	RetrievalTopK int `env:"RETRIEVAL_TOP_K" envDefault:"3"`

	GoogleTTSAPIKey   string `env:"GOOGLE_TTS_API_KEY"`
	ElevenLabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	AzureSpeechKey    string `env:"AZURE_SPEECH_KEY"`
	AzureSpeechRegion string `env:"AZURE_SPEECH_REGION" envDefault:"centralindia"`
	VoiceProvider     string `env:"VOICE_PROVIDER" envDefault:"google"`

	// GuestMode lets the kiosk serve visitors without accounts. Token auth is
	// still honored when an Authorization header is present.
	GuestMode bool `env:"GUEST_MODE" envDefault:"true"`
}

// New loads .env if present and parses the process environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("CONFIG: no .env file found, using process environment")
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("FATAL: failed to parse config: %v", err)
	}
	return cfg
}
