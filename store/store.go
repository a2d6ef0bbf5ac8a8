// Package store persists users, conversations, and messages in an embedded
// SQLite database. The chat path treats writes as best-effort; only the auth
// and CRUD endpoints surface store errors to the client.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/K-naman-T/techex-ai/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		title TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER REFERENCES conversations(id) ON DELETE CASCADE,
		role TEXT,
		content TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);
	CREATE TABLE IF NOT EXISTS user_configs (
		user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		voice_provider TEXT DEFAULT 'elevenlabs',
		voice_id TEXT,
		stt_language TEXT DEFAULT 'en-IN'
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts an account row and returns its id.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		email, passwordHash, name)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return result.LastInsertId()
}

// UserByEmail looks up an account by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, COALESCE(name, ''), created_at FROM users WHERE email = ?",
		email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying user: %w", err)
	}
	return user, nil
}

// CreateSession stores an auth token for a user.
func (s *Store) CreateSession(ctx context.Context, userID int64, token string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id) VALUES (?, ?)", token, userID)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// UserByToken resolves an auth token to its account.
func (s *Store) UserByToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.password_hash, COALESCE(u.name, ''), u.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying session: %w", err)
	}
	return user, nil
}

// CreateConversation inserts a conversation row and returns its id.
func (s *Store) CreateConversation(ctx context.Context, userID int64, title string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO conversations (user_id, title) VALUES (?, ?)", userID, title)
	if err != nil {
		return 0, fmt.Errorf("inserting conversation: %w", err)
	}
	return result.LastInsertId()
}

// Conversations lists a user's conversations, newest first.
func (s *Store) Conversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(title, ''), created_at
		FROM conversations WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// ConversationOwner returns the user id owning a conversation.
func (s *Store) ConversationOwner(ctx context.Context, conversationID int64) (int64, error) {
	var owner int64
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM conversations WHERE id = ?", conversationID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying conversation owner: %w", err)
	}
	return owner, nil
}

// AppendMessage inserts one conversation turn.
func (s *Store) AppendMessage(ctx context.Context, conversationID int64, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (conversation_id, role, content) VALUES (?, ?, ?)",
		conversationID, role, content)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Messages lists a conversation's turns in insertion order.
func (s *Store) Messages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages WHERE conversation_id = ? ORDER BY id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UserConfig returns a user's voice preferences, falling back to defaults
// when none are saved.
func (s *Store) UserConfig(ctx context.Context, userID int64) (models.UserConfig, error) {
	var cfg models.UserConfig
	err := s.db.QueryRowContext(ctx, `
		SELECT voice_provider, COALESCE(voice_id, ''), stt_language
		FROM user_configs WHERE user_id = ?`, userID).
		Scan(&cfg.VoiceProvider, &cfg.VoiceID, &cfg.STTLanguage)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserConfig{VoiceProvider: "elevenlabs", STTLanguage: "en-IN"}, nil
	}
	if err != nil {
		return models.UserConfig{}, fmt.Errorf("querying user config: %w", err)
	}
	return cfg, nil
}

// SaveUserConfig upserts a user's voice preferences.
func (s *Store) SaveUserConfig(ctx context.Context, userID int64, cfg models.UserConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_configs (user_id, voice_provider, voice_id, stt_language)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			voice_provider = excluded.voice_provider,
			voice_id = excluded.voice_id,
			stt_language = excluded.stt_language`,
		userID, cfg.VoiceProvider, cfg.VoiceID, cfg.STTLanguage)
	if err != nil {
		return fmt.Errorf("saving user config: %w", err)
	}
	return nil
}
