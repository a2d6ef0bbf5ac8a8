package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/K-naman-T/techex-ai/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "a@b.c", "hash", "Asha")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	user, err := s.UserByEmail(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.ID != id || user.PasswordHash != "hash" || user.Name != "Asha" {
		t.Fatalf("user = %+v", user)
	}

	if _, err := s.CreateUser(ctx, "a@b.c", "hash2", "Dup"); err == nil {
		t.Error("duplicate email should fail")
	}
	if _, err := s.UserByEmail(ctx, "nobody@b.c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionResolvesUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "a@b.c", "hash", "Asha")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := s.CreateSession(ctx, id, "tok-123"); err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	user, err := s.UserByToken(ctx, "tok-123")
	if err != nil {
		t.Fatalf("token lookup failed: %v", err)
	}
	if user.ID != id || user.Email != "a@b.c" {
		t.Fatalf("user = %+v", user)
	}

	if _, err := s.UserByToken(ctx, "unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestConversationAndMessages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "a@b.c", "hash", "Asha")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	convID, err := s.CreateConversation(ctx, userID, "First visit")
	if err != nil {
		t.Fatalf("create conversation failed: %v", err)
	}

	owner, err := s.ConversationOwner(ctx, convID)
	if err != nil || owner != userID {
		t.Fatalf("owner = %d, err = %v, want %d", owner, err, userID)
	}
	if _, err := s.ConversationOwner(ctx, convID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := s.AppendMessage(ctx, convID, models.RoleUser, "where is stall D-30?"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := s.AppendMessage(ctx, convID, models.RoleAssistant, "Zone D, near the entrance."); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	messages, err := s.Messages(ctx, convID)
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[1].Role != models.RoleAssistant {
		t.Fatalf("message order wrong: %+v", messages)
	}

	conversations, err := s.Conversations(ctx, userID)
	if err != nil {
		t.Fatalf("conversations failed: %v", err)
	}
	if len(conversations) != 1 || conversations[0].Title != "First visit" {
		t.Fatalf("conversations = %+v", conversations)
	}
}

func TestConversationsEmptyListNotNil(t *testing.T) {
	s := openTestStore(t)

	conversations, err := s.Conversations(context.Background(), 42)
	if err != nil {
		t.Fatalf("conversations failed: %v", err)
	}
	if conversations == nil {
		t.Fatal("want empty slice, got nil")
	}
}

func TestUserConfigDefaultsAndUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "a@b.c", "hash", "Asha")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	cfg, err := s.UserConfig(ctx, userID)
	if err != nil {
		t.Fatalf("config lookup failed: %v", err)
	}
	if cfg.VoiceProvider != "elevenlabs" || cfg.STTLanguage != "en-IN" {
		t.Fatalf("default config = %+v", cfg)
	}

	saved := models.UserConfig{VoiceProvider: "google", VoiceID: "en-IN-Neural2-B", STTLanguage: "hi-IN"}
	if err := s.SaveUserConfig(ctx, userID, saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	saved.VoiceProvider = "azure"
	if err := s.SaveUserConfig(ctx, userID, saved); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	cfg, err = s.UserConfig(ctx, userID)
	if err != nil {
		t.Fatalf("config lookup failed: %v", err)
	}
	if cfg != saved {
		t.Fatalf("config = %+v, want %+v", cfg, saved)
	}
}
