package services

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/K-naman-T/techex-ai/models"
)

// KnowledgeSource is what the chat pipeline needs from the knowledge base.
type KnowledgeSource interface {
	Event() models.Event
	Search(ctx context.Context, query string, topK int) []models.Project
}

// TurnRecorder persists conversation turns. Writes along the chat path are
// best-effort: a failure is logged and the request continues.
type TurnRecorder interface {
	ConversationOwner(ctx context.Context, conversationID int64) (int64, error)
	AppendMessage(ctx context.Context, conversationID int64, role, content string) error
}

// ChatService runs the request-scoped chat pipeline: persist the user turn,
// retrieve knowledge context, assemble the prompt, normalize history, invoke
// the model, persist the assistant turn, post-process.
type ChatService interface {
	Chat(ctx context.Context, user models.UserIdentity, req models.ChatRequest) (*models.ChatResponse, error)
}

type chatServiceImpl struct {
	generator Generator
	knowledge KnowledgeSource
	recorder  TurnRecorder
	window    int
	topK      int
}

// NewChatService creates the chat pipeline. recorder may be nil when the
// deployment runs without a datastore.
func NewChatService(generator Generator, knowledge KnowledgeSource, recorder TurnRecorder, window, topK int) ChatService {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &chatServiceImpl{
		generator: generator,
		knowledge: knowledge,
		recorder:  recorder,
		window:    window,
		topK:      topK,
	}
}

// resolveConversation decides whether turns of this request get persisted.
// Guests, absent ids, unparsable ids, and conversations the user does not own
// all resolve to 0 (no persistence); an ownership read failure is treated as
// not-found rather than retried.
func (s *chatServiceImpl) resolveConversation(ctx context.Context, user models.UserIdentity, rawID string) int64 {
	if s.recorder == nil || user.Guest || rawID == "" {
		return 0
	}
	conversationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Printf("SERVICE WARN: malformed conversation id %q: %v", rawID, err)
		return 0
	}
	owner, err := s.recorder.ConversationOwner(ctx, conversationID)
	if err != nil {
		log.Printf("SERVICE WARN: could not verify conversation %d: %v", conversationID, err)
		return 0
	}
	if owner != user.ID {
		log.Printf("SERVICE WARN: conversation %d does not belong to user %d", conversationID, user.ID)
		return 0
	}
	return conversationID
}

func (s *chatServiceImpl) Chat(ctx context.Context, user models.UserIdentity, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	conversationID := s.resolveConversation(ctx, user, req.ConversationID)
	if conversationID != 0 {
		if err := s.recorder.AppendMessage(ctx, conversationID, models.RoleUser, message); err != nil {
			log.Printf("SERVICE WARN: could not persist user turn: %v", err)
		}
	}

	// Retrieval never fails the request; an empty context is acceptable.
	projects := s.knowledge.Search(ctx, message, s.topK)
	knowledgeContext := BuildKnowledgeContext(projects)

	instruction := BuildSystemInstruction(s.knowledge.Event(), knowledgeContext, req.Language)
	history := NormalizeHistory(req.History, s.window)

	answer, err := s.generator.Generate(ctx, instruction, history, message)
	if err != nil {
		return nil, err
	}

	if conversationID != 0 {
		if err := s.recorder.AppendMessage(ctx, conversationID, models.RoleAssistant, answer); err != nil {
			log.Printf("SERVICE WARN: could not persist assistant turn: %v", err)
		}
	}

	response := &models.ChatResponse{Response: answer}
	response.MapTarget = ProcessResponse(answer, func(sentence string) {
		response.Sentences = append(response.Sentences, sentence)
	}, nil)
	return response, nil
}
