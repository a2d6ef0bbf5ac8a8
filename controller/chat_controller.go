package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/services"
)

// ChatController handles the chat and knowledge-context endpoints.
type ChatController struct {
	chatService services.ChatService
	knowledge   services.KnowledgeService
	auth        services.Authenticator
}

// NewChatController creates the controller with its dependencies injected
// from main.go.
func NewChatController(chat services.ChatService, knowledge services.KnowledgeService, auth services.Authenticator) *ChatController {
	return &ChatController{
		chatService: chat,
		knowledge:   knowledge,
		auth:        auth,
	}
}

// Chat is the Gin handler for POST /api/chat.
func (c *ChatController) Chat(ctx *gin.Context) {
	user, err := c.auth.Authenticate(ctx.Request)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := c.chatService.Chat(ctx.Request.Context(), user, req)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Context is the Gin handler for GET /api/context. It returns the system
// instruction as currently assembled from the full knowledge base, which the
// frontend shows in its debug view.
func (c *ChatController) Context(ctx *gin.Context) {
	knowledgeContext := services.BuildKnowledgeContext(c.knowledge.Projects())
	instruction := services.BuildSystemInstruction(c.knowledge.Event(), knowledgeContext, services.LanguageEnglish)
	ctx.JSON(http.StatusOK, models.ContextResponse{Context: instruction})
}
