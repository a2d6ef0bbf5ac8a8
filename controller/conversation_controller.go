package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/services"
	"github.com/K-naman-T/techex-ai/store"
)

// ConversationController handles conversation and message CRUD.
type ConversationController struct {
	auth  services.Authenticator
	store *store.Store
}

// NewConversationController creates the controller.
func NewConversationController(auth services.Authenticator, st *store.Store) *ConversationController {
	return &ConversationController{auth: auth, store: st}
}

func (c *ConversationController) identify(ctx *gin.Context) (models.UserIdentity, bool) {
	user, err := c.auth.Authenticate(ctx.Request)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return models.UserIdentity{}, false
	}
	if user.Guest {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "account required"})
		return models.UserIdentity{}, false
	}
	return user, true
}

// List is the Gin handler for GET /api/conversations.
func (c *ConversationController) List(ctx *gin.Context) {
	user, ok := c.identify(ctx)
	if !ok {
		return
	}

	conversations, err := c.store.Conversations(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Create is the Gin handler for POST /api/conversations.
func (c *ConversationController) Create(ctx *gin.Context) {
	user, ok := c.identify(ctx)
	if !ok {
		return
	}

	var req models.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	id, err := c.store.CreateConversation(ctx.Request.Context(), user.ID, req.Title)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "title": req.Title})
}

// Messages is the Gin handler for GET /api/conversations/:id/messages. A
// conversation the requester does not own reads as not found.
func (c *ConversationController) Messages(ctx *gin.Context) {
	user, ok := c.identify(ctx)
	if !ok {
		return
	}

	conversationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return
	}

	owner, err := c.store.ConversationOwner(ctx.Request.Context(), conversationID)
	if err != nil || owner != user.ID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	messages, err := c.store.Messages(ctx.Request.Context(), conversationID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}
