package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/services"
	"github.com/K-naman-T/techex-ai/store"
)

// AuthController handles account creation, login, and per-user voice config.
type AuthController struct {
	authService services.AuthService
	auth        services.Authenticator
	store       *store.Store
}

// NewAuthController creates the controller.
func NewAuthController(authService services.AuthService, auth services.Authenticator, st *store.Store) *AuthController {
	return &AuthController{authService: authService, auth: auth, store: st}
}

// Signup is the Gin handler for POST /api/auth/signup.
func (c *AuthController) Signup(ctx *gin.Context) {
	var req models.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := c.authService.Signup(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, models.AuthResponse{User: user})
}

// Login is the Gin handler for POST /api/auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	token, user, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	config, err := c.store.UserConfig(ctx.Request.Context(), user.ID)
	if err != nil {
		// The login itself succeeded; the client falls back to defaults.
		ctx.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
		return
	}

	ctx.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user, Config: &config})
}

// identify resolves the requester, rejecting guests: config endpoints only
// make sense for persisted accounts.
func (c *AuthController) identify(ctx *gin.Context) (models.UserIdentity, bool) {
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

// GetUserConfig is the Gin handler for GET /api/user/config.
func (c *AuthController) GetUserConfig(ctx *gin.Context) {
	user, ok := c.identify(ctx)
	if !ok {
		return
	}

	config, err := c.store.UserConfig(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user config"})
		return
	}
	ctx.JSON(http.StatusOK, config)
}

// SaveUserConfig is the Gin handler for POST /api/user/config.
func (c *AuthController) SaveUserConfig(ctx *gin.Context) {
	user, ok := c.identify(ctx)
	if !ok {
		return
	}

	var config models.UserConfig
	if err := ctx.ShouldBindJSON(&config); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := c.store.SaveUserConfig(ctx.Request.Context(), user.ID, config); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user config"})
		return
	}
	ctx.JSON(http.StatusOK, config)
}
