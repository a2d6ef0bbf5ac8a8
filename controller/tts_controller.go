package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/services"
)

// TTSController forwards synthesis requests to the configured vendor.
type TTSController struct {
	ttsService services.TTSService
}

// NewTTSController creates the controller.
func NewTTSController(tts services.TTSService) *TTSController {
	return &TTSController{ttsService: tts}
}

// Synthesize is the Gin handler for POST /api/tts.
func (c *TTSController) Synthesize(ctx *gin.Context) {
	var req models.TTSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := c.ttsService.Synthesize(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
