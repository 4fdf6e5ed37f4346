// internal/handlers/assistant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type AssistantHandler struct {
	ai *services.AIService
}

func NewAssistantHandler(ai *services.AIService) *AssistantHandler {
	return &AssistantHandler{ai: ai}
}

// GET /assistant
func (h *AssistantHandler) GetGreeting(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"message": h.ai.Greeting(),
		"online":  h.ai.Enabled(),
	})
}

// POST /assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reply": h.ai.Chat(c.Request.Context(), req.Message),
	})
}
