package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/services"
)

// QueryRequest is the body of an assistant query.
type QueryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// QueryResponse carries the assistant's answer.
type QueryResponse struct {
	Result string `json:"result"`
}

// AssistantHandler forwards free-form questions to the configured assistant.
// A nil assistant makes every query fail with ErrAssistantUnavailable.
type AssistantHandler struct {
	assistant services.Assistant
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistant services.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Query answers a question about the user's spendings
// @Summary     Ask about spendings
// @Tags        assistant
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body QueryRequest true "Prompt"
// @Success     200 {object} QueryResponse "Answer"
// @Failure     400 {object} map[string][]string "Missing prompt"
// @Failure     501 {object} map[string]string "Assistant not configured"
// @Router      /transactions/gpt-query/ [post]
func (h *AssistantHandler) Query(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req QueryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if h.assistant == nil {
		respondWithError(c, apperrors.ErrAssistantUnavailable)
		return
	}

	result, err := h.assistant.Answer(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueryResponse{Result: result})
}
