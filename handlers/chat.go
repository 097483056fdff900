package handlers

import (
	"errors"
	"net/http"

	"skybook/models"
	"skybook/services/assistant"
	"skybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversation service over HTTP.
type ChatHandler struct {
	Conversation assistant.ConversationService
	Logger       *zap.Logger
}

func NewChatHandler(conversation assistant.ConversationService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Conversation: conversation, Logger: logger}
}

// CreateSessionHandler opens a new chat session and returns its
// greeting.
func (h *ChatHandler) CreateSessionHandler(c *gin.Context) {
	sessionID, greeting, err := h.Conversation.CreateSession(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to create chat session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create chat session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SessionResponse{SessionID: sessionID, Greeting: greeting})
}

// PostMessageHandler runs one user turn. A second turn on a session
// whose previous turn is still outstanding is rejected with 409.
func (h *ChatHandler) PostMessageHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat message", err.Error())
		return
	}

	result, err := h.Conversation.SubmitTurn(c.Request.Context(), sessionID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "Unknown chat session", sessionID)
		case errors.Is(err, assistant.ErrTurnInFlight):
			utils.JSONError(c, http.StatusConflict, "A reply is still being generated", "wait for the current turn to finish")
		default:
			h.Logger.Error("Chat turn failed", zap.String("sessionID", sessionID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Chat turn failed", err.Error())
		}
		return
	}

	history, err := h.Conversation.History(c.Request.Context(), sessionID)
	if err != nil || len(history) == 0 {
		// The turn itself succeeded; fall back to a transient message.
		c.JSON(http.StatusOK, models.TurnResponse{Message: models.ChatMessage{
			Sender:           models.SenderBot,
			Text:             result.ReplyText,
			MultiCityFlights: result.Groups,
		}})
		return
	}
	c.JSON(http.StatusOK, models.TurnResponse{Message: history[len(history)-1]})
}

// GetMessagesHandler returns the session transcript in order.
func (h *ChatHandler) GetMessagesHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	history, err := h.Conversation.History(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, assistant.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Unknown chat session", sessionID)
			return
		}
		h.Logger.Error("Failed to load transcript", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load transcript", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}
