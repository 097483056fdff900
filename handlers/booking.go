package handlers

import (
	"errors"
	"net/http"

	"skybook/models"
	"skybook/services/assistant"
	"skybook/services/bookingflow"
	"skybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives the per-session booking flow. Returning to chat
// after a completed booking also resets the conversation to a fresh
// greeting.
type BookingHandler struct {
	Flows        *bookingflow.Manager
	Conversation assistant.ConversationService
	Logger       *zap.Logger
}

func NewBookingHandler(flows *bookingflow.Manager, conversation assistant.ConversationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Flows: flows, Conversation: conversation, Logger: logger}
}

// GetStateHandler returns the session's current booking flow state.
func (h *BookingHandler) GetStateHandler(c *gin.Context) {
	flow := h.Flows.Flow(c.Param("sessionID"))
	c.JSON(http.StatusOK, flow.State())
}

// SelectFlightHandler moves the flow from browsing to confirmation.
func (h *BookingHandler) SelectFlightHandler(c *gin.Context) {
	var req models.SelectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid flight selection", err.Error())
		return
	}
	h.transition(c, func(flow *bookingflow.Flow) error {
		return flow.SelectFlight(req.Flight)
	})
}

// ConfirmHandler moves the flow from confirmation to the details form.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	h.transition(c, (*bookingflow.Flow).Confirm)
}

// CancelHandler abandons the confirmation and returns to browsing.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	h.transition(c, (*bookingflow.Flow).Cancel)
}

// BackHandler returns from the details form to the confirmation view.
func (h *BookingHandler) BackHandler(c *gin.Context) {
	h.transition(c, (*bookingflow.Flow).Back)
}

// EditDetailHandler updates one form field and clears its inline error.
func (h *BookingHandler) EditDetailHandler(c *gin.Context) {
	var req models.EditDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid details edit", err.Error())
		return
	}
	h.transition(c, func(flow *bookingflow.Flow) error {
		return flow.EditDetail(req.Field, req.Value)
	})
}

// SubmitDetailsHandler validates the form. Validation failures are not
// transition errors: the flow stays on the form and the per-field
// errors come back in the state for inline display.
func (h *BookingHandler) SubmitDetailsHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	flow := h.Flows.Flow(sessionID)

	fieldErrs, err := flow.SubmitDetails()
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Booking action not allowed", err.Error())
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, flow.State())
		return
	}
	h.Logger.Info("Booking completed", zap.String("sessionID", sessionID))
	c.JSON(http.StatusOK, flow.State())
}

// ReturnHandler leaves the success screen, clears the selection, and
// resets the conversation to a fresh greeting.
func (h *BookingHandler) ReturnHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	flow := h.Flows.Flow(sessionID)

	if err := flow.Return(); err != nil {
		utils.JSONError(c, http.StatusConflict, "Booking action not allowed", err.Error())
		return
	}

	greeting, err := h.Conversation.ResetConversation(c.Request.Context(), sessionID)
	if err != nil && !errors.Is(err, assistant.ErrSessionNotFound) {
		h.Logger.Warn("Failed to reset conversation after booking",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"state":    flow.State(),
		"greeting": greeting,
	})
}

func (h *BookingHandler) transition(c *gin.Context, action func(*bookingflow.Flow) error) {
	flow := h.Flows.Flow(c.Param("sessionID"))
	if err := action(flow); err != nil {
		utils.JSONError(c, http.StatusConflict, "Booking action not allowed", err.Error())
		return
	}
	c.JSON(http.StatusOK, flow.State())
}
