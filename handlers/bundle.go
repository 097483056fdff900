package handlers

import (
	"net/http"

	"skybook/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Chat endpoints.
	CreateChatSessionHandler gin.HandlerFunc
	PostChatMessageHandler   gin.HandlerFunc
	GetChatMessagesHandler   gin.HandlerFunc

	// Flight filtering.
	FilterFlightsHandler gin.HandlerFunc

	// Booking flow endpoints.
	GetBookingStateHandler      gin.HandlerFunc
	SelectFlightHandler         gin.HandlerFunc
	ConfirmBookingHandler       gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc
	BackToConfirmationHandler   gin.HandlerFunc
	EditBookingDetailHandler    gin.HandlerFunc
	SubmitBookingDetailsHandler gin.HandlerFunc
	ReturnToChatHandler         gin.HandlerFunc
}

// HealthHandler reports the latest stored health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
