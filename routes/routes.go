package routes

import (
	"net/http"
	"time"

	"skybook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	chat := r.Group("/api/chat")
	{
		chat.POST("/sessions", hb.CreateChatSessionHandler)
		chat.GET("/sessions/:sessionID/messages", hb.GetChatMessagesHandler)
		chat.POST("/sessions/:sessionID/messages", hb.PostChatMessageHandler)

		// Booking flow is scoped to its chat session.
		booking := chat.Group("/sessions/:sessionID/booking")
		booking.GET("", hb.GetBookingStateHandler)
		booking.POST("/select", hb.SelectFlightHandler)
		booking.POST("/confirm", hb.ConfirmBookingHandler)
		booking.POST("/cancel", hb.CancelBookingHandler)
		booking.POST("/back", hb.BackToConfirmationHandler)
		booking.PATCH("/details", hb.EditBookingDetailHandler)
		booking.POST("/details", hb.SubmitBookingDetailsHandler)
		booking.POST("/return", hb.ReturnToChatHandler)
	}

	flights := r.Group("/api/flights")
	{
		flights.POST("/filter", hb.FilterFlightsHandler)
	}
}
