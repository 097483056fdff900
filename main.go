// File: skybook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybook/config"
	"skybook/handlers"
	"skybook/middleware"
	"skybook/routes"
	"skybook/services/assistant"
	"skybook/services/bookingflow"
	"skybook/services/search"
	"skybook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.StartHealthMonitor(utils.GetSessionCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	oracle, err := assistant.NewGeminiOracle(
		context.Background(),
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini oracle: %v", err)
	}
	defer oracle.Close()

	searchService := search.NewMockSearchService(logger)
	transcriptStore := assistant.NewRedisTranscriptStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)
	conversationService := assistant.NewDefaultConversationService(
		oracle,
		searchService,
		transcriptStore,
		logger,
		time.Duration(config.AppConfig.TurnTimeoutSeconds)*time.Second,
	)
	flowManager := bookingflow.NewManager()

	chatHandler := handlers.NewChatHandler(conversationService, logger)
	bookingHandler := handlers.NewBookingHandler(flowManager, conversationService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Chat endpoints.
		CreateChatSessionHandler: chatHandler.CreateSessionHandler,
		PostChatMessageHandler:   chatHandler.PostMessageHandler,
		GetChatMessagesHandler:   chatHandler.GetMessagesHandler,

		// Flight filtering.
		FilterFlightsHandler: handlers.FilterFlightsHandler,

		// Booking flow endpoints.
		GetBookingStateHandler:      bookingHandler.GetStateHandler,
		SelectFlightHandler:         bookingHandler.SelectFlightHandler,
		ConfirmBookingHandler:       bookingHandler.ConfirmHandler,
		CancelBookingHandler:        bookingHandler.CancelHandler,
		BackToConfirmationHandler:   bookingHandler.BackHandler,
		EditBookingDetailHandler:    bookingHandler.EditDetailHandler,
		SubmitBookingDetailsHandler: bookingHandler.SubmitDetailsHandler,
		ReturnToChatHandler:         bookingHandler.ReturnHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
