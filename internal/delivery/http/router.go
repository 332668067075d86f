package http

import (
	"log/slog"

	"github.com/gdugdh24/roommate-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/roommate-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	matchRequestHandler *handler.MatchRequestHandler
	matchHandler        *handler.MatchHandler
	preferencesHandler  *handler.PreferencesHandler
	notificationHandler *handler.NotificationHandler
	accountHandler      *handler.AccountHandler
	// realtimeHandler is nil when this process does not own the hub.
	realtimeHandler *handler.RealtimeHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          *slog.Logger
}

func NewRouter(
	matchRequestHandler *handler.MatchRequestHandler,
	matchHandler *handler.MatchHandler,
	preferencesHandler *handler.PreferencesHandler,
	notificationHandler *handler.NotificationHandler,
	accountHandler *handler.AccountHandler,
	realtimeHandler *handler.RealtimeHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *Router {
	return &Router{
		matchRequestHandler: matchRequestHandler,
		matchHandler:        matchHandler,
		preferencesHandler:  preferencesHandler,
		notificationHandler: notificationHandler,
		accountHandler:      accountHandler,
		realtimeHandler:     realtimeHandler,
		authMiddleware:      authMiddleware,
		logger:              logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(r.authMiddleware.RequireAuth())
	{
		// Match routes
		match := protected.Group("/match")
		{
			match.POST("/request", r.matchRequestHandler.CreateRequest)
			match.GET("/request", r.matchRequestHandler.ListPending)
			match.GET("/candidates", r.matchHandler.GetCandidates)
		}

		protected.GET("/users/:id", r.matchHandler.GetUser)

		// Preferences routes
		prefs := protected.Group("/preferences")
		{
			prefs.GET("/me", r.preferencesHandler.GetMine)
			prefs.PUT("/me", r.preferencesHandler.UpdateMine)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", r.notificationHandler.List)
			notifications.GET("/unread-count", r.notificationHandler.UnreadCount)
			notifications.POST("/:id/read", r.notificationHandler.MarkRead)
		}

		protected.DELETE("/account", r.accountHandler.Delete)

		if r.realtimeHandler != nil {
			protected.GET("/ws", r.realtimeHandler.Connect)
		}
	}

	return router
}
