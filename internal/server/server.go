package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/config"
	"github.com/emilythestrangee/cuoora/backend/internal/handlers"
	"github.com/emilythestrangee/cuoora/backend/internal/middleware"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
)

// HealthChecker reports dependency health, e.g. the database.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	cfg     config.Config
	handler *handlers.Handler
	health  HealthChecker
	logger  *slog.Logger
}

func New(cfg config.Config, p *platform.Platform, health HealthChecker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg: cfg,
		handler: handlers.NewHandler(p, handlers.AuthSettings{
			Secret:   []byte(cfg.JWTSecret),
			TokenTTL: cfg.TokenTTL,
		}),
		health: health,
		logger: logger,
	}
}

// HTTPServer wraps the router in an http.Server listening on the configured
// port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAll(s.cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", s.healthHandler)

	h := s.handler
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		// Public reads
		api.GET("/questions/:id", h.Question.GetQuestion)
		api.GET("/topics", h.Topic.GetTopics)
		api.GET("/topics/:id/questions", h.Topic.GetTopicQuestions)
		api.GET("/users/:id", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware([]byte(s.cfg.JWTSecret)))
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.GET("/feed", h.Feed.GetFeed)

			protected.POST("/questions", h.Question.CreateQuestion)
			protected.POST("/questions/:id/answers", h.Question.CreateAnswer)
			protected.POST("/questions/:id/topics", h.Question.AttachTopic)
			protected.POST("/questions/:id/vote", h.Question.VoteQuestion)
			protected.PUT("/questions/:id/vote", h.Question.ChangeQuestionVote)
			protected.POST("/answers/:answerId/vote", h.Question.VoteAnswer)
			protected.PUT("/answers/:answerId/vote", h.Question.ChangeAnswerVote)

			protected.POST("/topics", h.Topic.CreateTopic)

			protected.POST("/users/:id/follow", h.User.FollowUser)
			protected.DELETE("/users/:id/follow", h.User.UnfollowUser)
			protected.POST("/me/interests", h.User.AddInterest)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	stats := s.health.Health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": stats["status"], "database": stats})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Browsers reject credentialed requests to a wildcard origin.
func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
