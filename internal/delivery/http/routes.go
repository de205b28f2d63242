package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/RDias-31/presenteperfeito/config"
)

// RouterOptions carries the router's optional collaborators
type RouterOptions struct {
	Logger         zerolog.Logger
	Verifier       TokenVerifier
	Requests       RequestRecorder
	MetricsHandler http.Handler
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, opts RouterOptions) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(opts.Logger))
	router.Use(RequestIDMiddleware(opts.Logger))
	router.Use(LoggerMiddleware(opts.Logger, opts.Requests))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRouteNotFound})
	})

	// Operational endpoints
	router.GET("/health", handler.HealthCheck)
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	// Path used by the existing web client
	router.POST("/api/sugestoes", TimeoutMiddleware(cfg.Server.RequestTimeout), handler.GenerateSuggestions)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))
	{
		v1.GET("/quiz/questions", handler.ListQuestions)
		v1.POST("/suggestions", handler.GenerateSuggestions)

		authed := v1.Group("")
		authed.Use(AuthMiddleware(opts.Verifier, opts.Logger))
		{
			authed.POST("/quiz/submit", handler.SubmitQuiz)
			authed.GET("/credits", handler.GetCredits)
			authed.POST("/credits/register", handler.RegisterCredits)
		}
	}

	return router
}
