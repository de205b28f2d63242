package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/RDias-31/presenteperfeito/internal/usecase"
)

// QuizService is the credits-gated quiz workflow
type QuizService interface {
	Submit(ctx context.Context, userID string, answers domain.QuizAnswers) (*usecase.QuizResult, error)
	Credits(ctx context.Context, userID string) (int, error)
	Register(ctx context.Context, userID string) (int, bool, error)
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ServiceInfo is reported by the health check
type ServiceInfo struct {
	Version            string
	Provider           string
	ProviderConfigured bool
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	generator domain.SuggestionGenerator
	quiz      QuizService
	ledger    Pinger
	info      ServiceInfo
}

// NewHandler creates a new HTTP handler. ledger may be nil.
func NewHandler(generator domain.SuggestionGenerator, quiz QuizService, ledger Pinger, info ServiceInfo) *Handler {
	return &Handler{
		generator: generator,
		quiz:      quiz,
		ledger:    ledger,
		info:      info,
	}
}

// AnswersRequest is the body of both suggestion endpoints
type AnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":             "healthy",
		"service":            "presenteperfeito-backend",
		"version":            h.info.Version,
		"provider":           h.info.Provider,
		"providerConfigured": h.info.ProviderConfigured,
	}

	if h.ledger != nil {
		if err := h.ledger.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["ledger"] = "unreachable"
		} else {
			body["ledger"] = "ok"
		}
	}

	c.JSON(status, body)
}

// ListQuestions returns the quiz questions in display order
func (h *Handler) ListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": usecase.QuizQuestions()})
}

// GenerateSuggestions handles POST /api/v1/suggestions
func (h *Handler) GenerateSuggestions(c *gin.Context) {
	answers, ok := bindAnswers(c)
	if !ok {
		return
	}

	batch, err := h.generator.Generate(c.Request.Context(), answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": batch})
}

// SubmitQuiz handles POST /api/v1/quiz/submit for an authenticated user
func (h *Handler) SubmitQuiz(c *gin.Context) {
	answers, ok := bindAnswers(c)
	if !ok {
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), c.GetString(ContextUserID), answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCredits handles GET /api/v1/credits
func (h *Handler) GetCredits(c *gin.Context) {
	credits, err := h.quiz.Credits(c.Request.Context(), c.GetString(ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": credits})
}

// RegisterCredits handles POST /api/v1/credits/register
func (h *Handler) RegisterCredits(c *gin.Context) {
	credits, created, err := h.quiz.Register(c.Request.Context(), c.GetString(ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"credits": credits, "created": created})
}

// bindAnswers decodes the request body. A body without an answers mapping is
// left to the generator, which rejects it as invalid input.
func bindAnswers(c *gin.Context) (domain.QuizAnswers, bool) {
	var req AnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewGenerationError(domain.ErrInvalidInput, err.Error(), nil))
		return nil, false
	}
	if req.Answers == nil {
		return nil, true
	}
	return domain.QuizAnswers(req.Answers), true
}
