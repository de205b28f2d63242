package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// Public messages. Details stay in the logs.
const (
	msgInvalidInput      = "Respostas do quiz em falta."
	msgUnauthenticated   = "Sessão expirada. Faz login outra vez."
	msgNoCredits         = "Já usaste todos os teus créditos. Em breve vais poder comprar mais pesquisas."
	msgConfigMissing     = "Configuração de IA em falta no servidor."
	msgLedgerUnavailable = "Não foi possível carregar os teus créditos. Tenta de novo já a seguir."
	msgGenerationFailed  = "Não foi possível gerar sugestões neste momento."
	msgInternalError     = "Ocorreu um erro inesperado."
	msgRouteNotFound     = "Recurso não encontrado."
)

// statusFor maps a service error to its HTTP status and public message
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrInsufficientCredits):
		return http.StatusPaymentRequired, msgNoCredits
	case errors.Is(err, domain.ErrConfigurationMissing):
		return http.StatusInternalServerError, msgConfigMissing
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, msgLedgerUnavailable
	case domain.KindName(err) != "unknown":
		return http.StatusInternalServerError, msgGenerationFailed
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
