package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Filipelaw45/gowallet/internal/adapter/http/dto"
	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/infrastructure/metrics"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// Authenticator verifies user credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authenticator Authenticator
	tokens        TokenIssuer
	metrics       *metrics.Metrics
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authenticator Authenticator, tokens TokenIssuer, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		tokens:        tokens,
		metrics:       m,
	}
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.metrics.AuthFailures.Inc()
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
