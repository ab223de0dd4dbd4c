package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Filipelaw45/gowallet/internal/adapter/http/dto"
	"github.com/Filipelaw45/gowallet/internal/adapter/http/middleware"
	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/infrastructure/metrics"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// UserService is the part of the user use case the handler depends on.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService UserService
	metrics     *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{userService: userService, metrics: m}
}

// Register creates a new user with a seeded wallet.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register user", err.Error())
		return
	}

	h.metrics.UsersRegistered.Inc()

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Me returns the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
