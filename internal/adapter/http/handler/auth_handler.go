package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atharvapisal16/household-ledger/internal/adapter/http/dto"
	"github.com/atharvapisal16/household-ledger/internal/adapter/http/middleware"
	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/auth"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/metrics"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, creds usecase.Credentials) (*domain.Account, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	userUC     UserService
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC UserService, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsRegistered.Inc()
	}
	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.userUC.Authenticate(r.Context(), req.ToCredentials())
	if err != nil {
		if h.metrics != nil {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		}
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token:   token,
		Account: dto.AccountFromDomain(account),
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
