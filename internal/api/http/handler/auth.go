package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
	"github.com/postline/postline-auth/internal/service"
)

// SessionService defines registration, login and logout operations.
type SessionService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.Account, error)
	LoginLocal(ctx context.Context, params service.LoginParams) (model.CredentialPair, error)
	LoginFederated(ctx context.Context, code string) (model.CredentialPair, error)
	Logout(ctx context.Context)
}

// TokenService defines credential rotation.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (model.CredentialPair, error)
}

// Auth handles the HTTP endpoints for authentication.
type Auth struct {
	sessionService SessionService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessionService SessionService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		sessionService: sessionService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Code string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type accountResponse struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Email       string `json:"email"`
	AccountType string `json:"accountType"`
}

type credentialPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	AccountID string `json:"accountId"`
}

// Register creates a password account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Handle == "" || req.Email == "" || req.Password == "" {
		h.badRequest(w, "handle, email and password are required")
		return
	}

	account, err := h.sessionService.Register(r.Context(), service.RegisterParams{
		Handle: req.Handle,
		Email:  req.Email,
		Secret: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"handle", req.Handle,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"handle", account.Handle)

	h.writeJSON(w, http.StatusCreated, accountResponse{
		ID:          account.ID.String(),
		Handle:      account.Handle,
		Email:       account.Email,
		AccountType: string(account.Type),
	})
}

// Login authenticates with a handle or email plus password.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Login == "" || req.Password == "" {
		h.badRequest(w, "login and password are required")
		return
	}

	pair, err := h.sessionService.LoginLocal(r.Context(), service.LoginParams{
		Login:  req.Login,
		Secret: req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: password login failed",
			"login", req.Login)
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: password login completed",
		"login", req.Login)

	h.writeJSON(w, http.StatusOK, credentialPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// LoginGoogle authenticates with an authorization code from the federated
// provider's consent flow.
func (h *Auth) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Code == "" {
		h.badRequest(w, "code is required")
		return
	}

	pair, err := h.sessionService.LoginFederated(r.Context(), req.Code)
	if err != nil {
		h.logger.Info("Auth handler: federated login failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: federated login completed")

	h.writeJSON(w, http.StatusOK, credentialPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh exchanges a refresh credential for a new pair, invalidating the
// presented one.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		h.badRequest(w, "no token provided")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: token refresh failed")
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: token refresh completed")

	h.writeJSON(w, http.StatusOK, credentialPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout acknowledges the logout. Credentials are not revoked server side.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessionService.Logout(r.Context())
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// Session reports the account resolved by the authorization gate.
func (h *Auth) Session(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.contextManager.GetAccountIDFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: unauthorizedMessage})
		return
	}
	h.writeJSON(w, http.StatusOK, sessionResponse{AccountID: accountID.String()})
}

// decode parses the request body into dst, rejecting unknown fields. It
// writes the 400 response itself and reports whether decoding succeeded.
func (h *Auth) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.badRequest(w, "invalid request body")
		return false
	}
	return true
}

func (h *Auth) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: message})
}

func (h *Auth) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Auth handler: failed to write response",
			"error", err.Error())
	}
}
