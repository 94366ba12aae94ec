// Package login serves admin authentication and token issuance.
package login

import (
	"context"
	"encoding/json"
	"net/http"

	"orgvault/internal/app/registry"
	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"

	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	Registry *registry.Registry
}

func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Registry: reg,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin handles POST /admin/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("request body is not valid JSON"))
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, h.Log, apperr.Validation("email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tok, err := h.Registry.Login(ctx, req.Email, req.Password)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, tokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
	})
}
