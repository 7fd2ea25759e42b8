package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nwfpay/internal/domain/auth"
	"nwfpay/internal/transport/http/api"
	"nwfpay/internal/transport/http/middleware"
)

type Handler struct {
	Store  *auth.Store
	Secret string
}

func NewHandler(store *auth.Store, secret string) *Handler {
	return &Handler{Store: store, Secret: secret}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", requestID)
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err == nil {
		err = auth.CheckPassword(user.PasswordHash, payload.Password)
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect", requestID)
		return
	}
	if err != nil {
		slog.Error("login failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", requestID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, auth.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"email": user.Email,
		"role":  user.Role,
	}, requestID)
}
