package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hrms-core/hrms-backend-go/internal/domain/auth"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/jwt"
	authsvc "github.com/hrms-core/hrms-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	GoogleLogin(w http.ResponseWriter, r *http.Request)
	GoogleCallback(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService *authsvc.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService *authsvc.Service, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{authService: authService, jwtService: jwtService}
}

func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshTokenExpiresIn))
	response.Success(w, resp)
}

func (h *AuthHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshTokenExpiresIn))
	response.Success(w, resp)
}

func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		h.authService.Logout(r.Context(), cookie.Value)
	}

	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *AuthHandlerImpl) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	url, state, err := h.authService.GoogleRedirectURL(r.UserAgent())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/api/v1/auth",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandlerImpl) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Authorization code is required", nil)
		return
	}

	resp, err := h.authService.GoogleCallback(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshTokenExpiresIn))
	response.Success(w, resp)
}
