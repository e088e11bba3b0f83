package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/auth"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/middleware"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

const refreshCookieName = "salon_refresh"

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// AdminLogin authenticates against the admin allow-list. When an admin
// password hash is configured the password must also match; otherwise
// membership in the allow-list is enough (the front-end gates access
// through its own OAuth identity).
func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.JWT == nil {
		log.Error("admin login: jwt not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "login not configured", nil)
		return
	}

	var req AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	authorized, err := s.Admins.IsAuthorized(r.Context(), email)
	if err != nil {
		log.Error("admin login: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}
	if !authorized {
		log.Warn("admin login: email not authorized", slog.String("email", email))
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if s.Cfg.AdminPasswordHash != "" {
		if err := auth.ComparePassword(s.Cfg.AdminPasswordHash, req.Password); err != nil {
			log.Warn("admin login: bad password", slog.String("email", email))
			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
	}

	access, err := s.JWT.NewAccessToken(email, "admin")
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}
	refresh, err := s.JWT.NewRefreshToken(email, "admin")
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	s.setAuthCookies(w, access, refresh)

	log.Info("admin login: ok", slog.String("email", email))
	transport.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"email":  email,
	})
}

// AdminRefresh exchanges a valid refresh cookie for a fresh cookie
// pair. The refresh token rotates on every call.
func (s *Server) AdminRefresh(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.JWT == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "login not configured", nil)
		return
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		log.Warn("admin refresh: missing cookie")
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	claims, err := s.JWT.Parse(cookie.Value)
	if err != nil || claims.Role != "admin" {
		log.Warn("admin refresh: invalid token")
		s.clearAuthCookies(w)
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	// Revoked admins lose access once the current access token expires.
	authorized, err := s.Admins.IsAuthorized(r.Context(), claims.Email)
	if err != nil {
		log.Error("admin refresh: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}
	if !authorized {
		log.Warn("admin refresh: email no longer authorized", slog.String("email", claims.Email))
		s.clearAuthCookies(w)
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	access, err := s.JWT.NewAccessToken(claims.Email, "admin")
	if err != nil {
		log.Error("admin refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}
	refresh, err := s.JWT.NewRefreshToken(claims.Email, "admin")
	if err != nil {
		log.Error("admin refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	s.setAuthCookies(w, access, refresh)

	log.Info("admin refresh: ok", slog.String("email", claims.Email))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) AdminLogout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	s.clearAuthCookies(w)
	log.Info("admin logout: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) setAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    access,
		Path:     "/",
		MaxAge:   int(s.JWT.AccessTTL / time.Second),
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		Path:     "/api/admin",
		MaxAge:   int(s.JWT.RefreshTTL / time.Second),
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
