package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/ai"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/auth"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/booking"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/cache"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/config"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/middleware"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/notifications"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/repo"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/validation"
)

type Server struct {
	Cfg      *config.Config
	Booking  *booking.Service
	Catalog  *repo.Catalog
	Gallery  *repo.Gallery
	Hours    *repo.Hours
	Brand    *repo.Brand
	Admins   *repo.Admins
	Val      *validation.Validator
	JWT      *auth.Manager
	Log      *slog.Logger
	Cache    cache.Cache
	Notifier *notifications.Dispatcher
	AI       *ai.Client
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
