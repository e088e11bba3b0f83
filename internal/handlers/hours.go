package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/schedule"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

func (s *Server) GetHours(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	hours, err := s.Hours.Get(r.Context())
	if err != nil {
		log.Error("hours: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("hours: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"hours":    hours,
		"timezone": s.Cfg.Timezone.String(),
	})
}

// AdminPutHours replaces the whole week at once. Availability caches
// for every date are invalidated because any day may have changed.
func (s *Server) AdminPutHours(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var hours models.BusinessHours
	if err := decodeJSON(r, &hours); err != nil {
		log.Warn("admin hours put: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := schedule.ValidateHours(hours); err != nil {
		log.Warn("admin hours put: invalid hours", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := s.Hours.Put(r.Context(), hours); err != nil {
		log.Error("admin hours put: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.DeletePrefix(r.Context(), "availability:")

	log.Info("admin hours put: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"hours": hours})
}
