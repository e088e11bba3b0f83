package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/booking"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

type AdminStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

type AdminListQuery struct {
	Date string `validate:"omitempty,date"`
}

func (s *Server) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := AdminListQuery{Date: r.URL.Query().Get("date")}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("admin appointments list: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	appointments := s.Booking.List(r.Context())
	if q.Date != "" {
		appointments = s.Booking.ListByDate(r.Context(), q.Date)
	}

	log.Info("admin appointments list: ok", slog.Int("count", len(appointments)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

func (s *Server) AdminUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin appointments status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin appointments status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin appointments status: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	appointment, err := s.Booking.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			log.Warn("admin appointments status: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
		case errors.Is(err, booking.ErrInvalidTransition):
			log.Warn("admin appointments status: invalid transition",
				slog.String("appointment_id", id),
				slog.String("status", req.Status),
			)
			transport.WriteError(w, http.StatusConflict, "invalid status transition", nil)
		default:
			log.Error("admin appointments status: error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		}
		return
	}

	_ = s.Cache.DeletePrefix(r.Context(), "availability:"+appointment.Date)

	log.Info("admin appointments status: ok",
		slog.String("appointment_id", id),
		slog.String("status", appointment.Status),
	)
	transport.WriteJSON(w, http.StatusOK, appointment)
}
