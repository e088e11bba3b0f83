package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/booking"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/schedule"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

type CreateAppointmentRequest struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Date      string `json:"date" validate:"required,date"`
	Time      string `json:"time" validate:"required,clock"`
}

func (s *Server) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req CreateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("appointments create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("appointments create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	past, err := schedule.IsDatePast(req.Date, s.Cfg.Timezone, time.Now())
	if err != nil {
		log.Warn("appointments create: invalid date", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if past {
		log.Warn("appointments create: date in the past", slog.String("date", req.Date))
		transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	if dateIsToday(req.Date, s.Cfg.Timezone) {
		pastSlot, err := schedule.IsSlotPast(req.Date, req.Time, s.Cfg.Timezone, time.Now())
		if err != nil {
			log.Warn("appointments create: invalid time", slog.String("time", req.Time))
			transport.WriteError(w, http.StatusBadRequest, "invalid time", nil)
			return
		}
		if pastSlot {
			log.Warn("appointments create: slot already passed", slog.String("date", req.Date), slog.String("time", req.Time))
			transport.WriteError(w, http.StatusBadRequest, "slot already passed", nil)
			return
		}
	}

	appointment, err := s.Booking.Book(r.Context(), booking.Request{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		s.writeBookingError(w, log, "appointments create", err)
		return
	}

	_ = s.Cache.DeletePrefix(r.Context(), "availability:"+req.Date)

	if s.Notifier != nil {
		go s.Notifier.Dispatch(*appointment)
	}

	log.Info("appointments create: booked",
		slog.String("appointment_id", appointment.ID),
		slog.String("service_id", appointment.ServiceID),
		slog.String("date", appointment.Date),
		slog.String("time", appointment.Time),
	)

	slots, err := s.Booking.AvailableSlots(r.Context(), req.Date)
	if err != nil {
		log.Warn("appointments create: availability compute error", slog.String("error", err.Error()))
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"appointment":    appointment,
		"availableSlots": slots,
	})
}

func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("appointments get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	appointment, err := s.Booking.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			log.Warn("appointments get: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointments get: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("appointments get: ok", slog.String("appointment_id", id))
	transport.WriteJSON(w, http.StatusOK, appointment)
}

// writeBookingError maps core rejections onto HTTP statuses: closed
// days and bad contact fields are client errors, a taken slot is a
// conflict, and storage failures are server errors with a retry-later
// message.
func (s *Server) writeBookingError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	if rej, ok := booking.AsRejection(err); ok {
		switch rej.Reason {
		case booking.ReasonClosedDay:
			log.Warn(op + ": salon closed")
			transport.WriteError(w, http.StatusBadRequest, "salon closed on this date", nil)
		case booking.ReasonSlotUnavailable:
			log.Warn(op + ": slot not available")
			transport.WriteError(w, http.StatusConflict, "slot not available", nil)
		case booking.ReasonInvalidContact:
			log.Warn(op + ": invalid contact info")
			transport.WriteError(w, http.StatusBadRequest, "invalid contact info", rej.Fields)
		case booking.ReasonUnknownService:
			log.Warn(op + ": service not found")
			transport.WriteError(w, http.StatusBadRequest, "service not found", nil)
		default:
			log.Warn(op + ": rejected")
			transport.WriteError(w, http.StatusBadRequest, "booking rejected", nil)
		}
		return
	}

	var se *booking.StorageError
	if errors.As(err, &se) {
		log.Error(op+": storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error, try again later", nil)
		return
	}

	log.Warn(op+": invalid request", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusBadRequest, "invalid request", nil)
}
