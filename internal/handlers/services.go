package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/utils"
)

type AdminServiceRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Price           int    `json:"price" validate:"gte=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"gt=0"`
	ImageURL        string `json:"imageUrl" validate:"omitempty,url"`
	Category        string `json:"category" validate:"required,oneof=hair beard combo other"`
}

func (s *Server) GetServices(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	cacheKey := "services:all"
	if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
		log.Info("services: cache hit")
		writeCachedJSON(w, http.StatusOK, cached)
		return
	}

	services, err := s.Catalog.List(r.Context())
	if err != nil {
		log.Error("services: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	response := map[string]interface{}{
		"services": services,
	}

	if payload, err := encodeJSON(response); err == nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("services: ok", slog.Int("count", len(services)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) AdminCreateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin services create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin services create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	services, err := s.Catalog.List(r.Context())
	if err != nil {
		log.Error("admin services create: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	id := utils.Slugify(req.Name)
	for _, existing := range services {
		if existing.ID == id {
			log.Warn("admin services create: id exists", slog.String("service_id", id))
			transport.WriteError(w, http.StatusConflict, "service already exists", nil)
			return
		}
	}

	service := models.Service{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		Category:        req.Category,
		CreatedAt:       time.Now().In(s.Cfg.Timezone),
	}

	if err := s.Catalog.Save(r.Context(), append(services, service)); err != nil {
		log.Error("admin services create: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "services:all")

	log.Info("admin services create: ok", slog.String("service_id", service.ID))
	transport.WriteJSON(w, http.StatusCreated, service)
}

func (s *Server) AdminUpdateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin services update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req AdminServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin services update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin services update: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	services, err := s.Catalog.List(r.Context())
	if err != nil {
		log.Error("admin services update: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	idx := -1
	for i := range services {
		if services[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Warn("admin services update: not found", slog.String("service_id", id))
		transport.WriteError(w, http.StatusNotFound, "service not found", nil)
		return
	}

	// The id stays stable across renames; existing appointments keep
	// their own snapshot either way.
	services[idx].Name = req.Name
	services[idx].Description = req.Description
	services[idx].Price = req.Price
	services[idx].DurationMinutes = req.DurationMinutes
	services[idx].ImageURL = req.ImageURL
	services[idx].Category = req.Category

	if err := s.Catalog.Save(r.Context(), services); err != nil {
		log.Error("admin services update: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "services:all")

	log.Info("admin services update: ok", slog.String("service_id", id))
	transport.WriteJSON(w, http.StatusOK, services[idx])
}

func (s *Server) AdminDeleteService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin services delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	services, err := s.Catalog.List(r.Context())
	if err != nil {
		log.Error("admin services delete: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	kept := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	if len(kept) == len(services) {
		log.Warn("admin services delete: not found", slog.String("service_id", id))
		transport.WriteError(w, http.StatusNotFound, "service not found", nil)
		return
	}

	if err := s.Catalog.Save(r.Context(), kept); err != nil {
		log.Error("admin services delete: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "services:all")

	log.Info("admin services delete: ok", slog.String("service_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
