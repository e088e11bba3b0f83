package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

type AdminGalleryRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Title    string `json:"title" validate:"required"`
}

func (s *Server) GetGallery(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	cacheKey := "gallery:all"
	if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
		log.Info("gallery: cache hit")
		writeCachedJSON(w, http.StatusOK, cached)
		return
	}

	items, err := s.Gallery.List(r.Context())
	if err != nil {
		log.Error("gallery: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	response := map[string]interface{}{
		"items": items,
	}

	if payload, err := encodeJSON(response); err == nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("gallery: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) AdminCreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminGalleryRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin gallery create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin gallery create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	items, err := s.Gallery.List(r.Context())
	if err != nil {
		log.Error("admin gallery create: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	item := models.GalleryItem{
		ID:       uuid.NewString(),
		ImageURL: req.ImageURL,
		Title:    req.Title,
	}

	if err := s.Gallery.Save(r.Context(), append(items, item)); err != nil {
		log.Error("admin gallery create: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "gallery:all")

	log.Info("admin gallery create: ok", slog.String("item_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) AdminDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("admin gallery delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	items, err := s.Gallery.List(r.Context())
	if err != nil {
		log.Error("admin gallery delete: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	kept := make([]models.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		log.Warn("admin gallery delete: not found", slog.String("item_id", id))
		transport.WriteError(w, http.StatusNotFound, "gallery item not found", nil)
		return
	}

	if err := s.Gallery.Save(r.Context(), kept); err != nil {
		log.Error("admin gallery delete: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "gallery:all")

	log.Info("admin gallery delete: ok", slog.String("item_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
