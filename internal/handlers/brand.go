package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

func (s *Server) GetBrand(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	cacheKey := "brand:config"
	if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
		log.Info("brand: cache hit")
		writeCachedJSON(w, http.StatusOK, cached)
		return
	}

	cfg, err := s.Brand.Get(r.Context())
	if err != nil {
		log.Error("brand: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	if payload, err := encodeJSON(cfg); err == nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("brand: ok")
	transport.WriteJSON(w, http.StatusOK, cfg)
}

func (s *Server) AdminPutBrand(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var cfg models.BrandConfig
	if err := decodeJSON(r, &cfg); err != nil {
		log.Warn("admin brand put: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if cfg.SalonName == "" {
		log.Warn("admin brand put: missing salon name")
		transport.WriteError(w, http.StatusBadRequest, "salonName is required", nil)
		return
	}

	if err := s.Brand.Put(r.Context(), cfg); err != nil {
		log.Error("admin brand put: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), "brand:config")

	log.Info("admin brand put: ok")
	transport.WriteJSON(w, http.StatusOK, cfg)
}
