package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

type AdminEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) AdminListAdmins(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	admins, err := s.Admins.List(r.Context())
	if err != nil {
		log.Error("admin list: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("admin list: ok", slog.Int("count", len(admins)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"master": s.Admins.MasterEmail(),
		"admins": admins,
	})
}

func (s *Server) AdminAddAdmin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin add: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin add: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == s.Admins.MasterEmail() {
		log.Warn("admin add: master is implicit")
		transport.WriteError(w, http.StatusConflict, "master admin is always authorized", nil)
		return
	}

	admins, err := s.Admins.List(r.Context())
	if err != nil {
		log.Error("admin add: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}
	for _, admin := range admins {
		if strings.ToLower(admin.Email) == email {
			log.Warn("admin add: already authorized", slog.String("email", email))
			transport.WriteError(w, http.StatusConflict, "email already authorized", nil)
			return
		}
	}

	entry := models.AuthorizedAdmin{Email: email, AddedAt: time.Now().In(s.Cfg.Timezone)}
	if err := s.Admins.Save(r.Context(), append(admins, entry)); err != nil {
		log.Error("admin add: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("admin add: ok", slog.String("email", email))
	transport.WriteJSON(w, http.StatusCreated, entry)
}

// AdminRemoveAdmin drops an email from the allow-list. The master admin
// is not stored there and cannot be removed.
func (s *Server) AdminRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin remove: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin remove: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == s.Admins.MasterEmail() {
		log.Warn("admin remove: cannot remove master")
		transport.WriteError(w, http.StatusForbidden, "master admin cannot be removed", nil)
		return
	}

	admins, err := s.Admins.List(r.Context())
	if err != nil {
		log.Error("admin remove: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	kept := make([]models.AuthorizedAdmin, 0, len(admins))
	for _, admin := range admins {
		if strings.ToLower(admin.Email) != email {
			kept = append(kept, admin)
		}
	}
	if len(kept) == len(admins) {
		log.Warn("admin remove: not found", slog.String("email", email))
		transport.WriteError(w, http.StatusNotFound, "email not in allow-list", nil)
		return
	}

	if err := s.Admins.Save(r.Context(), kept); err != nil {
		log.Error("admin remove: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("admin remove: ok", slog.String("email", email))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
