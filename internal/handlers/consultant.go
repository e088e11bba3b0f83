package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/transport"
)

const (
	styleFallback = "Nuestro estilista IA está afilando sus tijeras. ¡Por favor, inténtalo de nuevo más tarde!"
	faceFallback  = "No se pudo analizar la forma del rostro en este momento."
)

type StyleConsultRequest struct {
	Description string `json:"description" validate:"required,min=3,max=500"`
}

type FaceConsultRequest struct {
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

// ConsultStyle proxies a free-text style question to the AI consultant.
// Failures never surface as errors: the client always gets a usable
// Spanish message.
func (s *Server) ConsultStyle(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req StyleConsultRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("consultant style: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("consultant style: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	if s.AI == nil {
		log.Warn("consultant style: ai not configured")
		transport.WriteJSON(w, http.StatusOK, map[string]string{"recommendation": styleFallback})
		return
	}

	text, err := s.AI.StyleRecommendation(r.Context(), req.Description)
	if err != nil {
		log.Error("consultant style: ai error", slog.String("error", err.Error()))
		transport.WriteJSON(w, http.StatusOK, map[string]string{"recommendation": styleFallback})
		return
	}

	log.Info("consultant style: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]string{"recommendation": text})
}

func (s *Server) ConsultFaceShape(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req FaceConsultRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("consultant face: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("consultant face: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	if s.AI == nil {
		log.Warn("consultant face: ai not configured")
		transport.WriteJSON(w, http.StatusOK, map[string]string{"analysis": faceFallback})
		return
	}

	text, err := s.AI.AnalyzeFaceShape(r.Context(), req.ImageBase64)
	if err != nil {
		log.Error("consultant face: ai error", slog.String("error", err.Error()))
		transport.WriteJSON(w, http.StatusOK, map[string]string{"analysis": faceFallback})
		return
	}

	log.Info("consultant face: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]string{"analysis": text})
}
