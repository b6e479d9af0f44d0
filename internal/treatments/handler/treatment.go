package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/treatments/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
)

type TreatmentHandler struct {
	service service.TreatmentService
	log     *logger.Logger
}

func NewTreatmentHandler(service service.TreatmentService, log *logger.Logger) *TreatmentHandler {
	return &TreatmentHandler{
		service: service,
		log:     log,
	}
}

// ListForDate serves the catalog with per-treatment slot availability for the
// requested appointment date.
func (h *TreatmentHandler) ListForDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")

	treatments, err := h.service.ListForDate(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForDate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, treatments); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForDate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TreatmentHandler) ListSpecialties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	names, err := h.service.ListSpecialties(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListSpecialties", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, names); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSpecialties", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TreatmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/treatments", h.ListForDate)
	router.GET("/treatments/specialties", h.ListSpecialties)
}
