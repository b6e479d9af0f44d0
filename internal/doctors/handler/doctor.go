package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/doctors/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/middleware"
	"docportal/pkg/model"
)

// DoctorHandler exposes the doctor directory. Every route is admin-only.
type DoctorHandler struct {
	service service.DoctorService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewDoctorHandler(service service.DoctorService, guard *middleware.Guard, log *logger.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doctor model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &doctor); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, doctor); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, doctors); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/doctors", h.guard.RequireAdmin(h.List))
	router.POST("/doctors", h.guard.RequireAdmin(h.Create))
	router.DELETE("/doctors/:id", h.guard.RequireAdmin(h.Delete))
}
