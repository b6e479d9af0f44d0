package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/payments/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateIntent", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateIntent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, intent); err != nil {
		h.log.Error("failed to write JSON response", "handler", "CreateIntent", "operation", "WriteJSON", "error", err)
	}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Record", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Record(r.Context(), &payment); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Record", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, payment); err != nil {
		h.log.Error("failed to write created response", "handler", "Record", "operation", "WriteCreated", "error", err)
	}
}

// RegisterRoutes mounts the payment routes. Both are open: the checkout page
// calls them before any credential exists, and recording is validated against
// the referenced booking rather than the caller's identity.
func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/payments/intent", h.CreateIntent)
	router.POST("/payments", h.Record)
}
