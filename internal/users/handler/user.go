package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/users/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/middleware"
	"docportal/pkg/model"
)

type UserHandler struct {
	service service.UserService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, guard *middleware.Guard, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &user); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// AdminStatus answers "is this email an admin" for UI gating. It is not a
// security boundary; admin routes are guarded server-side.
func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	status, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AdminStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, status); err != nil {
		h.log.Error("failed to write JSON response", "handler", "AdminStatus", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")

	token, err := h.service.IssueToken(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "IssueToken", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, token); err != nil {
		h.log.Error("failed to write JSON response", "handler", "IssueToken", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Promote(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Promote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/auth/token", h.IssueToken)
	router.POST("/users", h.Create)
	router.GET("/users", h.List)
	router.GET("/users/admin/:email", h.AdminStatus)
	router.PUT("/users/admin/:id", h.guard.RequireAdmin(h.Promote))
}
