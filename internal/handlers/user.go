package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
)

// UserHandler provides the admin panel endpoints: the user list and
// role assignment.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, authService *services.AuthService) {
	handler := NewUserHandler(authService)

	r.Get("/", handler.ListUsers)
	r.Patch("/{userID}", handler.SetRole)
}

// ListUsers returns all registered users. Password hashes are never
// serialized.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if len(users) == 0 {
		writeMsg(w, http.StatusNotFound, "No se encontraron usuarios en la base de datos")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// SetRole changes a user's role. Promoting a second user to admin is
// rejected: at most one administrator may exist.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req RoleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if req.Role == "" {
		writeMsg(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if err := h.authService.SetRole(r.Context(), userID, req.Role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		if errors.Is(err, services.ErrAdminExists) {
			writeMsg(w, http.StatusBadRequest, "Ya existe un administrador")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, RoleUpdateResponse{
		Msg:  "Rol actualizado correctamente",
		Role: req.Role,
	})
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type RoleUpdateResponse struct {
	Msg  string `json:"msg"`
	Role string `json:"role"`
}
