package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
)

// GroupHandler provides HTTP handlers for shared groups.
type GroupHandler struct {
	groupService *services.GroupService
	authService  *services.AuthService
}

// NewGroupHandler constructs a handler with the provided services.
func NewGroupHandler(groupService *services.GroupService, authService *services.AuthService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		authService:  authService,
	}
}

// GroupRouter registers group routes on the given router.
func GroupRouter(r chi.Router, groupService *services.GroupService, authService *services.AuthService) {
	handler := NewGroupHandler(groupService, authService)

	r.Get("/", handler.ListGroups)
	r.Post("/", handler.CreateGroup)
	r.Get("/users", handler.ListGroupUsers)
	r.Put("/update-task", handler.UpdateGroupTask)
	r.Get("/{groupID}", handler.GetGroup)
}

// ListGroups returns all groups with each creator's current display
// name. An empty database is a 404, as the client expects.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if len(groups) == 0 {
		writeMsg(w, http.StatusNotFound, "No se encontraron grupos en la base de datos")
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

// GetGroup fetches a single group, for client-side polling.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := h.groupService.Get(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Grupo no encontrado")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// CreateGroup stores a new group with member display names snapshotted
// at creation time.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" ||
		len(req.Members) == 0 || req.CreatedBy == "" || req.Status == "" {
		writeMsg(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	group, err := h.groupService.Create(r.Context(), req.Name, req.Description, req.Members, req.CreatedBy, req.Status)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// ListGroupUsers returns the id and username of every registered user,
// for the member picker in the group form.
func (h *GroupHandler) ListGroupUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if len(users) == 0 {
		writeMsg(w, http.StatusNotFound, "No se encontraron usuarios en la base de datos")
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		username := user.Username
		if username == "" {
			username = "Username no disponible"
		}
		summaries = append(summaries, UserSummary{ID: user.ID, Username: username})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// UpdateGroupTask changes the status of a task nested under a group.
func (h *GroupHandler) UpdateGroupTask(w http.ResponseWriter, r *http.Request) {
	var req GroupTaskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if req.GroupID == "" || req.TaskID == "" || req.NewStatus == "" {
		writeMsg(w, http.StatusBadRequest, "Faltan parámetros necesarios")
		return
	}

	if err := h.groupService.UpdateTaskStatus(r.Context(), req.GroupID, req.TaskID, req.NewStatus); err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeMsg(w, http.StatusOK, "Tarea actualizada correctamente")
}

// GroupCreateRequest is the JSON body for group creation. Members are
// user ids; their display names are resolved server-side.
type GroupCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"createdBy"`
	Status      string   `json:"estatus"`
}

type GroupTaskUpdateRequest struct {
	GroupID   string `json:"groupId"`
	TaskID    string `json:"taskId"`
	NewStatus string `json:"newStatus"`
}

// UserSummary is the trimmed user record exposed to the member picker.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
