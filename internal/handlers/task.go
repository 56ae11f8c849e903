package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
	"github.com/taskapp/apiserver/types"
)

// TaskHandler provides HTTP handlers for per-user tasks.
type TaskHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

// NewTaskHandler constructs a handler with the provided services.
func NewTaskHandler(taskService *services.TaskService, authService *services.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authService: authService,
	}
}

// TaskRouter registers task routes on the given router.
func TaskRouter(r chi.Router, taskService *services.TaskService, authService *services.AuthService) {
	handler := NewTaskHandler(taskService, authService)

	r.Post("/", handler.CreateTask)
	r.Get("/{userID}", handler.ListTasks)
	r.Put("/{userID}/{taskID}", handler.UpdateTask)
	r.Delete("/{userID}/{taskID}", handler.DeleteTask)
}

// CreateTask appends a new task to the owning user's collection. The
// owner must exist; the creation timestamp is set server-side.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if req.UserID == "" || !req.complete() {
		writeMsg(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if _, err := h.authService.GetByID(r.Context(), req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	task, err := h.taskService.Create(r.Context(), req.UserID, req.task())
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusCreated, TaskCreatedResponse{
		Msg:    "Tarea creada exitosamente",
		TaskID: task.ID,
	})
}

// ListTasks returns every task of a user. A user with no tasks gets an
// empty list, not an error.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	tasks, err := h.taskService.ListByUser(r.Context(), userID)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// UpdateTask replaces the mutable fields of an existing task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	taskID := chi.URLParam(r, "taskID")

	var req TaskUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	err := h.taskService.Update(r.Context(), userID, taskID, req.task())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Tarea no encontrada")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeMsg(w, http.StatusOK, "Tarea actualizada correctamente")
}

// DeleteTask removes a task by its (user, task) key.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	taskID := chi.URLParam(r, "taskID")

	err := h.taskService.Delete(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Tarea no encontrada")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeMsg(w, http.StatusOK, "Tarea eliminada correctamente")
}

// TaskUpsertRequest is the JSON body for task creation and update.
// UserID is only read on creation; updates take the owner from the
// path.
type TaskUpsertRequest struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TimeUntilFinish string `json:"timeUntilFinish"`
	Category        string `json:"category"`
	Status          string `json:"status"`
}

func (req TaskUpsertRequest) complete() bool {
	return strings.TrimSpace(req.Name) != "" &&
		strings.TrimSpace(req.Description) != "" &&
		strings.TrimSpace(req.TimeUntilFinish) != "" &&
		strings.TrimSpace(req.Category) != "" &&
		strings.TrimSpace(req.Status) != ""
}

func (req TaskUpsertRequest) task() types.Task {
	return types.Task{
		Name:            req.Name,
		Description:     req.Description,
		TimeUntilFinish: req.TimeUntilFinish,
		Category:        req.Category,
		Status:          req.Status,
	}
}

type TaskCreatedResponse struct {
	Msg    string `json:"msg"`
	TaskID string `json:"taskId"`
}

type TaskListResponse struct {
	Tasks []types.Task `json:"tasks"`
}
