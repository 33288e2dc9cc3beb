package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/highq/crm-backend/model"
	"github.com/highq/crm-backend/services"
	"github.com/highq/crm-backend/store"
)

// TaskHandler handles the task endpoints.
type TaskHandler struct {
	tasks *store.TaskStore
	hub   *services.Hub
}

func NewTaskHandler(tasks *store.TaskStore, hub *services.Hub) *TaskHandler {
	return &TaskHandler{tasks: tasks, hub: hub}
}

// GetTasks lists tasks. With ?userId= only that assignee's tasks are
// returned (the BDE view); without it every task is (the master view).
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	var tasks []model.Task
	if userID != "" {
		tasks = h.tasks.ForAssignee(userID)
	} else {
		tasks = h.tasks.All()
	}

	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task in the todo column and notifies its assignees.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string             `json:"title"`
		Priority  model.TaskPriority `json:"priority"`
		Assignees []string           `json:"assignees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.Title == "" || req.Priority == "" || len(req.Assignees) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	task, err := h.tasks.Create(req.Title, req.Priority, req.Assignees)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.hub.Broadcast(services.Event{Type: services.EventTaskCreated, TaskID: task.ID})
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTaskStatus moves a task along the todo -> inprogress -> completed
// progression. Backward moves are rejected with 400, unknown tasks with
// 404, so callers can tell the two apart.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	var req struct {
		Status model.TaskStatus `json:"status"`
		UserID string           `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.Status == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing status or userId.")
		return
	}

	task, err := h.tasks.SetStatus(taskID, req.Status, req.UserID)
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	case errors.Is(err, store.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "Invalid status transition.")
		return
	case errors.Is(err, store.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Unknown status value.")
		return
	case err != nil:
		log.Printf("Error updating task status: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.Broadcast(services.Event{Type: services.EventTasksUpdated, TaskID: task.ID})
	writeJSON(w, http.StatusOK, task)
}

// AddComment appends a comment to a task and notifies the other assignees.
func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	var req struct {
		AuthorID string `json:"authorId"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.AuthorID == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "Missing authorId or text.")
		return
	}

	task, err := h.tasks.AddComment(taskID, req.AuthorID, req.Text)
	if errors.Is(err, store.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}
	if err != nil {
		log.Printf("Error adding comment: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.hub.Broadcast(services.Event{Type: services.EventTasksUpdated, TaskID: task.ID})
	writeJSON(w, http.StatusOK, task)
}
