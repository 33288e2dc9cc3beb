package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/highq/crm-backend/model"
	"github.com/highq/crm-backend/services"
	"github.com/highq/crm-backend/store"
)

type fakeDirectory map[string]model.TeamMember

func (d fakeDirectory) Member(id string) (model.TeamMember, bool) {
	m, ok := d[id]
	return m, ok
}

func setupTaskRouter(t *testing.T) (*mux.Router, *store.TaskStore, *store.NotificationStore) {
	t.Helper()

	notifications := store.NewNotificationStore()
	directory := fakeDirectory{
		"1": {ID: "1", Name: "Amélie Laurent", Avatar: "https://i.pravatar.cc/150?img=1"},
		"2": {ID: "2", Name: "Benoît Dubois", Avatar: "https://i.pravatar.cc/150?img=2"},
	}
	tasks := store.NewTaskStore(notifications, directory)

	hub := services.NewHub()
	go hub.Run()

	h := NewTaskHandler(tasks, hub)
	r := mux.NewRouter()
	r.HandleFunc("/api/tasks", h.GetTasks).Methods("GET")
	r.HandleFunc("/api/tasks", h.CreateTask).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}/status", h.UpdateTaskStatus).Methods("PUT")
	r.HandleFunc("/api/tasks/{taskId}/comments", h.AddComment).Methods("POST")
	return r, tasks, notifications
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTaskEndpoint(t *testing.T) {
	r, _, notifications := setupTaskRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Identify 50 new prospects",
		"priority":  "High Priority",
		"assignees": []string{"1", "2"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}

	var task model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Errorf("created task status = %q, want todo", task.Status)
	}

	if got := notifications.ForUser("1"); len(got) != 1 {
		t.Errorf("assignee 1 has %d notifications, want 1", len(got))
	}
}

func TestCreateTaskMissingFields(t *testing.T) {
	r, _, _ := setupTaskRouter(t)

	cases := []map[string]any{
		{"priority": "OK", "assignees": []string{"1"}},
		{"title": "No priority", "assignees": []string{"1"}},
		{"title": "No assignees", "priority": "OK"},
	}
	for _, body := range cases {
		if w := doJSON(t, r, http.MethodPost, "/api/tasks", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestGetTasksFilterByUser(t *testing.T) {
	r, tasks, _ := setupTaskRouter(t)
	tasks.Create("Mine", model.PriorityOK, []string{"1"})
	tasks.Create("Not mine", model.PriorityOK, []string{"2"})

	w := doJSON(t, r, http.MethodGet, "/api/tasks?userId=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var mine []model.Task
	json.Unmarshal(w.Body.Bytes(), &mine)
	if len(mine) != 1 || mine[0].Title != "Mine" {
		t.Errorf("filtered tasks = %v, want just \"Mine\"", mine)
	}

	// The administrative view gets everything.
	w = doJSON(t, r, http.MethodGet, "/api/tasks", nil)
	var all []model.Task
	json.Unmarshal(w.Body.Bytes(), &all)
	if len(all) != 2 {
		t.Errorf("unfiltered tasks = %d, want 2", len(all))
	}
}

func TestUpdateTaskStatusEndpoint(t *testing.T) {
	r, tasks, _ := setupTaskRouter(t)
	task, _ := tasks.Create("Qualify leads", model.PriorityHigh, []string{"1"})

	w := doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID+"/status", map[string]any{
		"status": "inprogress",
		"userId": "1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	// Backward moves and unknown tasks fail distinguishably.
	w = doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID+"/status", map[string]any{
		"status": "todo",
		"userId": "1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("backward move: status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/task-nope/status", map[string]any{
		"status": "completed",
		"userId": "1",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown task: status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID+"/status", map[string]any{
		"status": "archived",
		"userId": "1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status value: status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID+"/status", map[string]any{
		"status": "completed",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing userId: status = %d, want 400", w.Code)
	}
}

func TestAddCommentEndpoint(t *testing.T) {
	r, tasks, _ := setupTaskRouter(t)
	task, _ := tasks.Create("Research competitors", model.PriorityImportant, []string{"1", "2"})

	w := doJSON(t, r, http.MethodPost, "/api/tasks/"+task.ID+"/comments", map[string]any{
		"authorId": "1",
		"text":     "Started the initial research.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var updated model.Task
	json.Unmarshal(w.Body.Bytes(), &updated)
	if len(updated.Comments) != 1 {
		t.Fatalf("task has %d comments, want 1", len(updated.Comments))
	}

	w = doJSON(t, r, http.MethodPost, "/api/tasks/task-nope/comments", map[string]any{
		"authorId": "1",
		"text":     "hello?",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown task: status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+task.ID+"/comments", map[string]any{
		"authorId": "1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text: status = %d, want 400", w.Code)
	}
}
