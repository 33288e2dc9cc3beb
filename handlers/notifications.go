package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/highq/crm-backend/store"
)

// NotificationHandler handles the notification endpoints.
type NotificationHandler struct {
	notifications *store.NotificationStore
}

func NewNotificationHandler(notifications *store.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GetForUser returns the recipient's notifications, newest first.
func (h *NotificationHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	writeJSON(w, http.StatusOK, h.notifications.ForUser(userID))
}

// MarkRead marks the given notification ids as read for the user. When no
// ids are supplied every notification owned by the user is marked.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          string   `json:"userId"`
		NotificationIDs []string `json:"notificationIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	if len(req.NotificationIDs) > 0 {
		h.notifications.MarkRead(req.UserID, req.NotificationIDs)
	} else {
		h.notifications.MarkAllRead(req.UserID)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked as read."})
}
