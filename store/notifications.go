package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/highq/crm-backend/model"
)

// NotificationStore holds notification records for every recipient in
// memory for the lifetime of the process. Mutations are serialized by a
// mutex; there is no delete operation, clients hide notifications locally.
type NotificationStore struct {
	mu            sync.Mutex
	notifications []model.Notification
	lastID        int64
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// nextID returns a fresh time-ordered token. Ids created within the same
// millisecond are tie-broken by bumping past the previous id, so ids are
// strictly increasing.
func (s *NotificationStore) nextID() string {
	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return fmt.Sprintf("notif-%d", now)
}

// Append stores a new notification, assigning its id, read=false and the
// creation timestamp. Only the recipient, type, title, description and link
// of the argument are honored.
func (s *NotificationStore) Append(n model.Notification) model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextID()
	n.Read = false
	n.Timestamp = time.Now()

	// Newest first; queries filter by recipient before relying on order.
	s.notifications = append([]model.Notification{n}, s.notifications...)
	return n
}

// ForUser returns every notification addressed to userID, newest first.
// The result is a copy; callers may not mutate store state through it.
func (s *NotificationStore) ForUser(userID string) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// MarkRead flips the read flag on the given ids, but only for notifications
// owned by userID. Ids owned by someone else (or unknown) are ignored.
func (s *NotificationStore) MarkRead(userID string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && wanted[s.notifications[i].ID] {
			s.notifications[i].Read = true
		}
	}
}

// MarkAllRead marks every notification owned by userID as read.
func (s *NotificationStore) MarkAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
		}
	}
}
