package store

import (
	"testing"

	"github.com/highq/crm-backend/model"
)

func TestAppendAssignsFields(t *testing.T) {
	s := NewNotificationStore()

	n := s.Append(model.Notification{
		UserID:      "1",
		Type:        model.NotificationTaskAssigned,
		Title:       "New Task Assigned to You",
		Description: `A new task has been assigned: "Prospecting"`,
		Link:        "/bde/dashboard",
		Read:        true, // must be reset by the store
	})

	if n.ID == "" {
		t.Error("Append did not assign an id")
	}
	if n.Read {
		t.Error("Append did not force read=false")
	}
	if n.Timestamp.IsZero() {
		t.Error("Append did not set a timestamp")
	}
}

func TestAppendIDsStrictlyIncreasing(t *testing.T) {
	s := NewNotificationStore()

	var prev string
	for i := 0; i < 100; i++ {
		n := s.Append(model.Notification{UserID: "1", Type: model.NotificationAIInsight})
		if prev != "" && n.ID <= prev {
			t.Fatalf("id %q not greater than previous %q", n.ID, prev)
		}
		prev = n.ID
	}
}

func TestForUserFiltersAndSorts(t *testing.T) {
	s := NewNotificationStore()
	s.Append(model.Notification{UserID: "1", Title: "first"})
	s.Append(model.Notification{UserID: "2", Title: "other recipient"})
	s.Append(model.Notification{UserID: "1", Title: "second"})

	got := s.ForUser("1")
	if len(got) != 2 {
		t.Fatalf("ForUser returned %d notifications, want 2", len(got))
	}
	for _, n := range got {
		if n.UserID != "1" {
			t.Errorf("ForUser leaked notification for %q", n.UserID)
		}
	}
	// Newest first.
	if got[0].Title != "second" || got[1].Title != "first" {
		t.Errorf("order = [%s, %s], want [second, first]", got[0].Title, got[1].Title)
	}
}

func TestMarkReadOwnershipScoped(t *testing.T) {
	s := NewNotificationStore()
	mine := s.Append(model.Notification{UserID: "1", Title: "mine"})
	theirs := s.Append(model.Notification{UserID: "2", Title: "theirs"})

	// Marking someone else's id is silently ignored.
	s.MarkRead("1", []string{mine.ID, theirs.ID})

	if got := s.ForUser("1"); !got[0].Read {
		t.Error("own notification was not marked read")
	}
	if got := s.ForUser("2"); got[0].Read {
		t.Error("another user's notification was marked read")
	}
}

func TestMarkAllRead(t *testing.T) {
	s := NewNotificationStore()
	s.Append(model.Notification{UserID: "1"})
	s.Append(model.Notification{UserID: "1"})
	s.Append(model.Notification{UserID: "2"})

	s.MarkAllRead("1")

	for _, n := range s.ForUser("1") {
		if !n.Read {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
	if got := s.ForUser("2"); got[0].Read {
		t.Error("MarkAllRead crossed user boundary")
	}
}
