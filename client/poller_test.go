package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/highq/crm-backend/model"
)

// fakeFetcher serves canned notification sets and records mark-read calls.
type fakeFetcher struct {
	notifications []model.Notification
	err           error
	markedUser    string
	markedIDs     []string
	markCalls     int
}

func (f *fakeFetcher) FetchNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notifications, nil
}

func (f *fakeFetcher) MarkNotificationsRead(ctx context.Context, userID string, ids []string) error {
	f.markedUser = userID
	f.markedIDs = ids
	f.markCalls++
	return nil
}

func notif(id string, read bool) model.Notification {
	return model.Notification{
		ID:        id,
		UserID:    "1",
		Type:      model.NotificationTaskAssigned,
		Title:     "New Task Assigned to You",
		Read:      read,
		Timestamp: time.Now().Add(-time.Minute),
	}
}

func TestPollerReconciliation(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false)}}
	p := NewPoller(fetcher, "1")

	p.Poll(context.Background())
	p.MarkToastShown("notif-1")

	// Server now reports notif-1 read and delivers a new notif-2.
	fetcher.notifications = []model.Notification{notif("notif-1", true), notif("notif-2", false)}
	p.Poll(context.Background())

	items := p.Notifications()
	if len(items) != 2 {
		t.Fatalf("feed has %d items, want 2", len(items))
	}

	byID := map[string]FeedItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	n1 := byID["notif-1"]
	if !n1.Toast {
		t.Error("notif-1 lost its toast flag on reconciliation")
	}
	if !n1.Read {
		t.Error("notif-1 read flag not taken from server")
	}

	n2 := byID["notif-2"]
	if n2.Toast {
		t.Error("notif-2 should still be eligible for its toast")
	}

	if got := p.UnreadCount(); got != 1 {
		t.Errorf("unread count = %d, want 1", got)
	}
}

func TestPollerKeepsItemsMissingFromFetch(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false), notif("notif-2", false)}}
	p := NewPoller(fetcher, "1")
	p.Poll(context.Background())

	// A racy poll payload omits notif-1; it must not vanish locally.
	fetcher.notifications = []model.Notification{notif("notif-2", false)}
	p.Poll(context.Background())

	if len(p.Notifications()) != 2 {
		t.Errorf("feed has %d items, want 2", len(p.Notifications()))
	}
}

func TestPollerToastFiresOnce(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false)}}
	p := NewPoller(fetcher, "1")

	p.Poll(context.Background())
	if got := len(p.PendingToasts()); got != 1 {
		t.Fatalf("pending toasts = %d, want 1", got)
	}

	p.MarkToastShown("notif-1")
	if got := len(p.PendingToasts()); got != 0 {
		t.Fatalf("pending toasts after show = %d, want 0", got)
	}

	// Further polls never re-arm the toast.
	p.Poll(context.Background())
	if got := len(p.PendingToasts()); got != 0 {
		t.Errorf("pending toasts after repoll = %d, want 0", got)
	}
}

func TestPollerDismissIsLocalAndSticky(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false)}}
	p := NewPoller(fetcher, "1")
	p.Poll(context.Background())

	p.Dismiss("notif-1")
	if len(p.Notifications()) != 0 {
		t.Fatal("dismissed notification still in feed")
	}
	if fetcher.markCalls != 0 {
		t.Error("dismiss made a server call")
	}

	// The server still has it; it must not come back.
	p.Poll(context.Background())
	if len(p.Notifications()) != 0 {
		t.Error("dismissed notification resurrected by poll")
	}
}

func TestPollerMarkRead(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false), notif("notif-2", false)}}
	p := NewPoller(fetcher, "1")
	p.Poll(context.Background())

	if err := p.MarkRead(context.Background(), "notif-1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if fetcher.markedUser != "1" || len(fetcher.markedIDs) != 1 || fetcher.markedIDs[0] != "notif-1" {
		t.Errorf("server call = (%q, %v), want (1, [notif-1])", fetcher.markedUser, fetcher.markedIDs)
	}
	if got := p.UnreadCount(); got != 1 {
		t.Errorf("unread count = %d, want 1", got)
	}

	if err := p.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if fetcher.markedIDs != nil {
		t.Errorf("MarkAllRead sent ids %v, want none", fetcher.markedIDs)
	}
	if got := p.UnreadCount(); got != 0 {
		t.Errorf("unread count after MarkAllRead = %d, want 0", got)
	}
}

func TestPollerFetchErrorKeepsState(t *testing.T) {
	fetcher := &fakeFetcher{notifications: []model.Notification{notif("notif-1", false)}}
	p := NewPoller(fetcher, "1")
	p.Poll(context.Background())

	fetcher.err = errors.New("connection refused")
	p.Poll(context.Background())

	if len(p.Notifications()) != 1 {
		t.Error("fetch failure disturbed local state")
	}
}
