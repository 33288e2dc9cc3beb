package client

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/highq/crm-backend/model"
)

// defaultPollInterval matches the dashboard's refresh cadence.
const defaultPollInterval = 5 * time.Second

// NotificationFetcher is the slice of the API the poller needs. The full
// *API satisfies it; tests substitute fakes.
type NotificationFetcher interface {
	FetchNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string, ids []string) error
}

// FeedItem is a notification as held by the client: the server record plus
// local presentation state.
type FeedItem struct {
	model.Notification

	// Time is the human-readable age ("5 minutes ago"), refreshed on
	// every reconciliation.
	Time string `json:"time"`

	// Toast reports whether the one-time pop-up for this notification has
	// already fired.
	Toast bool `json:"toast"`
}

// Poller keeps a local notification feed in sync with the server by
// fetching on a fixed interval and reconciling. The server is authoritative
// for the read flag; toast and dismiss state are purely local.
type Poller struct {
	fetcher  NotificationFetcher
	userID   string
	interval time.Duration

	mu        sync.Mutex
	items     map[string]*FeedItem
	dismissed map[string]bool
	inFlight  bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewPoller(fetcher NotificationFetcher, userID string) *Poller {
	return &Poller{
		fetcher:   fetcher,
		userID:    userID,
		interval:  defaultPollInterval,
		items:     make(map[string]*FeedItem),
		dismissed: make(map[string]bool),
		stopCh:    make(chan struct{}),
	}
}

// Start fetches once immediately, then polls until Stop is called or the
// context is canceled.
func (p *Poller) Start(ctx context.Context) {
	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Poll performs one fetch-and-reconcile pass. A pass is skipped when the
// previous fetch is still in flight, so polls never overlap.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	fetched, err := p.fetcher.FetchNotifications(ctx, p.userID)
	if err != nil {
		log.Printf("Failed to fetch notifications: %v", err)
		return
	}

	p.reconcile(fetched)
}

// reconcile folds a fresh server snapshot into local state:
//   - unseen ids are added with Toast=false, eligible for one pop-up
//   - seen ids take every server field (the server owns the read flag) but
//     keep their local Toast, and their age string is recomputed
//   - local ids absent from the snapshot are kept, so a racy poll payload
//     can't make a notification vanish from view
//   - dismissed ids never come back
func (p *Poller) reconcile(fetched []model.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	for _, n := range fetched {
		if p.dismissed[n.ID] {
			continue
		}
		if item, ok := p.items[n.ID]; ok {
			item.Notification = n
			item.Time = TimeAgo(n.Timestamp, now)
			continue
		}
		p.items[n.ID] = &FeedItem{
			Notification: n,
			Time:         TimeAgo(n.Timestamp, now),
			Toast:        false,
		}
	}
}

// Notifications returns the local feed, newest first (ids are time-ordered,
// so descending id order is descending recency).
func (p *Poller) Notifications() []FeedItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]FeedItem, 0, len(p.items))
	for _, item := range p.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// UnreadCount is the number of locally held unread notifications.
func (p *Poller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, item := range p.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// PendingToasts returns the notifications whose pop-up has not fired yet,
// newest first.
func (p *Poller) PendingToasts() []FeedItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := []FeedItem{}
	for _, item := range p.items {
		if !item.Toast {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// MarkToastShown records that the pop-up for id has fired. Each id toasts
// at most once, ever.
func (p *Poller) MarkToastShown(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if item, ok := p.items[id]; ok {
		item.Toast = true
	}
}

// Dismiss hides a notification locally. The server record is untouched and
// later polls will not resurrect it.
func (p *Poller) Dismiss(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.items, id)
	p.dismissed[id] = true
}

// MarkRead flags one notification read, locally first and then on the
// server.
func (p *Poller) MarkRead(ctx context.Context, id string) error {
	p.mu.Lock()
	if item, ok := p.items[id]; ok {
		item.Read = true
	}
	p.mu.Unlock()

	return p.fetcher.MarkNotificationsRead(ctx, p.userID, []string{id})
}

// MarkAllRead flags every notification read, locally first and then on the
// server.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	p.mu.Lock()
	for _, item := range p.items {
		item.Read = true
	}
	p.mu.Unlock()

	return p.fetcher.MarkNotificationsRead(ctx, p.userID, nil)
}
