package store

import (
	"time"

	"github.com/highq/crm-backend/model"
)

// SeedDemoData loads the demo tasks and notifications the dashboard ships
// with. Intended for development servers; production deployments start
// empty.
func SeedDemoData(tasks *TaskStore, notifications *NotificationStore) {
	tasks.mu.Lock()
	tasks.tasks = []model.Task{
		{
			ID: "task-1", Title: "Identify 50 new prospects in the SaaS industry",
			Priority: model.PriorityHigh, Status: model.StatusTodo,
			Assignees: []string{"1", "3"},
			Comments: []model.Comment{{
				ID: "c-task-1-1", AuthorID: "2", AuthorName: "Benoît Dubois",
				AuthorAvatar: "https://i.pravatar.cc/150?img=2",
				Text:         "Let's aim to get this done by EOD Friday.",
				Timestamp:    time.Now().Add(-3 * time.Hour),
			}},
		},
		{
			ID: "task-2", Title: "Research top 10 competitors for Q3 strategy meeting",
			Priority: model.PriorityImportant, Status: model.StatusTodo,
			Assignees: []string{"2"},
			Comments: []model.Comment{{
				ID: "c-task-2-1", AuthorID: model.AdminRecipientID, AuthorName: "Master Admin",
				AuthorAvatar: "https://i.pravatar.cc/150?img=12",
				Text:         "Please ensure this is comprehensive. The board will be reviewing.",
				Timestamp:    time.Now().Add(-24 * time.Hour),
			}},
		},
		{
			ID: "task-5", Title: "Qualify 20 inbound leads from last week's marketing campaign",
			Priority: model.PriorityHigh, Status: model.StatusInProgress,
			Assignees: []string{"1", "2"}, Comments: []model.Comment{},
		},
		{
			ID: "task-8", Title: "Closed deal with Innovatech Solutions ($50k ARR)",
			Priority: model.PriorityImportant, Status: model.StatusCompleted,
			Assignees: []string{"5", "2"}, Comments: []model.Comment{},
		},
	}
	tasks.mu.Unlock()

	notifications.mu.Lock()
	notifications.notifications = []model.Notification{
		{
			ID: "notif-1", UserID: "1", Type: model.NotificationNewLead,
			Title:       "New Hot Lead Assigned",
			Description: "John Doe from Innovatech looks like a great fit.",
			Link:        "/bde/leads/lead-1", Read: true,
			Timestamp: time.Now().Add(-48 * time.Hour),
		},
		{
			ID: "notif-2", UserID: model.AdminRecipientID, Type: model.NotificationTaskCompleted,
			Title:       "Task Completed",
			Description: `David Garcia has completed the task: "Follow up with conference leads"`,
			Link:        "/master/dashboard", Read: false,
			Timestamp: time.Now().Add(-48 * time.Hour),
		},
	}
	notifications.mu.Unlock()
}
