package model

import "time"

// NotificationType identifies the domain event behind a notification.
type NotificationType string

const (
	NotificationNewLead            NotificationType = "new_lead"
	NotificationChatMention        NotificationType = "chat_mention"
	NotificationConversionApproved NotificationType = "conversion_approved"
	NotificationAIInsight          NotificationType = "ai_insight"
	NotificationCareerUpdate       NotificationType = "career_update"
	NotificationTaskAssigned       NotificationType = "task_assigned"
	NotificationTaskProgress       NotificationType = "task_progress"
	NotificationTaskCompleted      NotificationType = "task_completed"
)

// AdminRecipientID is the fixed inbox for the master/admin role. Task
// progress and completion events are addressed to it.
const AdminRecipientID = "master-admin"

// Notification is an alert addressed to a single recipient. Once created it
// only ever changes through its read flag; it is never deleted server-side.
type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Link        string           `json:"link"`
	Read        bool             `json:"read"`
	Timestamp   time.Time        `json:"timestamp"`
}
