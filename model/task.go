package model

import "time"

// TaskStatus is a kanban column. Statuses are totally ordered and a task
// may only ever move to an equal-or-higher-ordered status.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inprogress"
	StatusCompleted  TaskStatus = "completed"
)

// Order returns the position of the status in the progression
// todo(1) < inprogress(2) < completed(3), or 0 for an unknown status.
func (s TaskStatus) Order() int {
	switch s {
	case StatusTodo:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 0
	}
}

func (s TaskStatus) IsValid() bool {
	return s.Order() > 0
}

// TaskPriority is a free-form label from a fixed set. The set matches the
// options the dashboard offers when creating a task.
type TaskPriority string

const (
	PriorityHigh         TaskPriority = "High Priority"
	PriorityImportant    TaskPriority = "Important"
	PriorityOK           TaskPriority = "OK"
	PriorityMeh          TaskPriority = "Meh"
	PriorityNotImportant TaskPriority = "Not that important"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityImportant, PriorityOK, PriorityMeh, PriorityNotImportant:
		return true
	}
	return false
}

// Comment is a message on a task. Author display fields are snapshotted
// from the directory at write time so later profile changes don't rewrite
// comment history. Comments are immutable once appended.
type Comment struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Text         string    `json:"text"`
	Timestamp    time.Time `json:"timestamp"`
}

// Task is a unit of work assigned to one or more team members.
type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Priority  TaskPriority `json:"priority"`
	Status    TaskStatus   `json:"status"`
	Assignees []string     `json:"assignees"`
	Comments  []Comment    `json:"comments"`
}

// HasAssignee reports whether userID is one of the task's assignees.
func (t Task) HasAssignee(userID string) bool {
	for _, id := range t.Assignees {
		if id == userID {
			return true
		}
	}
	return false
}
