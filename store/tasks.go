package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/highq/crm-backend/model"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTransition is returned when a status change would move a
	// task backward in the todo -> inprogress -> completed progression.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned for a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Directory resolves user ids to team member records. Task mutations use it
// to snapshot author identity into comments and to name the acting user in
// notifications.
type Directory interface {
	Member(id string) (model.TeamMember, bool)
}

// masterAdmin is the fallback identity when a comment author is not in the
// directory (the master admin account has no directory record).
var masterAdmin = model.TeamMember{
	ID:     model.AdminRecipientID,
	Name:   "Master Admin",
	Avatar: "https://i.pravatar.cc/150?img=12",
}

// TaskStore holds every task in memory for the lifetime of the process.
// Mutations fan out notifications through the notification store.
type TaskStore struct {
	mu            sync.Mutex
	tasks         []model.Task
	lastID        int64
	notifications *NotificationStore
	directory     Directory
}

func NewTaskStore(notifications *NotificationStore, directory Directory) *TaskStore {
	return &TaskStore{
		notifications: notifications,
		directory:     directory,
	}
}

func (s *TaskStore) nextID() int64 {
	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return now
}

// All returns every task, newest first.
func (s *TaskStore) All() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// ForAssignee returns the tasks assigned to userID, newest first.
func (s *TaskStore) ForAssignee(userID string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Task{}
	for _, t := range s.tasks {
		if t.HasAssignee(userID) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return cloneTask(t), true
		}
	}
	return model.Task{}, false
}

// Create adds a new task in the todo column and notifies every assignee.
func (s *TaskStore) Create(title string, priority model.TaskPriority, assignees []string) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, errors.New("task title must not be empty")
	}

	s.mu.Lock()
	task := model.Task{
		ID:        fmt.Sprintf("task-%d", s.nextID()),
		Title:     title,
		Priority:  priority,
		Status:    model.StatusTodo,
		Assignees: append([]string{}, assignees...),
		Comments:  []model.Comment{},
	}
	s.tasks = append([]model.Task{cloneTask(task)}, s.tasks...)
	s.mu.Unlock()

	for _, assigneeID := range assignees {
		s.notifications.Append(model.Notification{
			UserID:      assigneeID,
			Type:        model.NotificationTaskAssigned,
			Title:       "New Task Assigned to You",
			Description: fmt.Sprintf("A new task has been assigned: %q", task.Title),
			Link:        "/bde/dashboard",
		})
	}

	return task, nil
}

// SetStatus moves a task to newStatus on behalf of userID. The move is
// rejected when it would lower the task's status order; re-issuing the
// current status is a no-op success and emits nothing. On entering
// inprogress or completed the master admin inbox is notified, provided the
// acting user resolves in the directory.
func (s *TaskStore) SetStatus(taskID string, newStatus model.TaskStatus, userID string) (model.Task, error) {
	if !newStatus.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	s.mu.Lock()
	idx := s.indexOf(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	task := s.tasks[idx]
	if newStatus.Order() < task.Status.Order() {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, newStatus)
	}

	changed := task.Status != newStatus
	s.tasks[idx].Status = newStatus
	task = cloneTask(s.tasks[idx])
	s.mu.Unlock()

	if !changed {
		return task, nil
	}

	actor, ok := s.directory.Member(userID)
	if !ok {
		// Unknown actors still move the task, they just stay anonymous.
		return task, nil
	}

	switch newStatus {
	case model.StatusInProgress:
		s.notifications.Append(model.Notification{
			UserID:      model.AdminRecipientID,
			Type:        model.NotificationTaskProgress,
			Title:       "Task In Progress",
			Description: fmt.Sprintf("%s has started working on task: %q", actor.Name, task.Title),
			Link:        "/master/dashboard",
		})
	case model.StatusCompleted:
		s.notifications.Append(model.Notification{
			UserID:      model.AdminRecipientID,
			Type:        model.NotificationTaskCompleted,
			Title:       "Task Completed",
			Description: fmt.Sprintf("%s has completed the task: %q", actor.Name, task.Title),
			Link:        "/master/dashboard",
		})
	}

	return task, nil
}

// AddComment appends a comment to a task, snapshotting the author's display
// name and avatar at write time, and notifies every assignee except the
// author.
func (s *TaskStore) AddComment(taskID, authorID, text string) (model.Task, error) {
	author, ok := s.directory.Member(authorID)
	if !ok {
		author = masterAdmin
	}

	s.mu.Lock()
	idx := s.indexOf(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	comment := model.Comment{
		ID:           fmt.Sprintf("c-%s-%d", taskID, s.nextID()),
		AuthorID:     authorID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		Timestamp:    time.Now(),
	}
	s.tasks[idx].Comments = append(s.tasks[idx].Comments, comment)
	task := cloneTask(s.tasks[idx])
	s.mu.Unlock()

	for _, assigneeID := range task.Assignees {
		if assigneeID == authorID {
			continue
		}
		s.notifications.Append(model.Notification{
			UserID:      assigneeID,
			Type:        model.NotificationChatMention,
			Title:       fmt.Sprintf("New Comment on %q", task.Title),
			Description: fmt.Sprintf("%s: %q", author.Name, text),
			Link:        "/bde/dashboard",
		})
	}

	return task, nil
}

// indexOf must be called with the mutex held.
func (s *TaskStore) indexOf(taskID string) int {
	for i, t := range s.tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

func cloneTask(t model.Task) model.Task {
	t.Assignees = append([]string{}, t.Assignees...)
	t.Comments = append([]model.Comment{}, t.Comments...)
	return t
}
