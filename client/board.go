package client

import (
	"context"
	"errors"
	"sync"

	"github.com/highq/crm-backend/model"
)

// ErrBackwardMove is returned when a drop would move a task to a
// lower-ordered column. The drop is rejected before any network call.
var ErrBackwardMove = errors.New("tasks cannot move backward")

// ErrUnknownTask is returned when the board does not hold the task.
var ErrUnknownTask = errors.New("unknown task")

// StatusUpdater persists a status change. The full *API satisfies it.
type StatusUpdater interface {
	UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, userID string) (model.Task, error)
}

// Board is the kanban board controller. Moves are applied optimistically:
// local state updates immediately and rolls back in full if persistence
// fails, so local and remote state either converge or stay at the last
// known-good snapshot.
type Board struct {
	updater StatusUpdater
	userID  string

	mu    sync.Mutex
	tasks []model.Task
}

func NewBoard(updater StatusUpdater, userID string) *Board {
	return &Board{updater: updater, userID: userID}
}

// SetTasks replaces the board contents, e.g. after a fresh fetch.
func (b *Board) SetTasks(tasks []model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]model.Task{}, tasks...)
}

// Tasks returns a snapshot of the board.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Task{}, b.tasks...)
}

// Column returns the tasks currently in the given status column.
func (b *Board) Column(status model.TaskStatus) []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []model.Task{}
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// CanDrop reports whether dropping the task on the target column would be a
// valid forward move. The UI uses this to highlight valid columns while
// dragging.
func (b *Board) CanDrop(taskID string, target model.TaskStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.tasks {
		if t.ID == taskID {
			return target.Order() >= t.Status.Order()
		}
	}
	return false
}

// Move handles a drop: it validates the transition locally, applies it
// optimistically, then persists it. Any persistence failure restores the
// pre-move snapshot.
func (b *Board) Move(ctx context.Context, taskID string, target model.TaskStatus) error {
	b.mu.Lock()
	idx := -1
	for i, t := range b.tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return ErrUnknownTask
	}
	if target.Order() < b.tasks[idx].Status.Order() {
		// Invalid drop, rejected before any network call.
		b.mu.Unlock()
		return ErrBackwardMove
	}

	snapshot := append([]model.Task{}, b.tasks...)
	b.tasks[idx].Status = target
	b.mu.Unlock()

	if _, err := b.updater.UpdateTaskStatus(ctx, taskID, target, b.userID); err != nil {
		b.mu.Lock()
		b.tasks = snapshot
		b.mu.Unlock()
		return err
	}
	return nil
}
