package store

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/highq/crm-backend/model"
)

// TestTaskStatusNeverRegresses drives a task through random status change
// requests and checks that its status order never decreases, whatever the
// request sequence.
func TestTaskStatusNeverRegresses(t *testing.T) {
	statuses := []model.TaskStatus{model.StatusTodo, model.StatusInProgress, model.StatusCompleted}

	rapid.Check(t, func(rt *rapid.T) {
		tasks, _ := setupTaskStore(t)
		task, err := tasks.Create("Pipeline review", model.PriorityOK, []string{"1"})
		if err != nil {
			rt.Fatalf("Create failed: %v", err)
		}

		current := model.StatusTodo
		n := rapid.IntRange(1, 25).Draw(rt, "num_moves")
		for i := 0; i < n; i++ {
			requested := rapid.SampledFrom(statuses).Draw(rt, "status")

			updated, err := tasks.SetStatus(task.ID, requested, "1")
			if requested.Order() < current.Order() {
				if !errors.Is(err, ErrInvalidTransition) {
					rt.Fatalf("backward move %s -> %s: error = %v, want ErrInvalidTransition", current, requested, err)
				}
			} else {
				if err != nil {
					rt.Fatalf("forward move %s -> %s failed: %v", current, requested, err)
				}
				current = updated.Status
			}

			got, ok := tasks.Get(task.ID)
			if !ok {
				rt.Fatalf("task disappeared")
			}
			if got.Status.Order() < current.Order() {
				rt.Fatalf("status regressed to %s, last accepted %s", got.Status, current)
			}
		}
	})
}
