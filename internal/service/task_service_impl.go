package service

import (
	"context"
	"fmt"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
)

type taskService struct {
	store    store.Store
	observer UseCaseObserver
}

// NewTaskService creates a TaskService over the given record store. An
// optional observer receives use-case telemetry.
func NewTaskService(st store.Store, observers ...UseCaseObserver) TaskService {
	return &taskService{
		store:    st,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) observe(ctx context.Context, name string, started time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

func (s *taskService) List(ctx context.Context, filter store.Filter) (tasks []domain.Task, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, "tasks.list", started, map[string]any{"category": filter.Category, "count": len(tasks)}, err)
	}()
	return s.store.ListTasks(ctx, filter)
}

func (s *taskService) Reschedule(ctx context.Context, id string, start, end time.Time) (err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, "tasks.reschedule", started, map[string]any{"task_id": id}, err)
	}()

	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return store.NewError(store.KindValidation, "service.reschedule",
			fmt.Errorf("start %s after end %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	_, err = s.store.UpdateTask(ctx, id, store.TaskFields{StartDate: &start, EndDate: &end})
	return err
}

func (s *taskService) AddDependency(ctx context.Context, successor domain.Task, predecessorID string) (err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, "tasks.add_dependency", started,
			map[string]any{"successor": successor.ID, "predecessor": predecessorID}, err)
	}()

	if predecessorID == successor.ID {
		return store.NewError(store.KindValidation, "service.add_dependency",
			fmt.Errorf("task %s cannot depend on itself", successor.ID))
	}
	if successor.DependsOn(predecessorID) {
		return store.NewError(store.KindValidation, "service.add_dependency",
			fmt.Errorf("task %s already depends on %s", successor.ID, predecessorID))
	}

	deps := make([]string, 0, len(successor.Dependencies)+1)
	deps = append(deps, successor.Dependencies...)
	deps = append(deps, predecessorID)
	_, err = s.store.UpdateTask(ctx, successor.ID, store.TaskFields{Dependencies: &deps})
	return err
}

func (s *taskService) QuickEdit(ctx context.Context, id string, fields QuickEditFields) (err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, "tasks.quick_edit", started, map[string]any{"task_id": id}, err)
	}()

	if fields.IsEmpty() {
		return store.NewError(store.KindValidation, "service.quick_edit",
			fmt.Errorf("empty quick edit for task %s", id))
	}
	_, err = s.store.UpdateTask(ctx, id, store.TaskFields{
		Title:    fields.Title,
		Status:   fields.Status,
		Progress: fields.Progress,
	})
	return err
}

func (s *taskService) Seed(ctx context.Context, tasks []domain.Task) (err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, "tasks.seed", started, map[string]any{"count": len(tasks)}, err)
	}()

	for i := range tasks {
		if err = s.store.CreateTask(ctx, &tasks[i]); err != nil {
			return fmt.Errorf("seeding task %q: %w", tasks[i].Title, err)
		}
	}
	return nil
}
