package services

import (
	"context"
	"time"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// TaskService orchestrates task operations: validation rules first,
// then the tenancy guard, then persistence. It is the single boundary
// that maps internal failures to the external error contract.
type TaskService struct {
	taskRepo ports.TaskRepository
	guard    *TenancyGuard
	logger   *logger.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, guard *TenancyGuard, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		guard:    guard,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask creates a new task. Status is forced to pending and the
// priority defaults to medium when omitted.
func (s *TaskService) CreateTask(ctx context.Context, scope entities.Principal, req ports.CreateTaskRequest) (*entities.Task, error) {
	priority := entities.PriorityMedium
	if req.Priority != nil {
		priority = entities.Priority(*req.Priority)
	}

	draft := entities.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
	}

	if err := draft.ValidateCreate(s.now()); err != nil {
		return nil, translate(s.logger, "create task", err)
	}

	if err := s.guard.Check(ctx, scope); err != nil {
		return nil, translate(s.logger, "create task", err)
	}

	task := &entities.Task{
		AccountID:   scope.AccountID,
		UserID:      scope.UserID,
		Title:       draft.NormalizedTitle(),
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      entities.StatusPending,
	}

	created, err := s.taskRepo.Insert(ctx, task)
	if err != nil {
		return nil, translate(s.logger, "create task", err)
	}

	s.logger.Infow("task created", "task_id", created.ID, "account_id", scope.AccountID, "user_id", scope.UserID)

	return s.annotate(created), nil
}

// GetTask retrieves a task by id within the caller's scope.
func (s *TaskService) GetTask(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error) {
	if err := s.guard.Check(ctx, scope); err != nil {
		return nil, translate(s.logger, "get task", err)
	}

	task, err := s.taskRepo.GetByID(ctx, scope, taskID)
	if err != nil {
		return nil, translate(s.logger, "get task", err)
	}

	return s.annotate(task), nil
}

// ListTasks returns the caller's non-deleted tasks, optionally filtered
// by status and priority equality, in the repository's contract order.
func (s *TaskService) ListTasks(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error) {
	if err := s.guard.Check(ctx, scope); err != nil {
		return nil, translate(s.logger, "list tasks", err)
	}

	tasks, err := s.taskRepo.List(ctx, scope, filter)
	if err != nil {
		return nil, translate(s.logger, "list tasks", err)
	}

	for _, task := range tasks {
		s.annotate(task)
	}

	return tasks, nil
}

// UpdateTask overwrites the mutable fields of a task. The tenancy guard
// is intentionally not consulted here: account and user are validated
// implicitly through the task match condition.
func (s *TaskService) UpdateTask(ctx context.Context, scope entities.Principal, taskID int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	draft := entities.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    entities.Priority(req.Priority),
		Status:      entities.Status(req.Status),
	}

	if err := draft.ValidateUpdate(s.now()); err != nil {
		return nil, translate(s.logger, "update task", err)
	}

	task := &entities.Task{
		ID:          taskID,
		Title:       draft.NormalizedTitle(),
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    entities.Priority(req.Priority),
		Status:      entities.Status(req.Status),
	}

	updated, err := s.taskRepo.Update(ctx, scope, task)
	if err != nil {
		return nil, translate(s.logger, "update task", err)
	}

	s.logger.Infow("task updated", "task_id", taskID, "account_id", scope.AccountID, "user_id", scope.UserID)

	return s.annotate(updated), nil
}

// annotate fills in the derived fields of a task before it is handed
// back to the caller.
func (s *TaskService) annotate(task *entities.Task) *entities.Task {
	task.Overdue = task.IsOverdue(s.now())
	return task
}

// DeleteTask soft-deletes a task. Deleting the same id twice fails the
// second time because the row is no longer visible.
func (s *TaskService) DeleteTask(ctx context.Context, scope entities.Principal, taskID int64) error {
	if err := s.guard.Check(ctx, scope); err != nil {
		return translate(s.logger, "delete task", err)
	}

	if err := s.taskRepo.MarkDeleted(ctx, scope, taskID); err != nil {
		return translate(s.logger, "delete task", err)
	}

	s.logger.Infow("task deleted", "task_id", taskID, "account_id", scope.AccountID, "user_id", scope.UserID)

	return nil
}
