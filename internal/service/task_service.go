package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
)

// Pagination clamping policy: out-of-range page numbers and page sizes are
// clamped rather than rejected, so sloppy clients still get a valid page.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// maxPage bounds the page number so the query offset
	// (page-1)*pageSize stays within int32 range for any allowed page
	// size. Pages past the last one return an empty item list anyway.
	maxPage = math.MaxInt32 / MaxPageSize
)

// TaskUpdate carries the fields of a partial task update. Nil fields leave
// the stored values unchanged; this is a patch, not a full replace.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.Status
	Priority    *domain.Priority
}

// TaskService provides task management operations scoped to an owner.
// Every operation takes the caller's user ID; tasks owned by other users
// are reported as not found, never as forbidden, so their existence does
// not leak.
type TaskService interface {
	// Create creates a new task owned by the given user.
	Create(
		ctx context.Context,
		userID uuid.UUID,
		title, description string,
		dueDate *time.Time,
		status domain.Status,
		priority domain.Priority,
	) (*domain.Task, error)

	// Get retrieves one of the user's tasks by ID.
	// Returns store.ErrTaskNotFound if it does not exist or is not theirs.
	Get(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)

	// List retrieves a filtered, sorted, paginated listing of the user's tasks.
	List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error)

	// Update applies a partial update to one of the user's tasks.
	// Returns store.ErrTaskNotFound if it does not exist or is not theirs.
	Update(ctx context.Context, taskID, userID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// Delete removes one of the user's tasks.
	// Returns store.ErrTaskNotFound if it does not exist or is not theirs.
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
		timeFunc:  time.Now,
	}
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// Create creates a new task bound to the caller's user ID.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
	dueDate *time.Time,
	status domain.Status,
	priority domain.Priority,
) (*domain.Task, error) {
	task, err := domain.NewTask(userID, title, description, dueDate, status, priority)
	if err != nil {
		s.logger.Debug("task creation rejected: invalid data",
			"error", err, "user_id", userID)
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			"error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID, "user_id", userID)
	return task, nil
}

// Get retrieves one of the user's tasks by ID.
func (s *TaskServiceImpl) Get(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetForUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found",
				"task_id", taskID, "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve task",
				"error", err, "task_id", taskID)
		}
		return nil, err
	}

	return task, nil
}

// List retrieves a page of the user's tasks. Page and page size are
// clamped into their valid ranges before the query runs.
func (s *TaskServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) (*store.TaskPage, error) {
	filter.Page, filter.PageSize = clampPage(filter.Page, filter.PageSize)

	page, err := s.taskStore.ListForUser(ctx, userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSortField) {
			s.logger.Debug("task listing rejected: bad sort field",
				"user_id", userID, "sort_by", string(filter.SortBy))
		} else {
			s.logger.Error("failed to list tasks",
				"error", err, "user_id", userID)
		}
		return nil, err
	}

	return page, nil
}

// Update applies a partial update: only non-nil fields overwrite stored
// values. Any applied update stamps UpdatedAt.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	task, err := s.taskStore.GetForUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found for update",
				"task_id", taskID, "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve task for update",
				"error", err, "task_id", taskID)
		}
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}

	// Updates set the timestamp explicitly; the store never does it behind
	// our back.
	now := s.timeFunc().UTC()
	task.UpdatedAt = &now

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			"error", err, "task_id", taskID)
		return nil, err
	}

	s.logger.Info("task updated",
		"task_id", taskID, "user_id", userID)
	return task, nil
}

// Delete removes one of the user's tasks.
func (s *TaskServiceImpl) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	if err := s.taskStore.DeleteForUser(ctx, taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found for delete",
				"task_id", taskID, "user_id", userID)
		} else {
			s.logger.Error("failed to delete task",
				"error", err, "task_id", taskID)
		}
		return err
	}

	s.logger.Info("task deleted",
		"task_id", taskID, "user_id", userID)
	return nil
}

// clampPage normalizes pagination parameters: pages below 1 become 1,
// pages above maxPage are capped, sizes below 1 fall back to the default,
// sizes above the cap are capped.
func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
