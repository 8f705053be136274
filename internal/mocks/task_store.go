package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in memory and mirrors the real store's
// filter/sort/paginate semantics so service and handler tests can assert
// listing behavior without a database.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetForUserFn    func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	ListForUserFn   func(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error)
	UpdateFn        func(ctx context.Context, task *domain.Task) error
	DeleteForUserFn func(ctx context.Context, id, userID uuid.UUID) error

	// Data for default implementation
	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
	ListError   error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetForUser implements the TaskStore interface
func (m *MockTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

// ListForUser implements the TaskStore interface
func (m *MockTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) (*store.TaskPage, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, filter)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.DueDate != nil {
			if task.DueDate == nil {
				continue
			}
			if filter.AfterDueDate {
				if !task.DueDate.After(*filter.DueDate) {
					continue
				}
			} else if task.DueDate.After(*filter.DueDate) {
				continue
			}
		}
		copied := *task
		matched = append(matched, &copied)
	}

	if err := sortTasks(matched, filter.SortBy, filter.SortDescending); err != nil {
		return nil, err
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	return &store.TaskPage{
		Items:      matched[start:end],
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// DeleteForUser implements the TaskStore interface
func (m *MockTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface; the mock ignores transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

var (
	priorityRank = map[domain.Priority]int{
		domain.PriorityLow:    1,
		domain.PriorityMedium: 2,
		domain.PriorityHigh:   3,
	}
	statusRank = map[domain.Status]int{
		domain.StatusPending:    1,
		domain.StatusInProgress: 2,
		domain.StatusCompleted:  3,
	}
)

// sortTasks orders tasks the way the real store does: by creation time by
// default, or by the whitelisted sort field with ID as tiebreaker.
func sortTasks(tasks []*domain.Task, sortBy domain.SortField, descending bool) error {
	var less func(a, b *domain.Task) int
	switch sortBy {
	case "":
		less = func(a, b *domain.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case domain.SortByDueDate:
		less = func(a, b *domain.Task) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1 // nil due dates sort last in either direction
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(*b.DueDate)
		}
	case domain.SortByPriority:
		less = func(a, b *domain.Task) int {
			return priorityRank[a.Priority] - priorityRank[b.Priority]
		}
	case domain.SortByStatus:
		less = func(a, b *domain.Task) int {
			return statusRank[a.Status] - statusRank[b.Status]
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidSortField, sortBy)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := less(tasks[i], tasks[j])
		if descending {
			// Nil due dates stay last even when descending.
			if sortBy == domain.SortByDueDate {
				if tasks[i].DueDate == nil {
					return false
				}
				if tasks[j].DueDate == nil {
					return true
				}
			}
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return nil
}
