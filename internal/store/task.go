package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
)

// TaskFilter describes the filtering, sorting and pagination parameters
// for a task listing. Nil filter fields are not applied.
type TaskFilter struct {
	// Status, when set, restricts results to tasks with this exact status.
	Status *domain.Status

	// Priority, when set, restricts results to tasks with this exact priority.
	Priority *domain.Priority

	// DueDate, when set, restricts results by due date: strictly after it
	// when AfterDueDate is true, at or before it otherwise.
	DueDate      *time.Time
	AfterDueDate bool

	// SortBy selects the ordering; the zero value means store-defined
	// default order (creation time). Must be a whitelisted domain.SortField.
	SortBy         domain.SortField
	SortDescending bool

	// Page is 1-based. PageSize bounds the returned slice.
	// Callers are expected to pass already-clamped values.
	Page     int
	PageSize int
}

// TaskPage bundles one page of matching tasks with the total match count
// and pagination metadata, so the caller can compute total pages.
type TaskPage struct {
	Items      []*domain.Task `json:"items"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if the task does not exist or is owned by a
	// different user; the two cases are indistinguishable to the caller.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListForUser retrieves a filtered, sorted, paginated listing of the
	// user's tasks. The total count is computed over the filtered set
	// before the page slice is applied; a page past the end yields an
	// empty item list with the correct total.
	ListForUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) (*TaskPage, error)

	// Update saves changes to an existing task, scoped to its owner.
	// Returns ErrTaskNotFound if the task does not exist or is owned by a
	// different user.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if the task does not exist or is owned by a
	// different user.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
