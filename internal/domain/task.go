package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field length limits for tasks.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Common task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title must be at most 100 characters long")
	ErrDescriptionTooLong = errors.New("task description must be at most 500 characters long")
	ErrEmptyTaskOwner     = errors.New("task must have an owning user")
)

// Status represents the lifecycle state of a task.
type Status string

// Valid task statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether the status is one of the recognized values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a wire-format status value into a Status.
// Matching is case-insensitive and accepts both "InProgress" and
// "in_progress" spellings.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.ReplaceAll(value, "_", "")) {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Priority represents the urgency level of a task.
type Priority string

// Valid task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether the priority is one of the recognized values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority converts a wire-format priority value into a Priority.
// Matching is case-insensitive.
func ParsePriority(value string) (Priority, error) {
	switch strings.ToLower(value) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, value)
}

// Task represents a single to-do item owned by a user.
// The owning user is referenced by ID only; task and user records are
// joined at the store layer, never materialized as a cyclic object graph.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewTask creates a new Task owned by the given user.
// Zero-valued status and priority fall back to the defaults
// (pending / medium). Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	title, description string,
	dueDate *time.Time,
	status Status,
	priority Priority,
) (*Task, error) {
	if status == "" {
		status = StatusPending
	}
	if priority == "" {
		priority = PriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}
	// Rune counts, not byte lengths, to match the request-level max tags.
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	return nil
}

// SortField identifies a task attribute tasks can be ordered by.
type SortField string

// Supported sort fields for task listings.
const (
	SortByDueDate  SortField = "dueDate"
	SortByPriority SortField = "priority"
	SortByStatus   SortField = "status"
)

// ParseSortField validates a sortBy query value against the whitelist of
// sortable fields. Matching is case-insensitive; an empty value means
// store-defined default order. Unrecognized values are an error, never
// silently ignored.
func ParseSortField(value string) (SortField, error) {
	switch strings.ToLower(value) {
	case "":
		return "", nil
	case "duedate":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	case "status":
		return SortByStatus, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortField, value)
}
