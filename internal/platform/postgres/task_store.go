package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/platform/logger"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
)

// taskColumns is the column list shared by all task SELECT queries.
const taskColumns = "id, user_id, title, description, due_date, status, priority, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the owning user doesn't exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, due_date, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetForUser implements store.TaskStore.GetForUser
// The row is scoped by both task ID and owner ID, so a task owned by a
// different user is reported exactly like a missing one.
func (s *PostgresTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for user",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListForUser implements store.TaskStore.ListForUser
// It builds a conjunctive WHERE clause from the filter, computes the total
// count over the filtered set, then fetches one page ordered by the
// whitelisted sort field.
func (s *PostgresTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskPredicate(userID, filter)

	order, err := orderClause(filter.SortBy, filter.SortDescending)
	if err != nil {
		return nil, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		taskColumns, where, order, len(args)+1, len(args)+2,
	)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.Task, 0, filter.PageSize)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed tasks for user",
		slog.String("user_id", userID.String()),
		slog.Int("page", filter.Page),
		slog.Int("returned", len(items)),
		slog.Int("total", total))

	return &store.TaskPage{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// Update implements store.TaskStore.Update
// The UPDATE is scoped by owner, so a task owned by a different user is
// reported as not found.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, priority = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Priority,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for update",
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return err
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// DeleteForUser implements store.TaskStore.DeleteForUser
func (s *PostgresTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore instance that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// buildTaskPredicate assembles the conjunctive WHERE clause for a task
// listing. The owner predicate is always present; the optional filters are
// appended only when set.
func buildTaskPredicate(userID uuid.UUID, filter store.TaskFilter) (string, []any) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}

	if filter.DueDate != nil {
		op := "<="
		if filter.AfterDueDate {
			op = ">"
		}
		args = append(args, *filter.DueDate)
		where = append(where, fmt.Sprintf("due_date %s $%d", op, len(args)))
	}

	return strings.Join(where, " AND "), args
}

// orderClause translates a whitelisted sort field into an ORDER BY
// expression. Status and priority sort by semantic rank rather than
// lexicographically; an absent field falls back to creation order.
// Unrecognized fields are rejected, never silently ignored.
func orderClause(sortBy domain.SortField, descending bool) (string, error) {
	var expr string
	switch sortBy {
	case "":
		expr = "created_at"
	case domain.SortByDueDate:
		expr = "due_date"
	case domain.SortByPriority:
		expr = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END"
	case domain.SortByStatus:
		expr = "CASE status WHEN 'pending' THEN 1 WHEN 'in_progress' THEN 2 WHEN 'completed' THEN 3 END"
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortField, sortBy)
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	if sortBy == domain.SortByDueDate {
		// Tasks without a due date sort after dated ones in either direction.
		return fmt.Sprintf("%s %s NULLS LAST, id ASC", expr, direction), nil
	}
	return fmt.Sprintf("%s %s, id ASC", expr, direction), nil
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row, converting nullable columns.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate, updatedAt sql.NullTime
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&dueDate,
		&status,
		&priority,
		&task.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		task.UpdatedAt = &t
	}

	return &task, nil
}
