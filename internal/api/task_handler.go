package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/oleh-26-01/TaskManagementAPI/internal/api/middleware"
	"github.com/oleh-26-01/TaskManagementAPI/internal/api/shared"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/platform/logger"
	"github.com/oleh-26-01/TaskManagementAPI/internal/redact"
	"github.com/oleh-26-01/TaskManagementAPI/internal/service"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
)

// TaskHandler handles task CRUD and listing requests. All routes require
// an authenticated user; the owner ID always comes from the token, never
// from the request body.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TaskCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// Empty status and priority are allowed and fall back to the
	// pending / medium defaults.
	var status domain.Status
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		status = parsed
	}

	var priority domain.Priority
	if req.Priority != "" {
		parsed, err := domain.ParsePriority(req.Priority)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		priority = parsed
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Title, req.Description, req.DueDate, status, priority)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	task, err := h.taskService.Get(r.Context(), taskID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// List handles GET /api/tasks requests with optional filter, sort and
// pagination query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	page, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskPageToResponse(page))
}

// Update handles PUT /api/tasks/{id} requests. The update is partial:
// fields absent from the body keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	var req TaskUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		update.Status = &status
	}

	if req.Priority != nil {
		priority, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		update.Priority = &priority
	}

	task, err := h.taskService.Update(r.Context(), taskID, userID, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// dueDateLayouts are the accepted formats for the dueDate query parameter,
// tried in order.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseTaskFilter builds a store.TaskFilter from listing query parameters.
// Unknown enum values and malformed dates are rejected; pagination values
// are passed through raw and clamped by the service.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	query := r.URL.Query()
	filter := store.TaskFilter{Page: 1, PageSize: service.DefaultPageSize}

	if raw := query.Get("pageNumber"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.NewValidationError("pageNumber", "must be an integer", domain.ErrValidation)
		}
		filter.Page = page
	}

	if raw := query.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.NewValidationError("pageSize", "must be an integer", domain.ErrValidation)
		}
		filter.PageSize = size
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}

	if raw := query.Get("dueDate"); raw != "" {
		dueDate, err := parseDueDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DueDate = &dueDate
	}

	if raw := query.Get("afterDueDate"); raw != "" {
		after, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domain.NewValidationError("afterDueDate", "must be a boolean", domain.ErrValidation)
		}
		filter.AfterDueDate = after
	}

	if raw := query.Get("sortBy"); raw != "" {
		sortBy, err := domain.ParseSortField(raw)
		if err != nil {
			return filter, err
		}
		filter.SortBy = sortBy
	}

	if raw := query.Get("sortDescending"); raw != "" {
		descending, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domain.NewValidationError("sortDescending", "must be a boolean", domain.ErrValidation)
		}
		filter.SortDescending = descending
	}

	return filter, nil
}

// parseDueDate parses a dueDate query value, accepting a full RFC 3339
// timestamp or a bare date.
func parseDueDate(raw string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("dueDate", "must be an RFC 3339 timestamp or YYYY-MM-DD date", domain.ErrValidation)
}
