package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// PrincipalContextKey is where the auth middleware stores the resolved
// caller scope.
const PrincipalContextKey = "principal"

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask handles POST /task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	scope, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return RespondBadRequest(c, "invalid request body")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), scope, req)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusCreated, task)
}

// GetTask handles GET /task/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	scope, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RespondBadRequest(c, "task id must be an integer")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), scope, taskID)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusOK, task)
}

// ListTasks handles GET /task with optional status and priority filters
func (h *TaskHandler) ListTasks(c echo.Context) error {
	scope, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var filter ports.TaskFilter

	if raw := c.QueryParam("status"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return RespondBadRequest(c, "status filter must be an integer")
		}
		status := entities.Status(v)
		if !status.IsValid() {
			return RespondBadRequest(c, "status filter out of range")
		}
		filter.Status = &status
	}

	if raw := c.QueryParam("priority"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return RespondBadRequest(c, "priority filter must be an integer")
		}
		priority := entities.Priority(v)
		if !priority.IsValid() {
			return RespondBadRequest(c, "priority filter out of range")
		}
		filter.Priority = &priority
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), scope, filter)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusOK, tasks)
}

// UpdateTask handles PUT /task/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	scope, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RespondBadRequest(c, "task id must be an integer")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return RespondBadRequest(c, "invalid request body")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), scope, taskID, req)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusOK, task)
}

// DeleteTask handles DELETE /task/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	scope, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RespondBadRequest(c, "task id must be an integer")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), scope, taskID); err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusOK, map[string]int64{"idTask": taskID})
}

func principalFromContext(c echo.Context) (entities.Principal, bool) {
	scope, ok := c.Get(PrincipalContextKey).(entities.Principal)
	return scope, ok
}
