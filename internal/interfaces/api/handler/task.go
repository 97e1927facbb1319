package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"deadline-tracker/internal/application/dto"
	"deadline-tracker/internal/application/service"
	"deadline-tracker/internal/domain/constant"
	appErrors "deadline-tracker/internal/pkg/errors"
	"deadline-tracker/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TaskHandler handles the task and notification HTTP endpoints.
type TaskHandler struct {
	taskSvc         service.TaskService
	notificationSvc service.NotificationService
	log             logger.Logger
}

// NewTaskHandler creates a new TaskHandler with its dependencies.
func NewTaskHandler(
	taskSvc service.TaskService,
	notificationSvc service.NotificationService,
	log logger.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskSvc:         taskSvc,
		notificationSvc: notificationSvc,
		log:             log,
	}
}

// ListTasks handles GET /api/tasks?status=all|pending|completed.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := constant.StatusFilter(c.QueryParam("status"))
	tasks, err := h.taskSvc.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:id.
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	task, err := h.taskSvc.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return h.errorResponse(c, fmt.Errorf("%w: %v", appErrors.ErrInvalidInput, err))
	}
	id, err := h.taskSvc.CreateTask(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]uint{"id": id})
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return h.errorResponse(c, fmt.Errorf("%w: %v", appErrors.ErrInvalidInput, err))
	}
	req.ID = id
	if err := h.taskSvc.UpdateTask(c.Request().Context(), req); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	if err := h.taskSvc.DeleteTask(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTask handles POST /api/tasks/:id/complete.
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	if err := h.taskSvc.CompleteTask(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportTasks handles POST /api/tasks/export.
func (h *TaskHandler) ExportTasks(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil || req.Path == "" {
		return h.errorResponse(c, fmt.Errorf("%w: file path required", appErrors.ErrInvalidInput))
	}
	if err := h.taskSvc.ExportTasks(c.Request().Context(), req.Path); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportTasks handles POST /api/tasks/import.
func (h *TaskHandler) ImportTasks(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil || req.Path == "" {
		return h.errorResponse(c, fmt.Errorf("%w: file path required", appErrors.ErrInvalidInput))
	}
	imported, err := h.taskSvc.ImportTasks(c.Request().Context(), req.Path)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"imported": imported})
}

// TestNotification handles POST /api/notifications/test. Delivery is
// fire-and-forget; the response only acknowledges the attempt.
func (h *TaskHandler) TestNotification(c echo.Context) error {
	var req dto.TestNotificationRequest
	if err := c.Bind(&req); err != nil {
		return h.errorResponse(c, fmt.Errorf("%w: %v", appErrors.ErrInvalidInput, err))
	}
	h.notificationSvc.SendNow(req.Title, req.Body, req.Token)
	return c.NoContent(http.StatusAccepted)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: task id %q", appErrors.ErrInvalidInput, c.Param("id"))
	}
	return uint(id), nil
}

func (h *TaskHandler) errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, appErrors.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidInput), errors.Is(err, appErrors.ErrInvalidDateTime):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", err)
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
