package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// TaskHandler serves the caller's tasks. Every call is scoped to the
// authenticated user.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description *string    `json:"description"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Category    *string    `json:"category"`
	DueDate     *time.Time `json:"due_date"`
}

// List handles GET /api/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "pending | in_progress | completed"
// @Param        priority  query     string  false  "low | medium | high"
// @Param        category  query     string  false  "Exact category"
// @Param        search    query     string  false  "Matches title or description"
// @Param        sort_by   query     string  false  "created_at | updated_at | due_date | priority | title"
// @Param        order     query     string  false  "asc | desc"
// @Param        limit     query     int     false  "1..200, default 50"
// @Param        offset    query     int     false  "Rows to skip"
// @Success      200       {array}   domain.Task
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), identity.ID, domain.TaskFilter{
		Status:   domain.TaskStatus(c.QueryParam("status")),
		Priority: domain.TaskPriority(c.QueryParam("priority")),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sort_by"),
		Order:    c.QueryParam("order"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := h.service.Get(c.Request().Context(), identity.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), identity.ID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Update handles PATCH /api/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Task id"
// @Param        body  body      domain.TaskPatch  true  "Attributes to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch domain.TaskPatch
	if err := bindPatch(c, &patch); err != nil {
		return err
	}
	task, err := h.service.Update(c.Request().Context(), identity.ID, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  int  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), identity.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
