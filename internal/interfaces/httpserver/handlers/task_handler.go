package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/interfaces/httpserver/requests"
	"campaign-plan-service/internal/interfaces/httpserver/responses"
	"campaign-plan-service/internal/utils/planid"
	"campaign-plan-service/internal/utils/platformerrors"
)

// TaskHandler exposes HTTP entrypoints for the plan tasks API.
type TaskHandler struct {
	service task.Service
	log     zerolog.Logger
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(service task.Service, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		log:     log.With().Str("handler", "task").Logger(),
	}
}

// List handles GET /v1/plans/:plan_id/tasks
// @Summary List plan tasks
// @Description Retrieves all tasks belonging to a plan
// @Tags Tasks
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Success 200 {object} responses.TaskListResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	planID, _, ok := h.pathIDs(c, false)
	if !ok {
		return
	}

	tasks, err := h.service.FindAllByPlanID(c.Request.Context(), planID)
	if err != nil {
		responses.HandleError(c, err, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, responses.MapTasksToResponse(tasks))
}

// Get handles GET /v1/plans/:plan_id/tasks/:task_id
// @Summary Get a task
// @Description Retrieves a single task scoped to its plan
// @Tags Tasks
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param task_id path string true "Task ID"
// @Success 200 {object} responses.TaskResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks/{task_id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	planID, taskID, ok := h.pathIDs(c, true)
	if !ok {
		return
	}

	t, err := h.service.FindOne(c.Request.Context(), planID, taskID)
	if err != nil {
		responses.HandleError(c, err, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, responses.MapTaskToResponse(t))
}

// Create handles POST /v1/plans/:plan_id/tasks
// @Summary Create a task
// @Description Adds a task to an existing plan
// @Tags Tasks
// @Accept json
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param request body requests.CreateTaskRequest true "Task request"
// @Success 201 {object} responses.TaskResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	planID, _, ok := h.pathIDs(c, false)
	if !ok {
		return
	}

	var req requests.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "task-create-bind-001")
		return
	}

	taskType, ok := h.taskType(c, req.Type)
	if !ok {
		return
	}

	params := task.CreateParams{
		Type:        taskType,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		WeekIndex:   req.WeekIndex,
		ActionURL:   req.ActionURL,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	}
	if req.Status != nil {
		status, ok := h.taskStatus(c, *req.Status)
		if !ok {
			return
		}
		params.Status = status
	}

	t, err := h.service.Create(c.Request.Context(), planID, params)
	if err != nil {
		responses.HandleError(c, err, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, responses.MapTaskToResponse(t))
}

// Replace handles PUT /v1/plans/:plan_id/tasks/:task_id
// @Summary Replace a task
// @Description Replaces every field of a task. Nullable fields missing from the payload clear the stored value.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param task_id path string true "Task ID"
// @Param request body requests.ReplaceTaskRequest true "Full task payload"
// @Success 200 {object} responses.TaskResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks/{task_id} [put]
func (h *TaskHandler) Replace(c *gin.Context) {
	planID, taskID, ok := h.pathIDs(c, true)
	if !ok {
		return
	}

	var req requests.ReplaceTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "task-replace-bind-001")
		return
	}

	taskType, ok := h.taskType(c, req.Type)
	if !ok {
		return
	}
	status, ok := h.taskStatus(c, req.Status)
	if !ok {
		return
	}

	t, err := h.service.Replace(c.Request.Context(), planID, taskID, task.ReplaceParams{
		Type:        taskType,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		WeekIndex:   req.WeekIndex,
		Status:      status,
		ActionURL:   req.ActionURL,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to replace task")
		return
	}

	c.JSON(http.StatusOK, responses.MapTaskToResponse(t))
}

// Patch handles PATCH /v1/plans/:plan_id/tasks/:task_id
// @Summary Update a task
// @Description Updates only the fields present in the payload
// @Tags Tasks
// @Accept json
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param task_id path string true "Task ID"
// @Param request body requests.PatchTaskRequest true "Partial task payload"
// @Success 200 {object} responses.TaskResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks/{task_id} [patch]
func (h *TaskHandler) Patch(c *gin.Context) {
	planID, taskID, ok := h.pathIDs(c, true)
	if !ok {
		return
	}

	var req requests.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "task-patch-bind-001")
		return
	}

	params := task.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		WeekIndex:   req.WeekIndex,
		ActionURL:   req.ActionURL,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	}
	if req.Type != nil {
		taskType, ok := h.taskType(c, *req.Type)
		if !ok {
			return
		}
		params.Type = &taskType
	}
	if req.Status != nil {
		status, ok := h.taskStatus(c, *req.Status)
		if !ok {
			return
		}
		params.Status = &status
	}

	t, err := h.service.Patch(c.Request.Context(), planID, taskID, params)
	if err != nil {
		responses.HandleError(c, err, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, responses.MapTaskToResponse(t))
}

// Remove handles DELETE /v1/plans/:plan_id/tasks/:task_id
// @Summary Delete a task
// @Description Removes a task from its plan
// @Tags Tasks
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param task_id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/tasks/{task_id} [delete]
func (h *TaskHandler) Remove(c *gin.Context) {
	planID, taskID, ok := h.pathIDs(c, true)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), planID, taskID); err != nil {
		responses.HandleError(c, err, "failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

// pathIDs extracts and validates the plan (and optionally task) path ids.
func (h *TaskHandler) pathIDs(c *gin.Context, withTask bool) (string, string, bool) {
	planID := c.Param("plan_id")
	if !planid.IsValid(planID) {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "plan_id must be a valid UUID", "plan-id-invalid-001")
		return "", "", false
	}

	if !withTask {
		return planID, "", true
	}

	taskID := c.Param("task_id")
	if !planid.IsValid(taskID) {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "task_id must be a valid UUID", "task-id-invalid-001")
		return "", "", false
	}
	return planID, taskID, true
}

func (h *TaskHandler) taskType(c *gin.Context, raw string) (plan.TaskType, bool) {
	taskType := plan.TaskType(raw)
	if !taskType.IsValid() {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown task type %q", raw), "task-type-invalid-001")
		return "", false
	}
	return taskType, true
}

func (h *TaskHandler) taskStatus(c *gin.Context, raw string) (plan.TaskStatus, bool) {
	status := plan.TaskStatus(raw)
	if !status.IsValid() {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown task status %q", raw), "task-status-invalid-001")
		return "", false
	}
	return status, true
}
