package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/services"
	"github.com/adanyl0v/taskwise/internal/views"
)

type assigneeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type getTaskResponse struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	Tags        []string          `json:"tags"`
	Assignee    *assigneeResponse `json:"assignee"`
	DueDate     *string           `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) (getTaskResponse, error) {
	label, err := views.FormatStatusLabel(task.Status)
	if err != nil {
		return getTaskResponse{}, fmt.Errorf("task %s: %w", task.ID, err)
	}

	resp := getTaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		StatusLabel: label,
		Tags:        task.Tags,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if task.Assignee != nil {
		resp.Assignee = &assigneeResponse{
			ID:   task.Assignee.ID,
			Name: task.Assignee.Name,
		}
	}
	return resp, nil
}

func newGetTasksResponse(tasks []models.Task) ([]getTaskResponse, error) {
	response := make([]getTaskResponse, len(tasks))
	for i := range tasks {
		resp, err := newGetTaskResponse(&tasks[i])
		if err != nil {
			return nil, err
		}
		response[i] = resp
	}
	return response, nil
}

func (h *handlerImpl) writeTask(c *gin.Context, code int, task *models.Task) {
	resp, err := newGetTaskResponse(task)
	if err != nil {
		h.abortInvalidData(c, err)
		return
	}
	c.JSON(code, resp)
}

type createTaskRequest struct {
	ProjectID   string   `json:"project_id" binding:"required"`
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=32,dive,max=64"`
	AssigneeID  *string  `json:"assignee_id,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Tags:        req.Tags,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newServiceError(err))
		return
	}

	h.writeTask(c, http.StatusCreated, task)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c, c.Param("id"))
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	h.writeTask(c, http.StatusOK, task)
}

type getTasksQuery struct {
	Query     string `form:"query"`
	Status    string `form:"status"`
	ProjectID string `form:"project_id"`
	Mine      bool   `form:"mine"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	var query getTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	status, err := views.ParseStatusFilter(query.Status)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid status filter")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	if !h.checkProjectAccess(c, query.ProjectID) {
		return
	}

	params := services.ListTasksParams{
		ProjectID: query.ProjectID,
		Criteria: views.TaskCriteria{
			Query:  query.Query,
			Status: status,
		},
	}
	// Only a missing tag disables the check, "?tag=" matches nothing.
	if tag, ok := c.GetQuery("tag"); ok {
		params.Criteria.Tag = &tag
	}
	if query.Mine {
		p, _ := principal(c)
		params.AssigneeID = p.UserID
	}

	tasks, err := h.tasks.ListTasks(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newServiceError(err))
		return
	}

	response, err := newGetTasksResponse(tasks)
	if err != nil {
		h.abortInvalidData(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTags(c *gin.Context) {
	projectID := c.Query("project_id")
	if !h.checkProjectAccess(c, projectID) {
		return
	}

	tags, err := h.tasks.ListTags(c, projectID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tags")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

type updateTaskRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=32,dive,max=64"`
	AssigneeID  *string  `json:"assignee_id,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Tags:        req.Tags,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		abort(c, newServiceError(err))
		return
	}

	h.writeTask(c, http.StatusOK, task)
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		h.logger.Error().Msg("no status provided")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:     c.Param("id"),
		Status: status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("status", status).
			Msg("failed to update task status")
		abort(c, newServiceError(err))
		return
	}

	h.writeTask(c, http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abort(c, newServiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
