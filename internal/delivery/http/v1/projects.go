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

type getProjectResponse struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Members     []string          `json:"members"`
	Progress    int               `json:"progress"`
	TaskCount   int               `json:"task_count"`
	Tasks       []getTaskResponse `json:"tasks,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at"`
}

// newGetProjectResponse derives the progress from the attached tasks and
// embeds them only when withTasks is set.
func newGetProjectResponse(project *models.Project, withTasks bool) (getProjectResponse, error) {
	resp := getProjectResponse{
		ID:          project.ID,
		OwnerID:     project.OwnerID,
		Title:       project.Title,
		Description: project.Description,
		Tags:        project.Tags,
		Members:     project.Members,
		Progress:    views.ComputeProgress(project.Tasks),
		TaskCount:   len(project.Tasks),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Members == nil {
		resp.Members = []string{}
	}
	if withTasks {
		tasks, err := newGetTasksResponse(project.Tasks)
		if err != nil {
			return getProjectResponse{}, fmt.Errorf("project %s: %w", project.ID, err)
		}
		resp.Tasks = tasks
	}
	return resp, nil
}

func (h *handlerImpl) writeProject(c *gin.Context, code int, project *models.Project) {
	resp, err := newGetProjectResponse(project, true)
	if err != nil {
		h.abortInvalidData(c, err)
		return
	}
	c.JSON(code, resp)
}

// checkProjectAccess aborts with the service error unless the caller may
// view the project. An empty id means no project was requested.
func (h *handlerImpl) checkProjectAccess(c *gin.Context, projectID string) bool {
	if projectID == "" {
		return true
	}

	p, _ := principal(c)
	_, err := h.projects.GetProject(c, services.GetProjectParams{Actor: p, ID: projectID})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("project access denied")
		abort(c, newServiceError(err))
		return false
	}
	return true
}

type createProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description,omitempty" binding:"max=2048"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=32,dive,max=64"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req createProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	p, _ := principal(c)
	project, err := h.projects.CreateProject(c, services.CreateProjectParams{
		Actor:       p,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create project")
		abort(c, newServiceError(err))
		return
	}

	h.writeProject(c, http.StatusCreated, project)
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	p, _ := principal(c)
	project, err := h.projects.GetProject(c, services.GetProjectParams{
		Actor: p,
		ID:    c.Param("id"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get project")
		abort(c, newServiceError(err))
		return
	}
	h.writeProject(c, http.StatusOK, project)
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	p, _ := principal(c)
	projects, err := h.projects.ListProjects(c, services.ListProjectsParams{
		Actor: p,
		Query: c.Query("query"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list projects")
		abort(c, newServiceError(err))
		return
	}

	response := make([]getProjectResponse, len(projects))
	for i := range projects {
		response[i], err = newGetProjectResponse(&projects[i], false)
		if err != nil {
			h.abortInvalidData(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, response)
}

type updateProjectRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=2048"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=32,dive,max=64"`
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	p, _ := principal(c)
	project, err := h.projects.UpdateProject(c, services.UpdateProjectParams{
		Actor:       p,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update project")
		abort(c, newServiceError(err))
		return
	}

	h.writeProject(c, http.StatusOK, project)
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	p, _ := principal(c)
	err := h.projects.DeleteProject(c, services.DeleteProjectParams{
		Actor: p,
		ID:    c.Param("id"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete project")
		abort(c, newServiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleAddProjectMember(c *gin.Context) {
	p, _ := principal(c)
	project, err := h.projects.AddProjectMember(c, services.ProjectMemberParams{
		Actor:     p,
		ProjectID: c.Param("id"),
		UserID:    c.Param("user_id"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add project member")
		abort(c, newServiceError(err))
		return
	}
	h.writeProject(c, http.StatusOK, project)
}

func (h *handlerImpl) HandleRemoveProjectMember(c *gin.Context) {
	p, _ := principal(c)
	project, err := h.projects.RemoveProjectMember(c, services.ProjectMemberParams{
		Actor:     p,
		ProjectID: c.Param("id"),
		UserID:    c.Param("user_id"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to remove project member")
		abort(c, newServiceError(err))
		return
	}
	h.writeProject(c, http.StatusOK, project)
}
