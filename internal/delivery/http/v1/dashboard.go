package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/services"
	"github.com/adanyl0v/taskwise/internal/views"
)

type dashboardProject struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Progress int            `json:"progress"`
	Counts   map[string]int `json:"counts"`
}

type dashboardResponse struct {
	Projects []dashboardProject `json:"projects"`
	Progress int                `json:"progress"`
	Counts   map[string]int     `json:"counts"`
}

func (h *handlerImpl) HandleGetDashboard(c *gin.Context) {
	p, _ := principal(c)
	projects, err := h.projects.ListProjects(c, services.ListProjectsParams{Actor: p})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list projects")
		abort(c, newServiceError(err))
		return
	}

	var all []models.Task
	resp := dashboardResponse{
		Projects: make([]dashboardProject, len(projects)),
	}
	for i, project := range projects {
		resp.Projects[i] = dashboardProject{
			ID:       project.ID,
			Title:    project.Title,
			Progress: views.ComputeProgress(project.Tasks),
			Counts:   statusCounts(project.Tasks),
		}
		all = append(all, project.Tasks...)
	}
	resp.Progress = views.ComputeProgress(all)
	resp.Counts = statusCounts(all)

	c.JSON(http.StatusOK, resp)
}

func statusCounts(tasks []models.Task) map[string]int {
	counts := views.CountByStatus(tasks)
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}
