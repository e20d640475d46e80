package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/session"
	"github.com/adanyl0v/taskwise/internal/store"
	"github.com/adanyl0v/taskwise/internal/views"
)

type projectServiceImpl struct {
	logger   zerolog.Logger
	projects store.ProjectStore
	tasks    store.TaskStore
	users    store.UserStore
}

func NewProjectService(
	logger zerolog.Logger,
	projects store.ProjectStore,
	tasks store.TaskStore,
	users store.UserStore,
) ProjectService {
	return &projectServiceImpl{
		logger:   logger,
		projects: projects,
		tasks:    tasks,
		users:    users,
	}
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	project := models.Project{
		OwnerID:     params.Actor.UserID,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Tags:        normalizeTags(params.Tags),
		Members:     []string{},
		Tasks:       []models.Task{},
		CreatedAt:   time.Now(),
	}
	if project.Title == "" {
		s.logger.Error().Msg("empty project title")
		return nil, ErrEmptyTitle
	}

	projectUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate project uuid")
		return nil, err
	}
	project.ID = projectUUID.String()

	err = s.projects.CreateProject(ctx, &project)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("owner_id", project.OwnerID).
		Msg("created project")
	return &project, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, params GetProjectParams) (*models.Project, error) {
	project, err := s.getProject(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if !canView(params.Actor, project) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("user_id", params.Actor.UserID).
			Msg("user may not view project")
		return nil, ErrForbidden
	}
	return s.withTasks(ctx, project)
}

func (s *projectServiceImpl) ListProjects(ctx context.Context, params ListProjectsParams) ([]models.Project, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list projects")
		return nil, err
	}
	projects = slices.DeleteFunc(projects, func(p models.Project) bool {
		return !canView(params.Actor, &p)
	})
	projects = views.FilterProjects(projects, params.Query)

	tasks, err := s.tasks.ListTasks(ctx, store.TaskFilter{})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}

	byProject := make(map[string][]models.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	for i := range projects {
		projects[i].Tasks = byProject[projects[i].ID]
		if projects[i].Tasks == nil {
			projects[i].Tasks = []models.Task{}
		}
	}

	s.logger.Info().
		Int("count", len(projects)).
		Str("query", params.Query).
		Str("user_id", params.Actor.UserID).
		Msg("projects found")
	return projects, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error) {
	project, err := s.getProject(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if !canManage(params.Actor, project) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("user_id", params.Actor.UserID).
			Msg("user may not update project")
		return nil, ErrForbidden
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			s.logger.Error().
				Str("project_id", project.ID).
				Msg("empty project title")
			return nil, ErrEmptyTitle
		}
		project.Title = title
	}
	if params.Description != nil {
		project.Description = strings.TrimSpace(*params.Description)
	}
	if params.Tags != nil {
		project.Tags = normalizeTags(params.Tags)
	}
	now := time.Now()
	project.UpdatedAt = &now

	err = s.projects.UpdateProject(ctx, project)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Msg("failed to update project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return s.withTasks(ctx, project)
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, params DeleteProjectParams) error {
	project, err := s.getProject(ctx, params.ID)
	if err != nil {
		return err
	}
	if !canManage(params.Actor, project) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("user_id", params.Actor.UserID).
			Msg("user may not delete project")
		return ErrForbidden
	}

	err = s.projects.DeleteProject(ctx, project.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Msg("failed to delete project")
		return err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("deleted project")
	return nil
}

func (s *projectServiceImpl) AddProjectMember(ctx context.Context, params ProjectMemberParams) (*models.Project, error) {
	project, err := s.getProject(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}
	if !canManage(params.Actor, project) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("user_id", params.Actor.UserID).
			Msg("user may not add project members")
		return nil, ErrForbidden
	}
	if project.HasMember(params.UserID) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("member_id", params.UserID).
			Msg("user is already a project member")
		return nil, ErrAlreadyMember
	}

	_, err = s.users.GetUserByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("member_id", params.UserID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("member_id", params.UserID).
			Msg("failed to get user by id")
		return nil, err
	}

	err = s.projects.AddProjectMember(ctx, project.ID, params.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, ErrAlreadyMember
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Str("member_id", params.UserID).
			Msg("failed to add project member")
		return nil, err
	}
	project.Members = append(project.Members, params.UserID)

	s.logger.Info().
		Str("project_id", project.ID).
		Str("member_id", params.UserID).
		Msg("added project member")
	return s.withTasks(ctx, project)
}

func (s *projectServiceImpl) RemoveProjectMember(ctx context.Context, params ProjectMemberParams) (*models.Project, error) {
	project, err := s.getProject(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}
	if !canManage(params.Actor, project) {
		s.logger.Error().
			Str("project_id", project.ID).
			Str("user_id", params.Actor.UserID).
			Msg("user may not remove project members")
		return nil, ErrForbidden
	}

	err = s.projects.RemoveProjectMember(ctx, project.ID, params.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("project_id", project.ID).
				Str("member_id", params.UserID).
				Msg("user is not a project member")
			return nil, ErrNotMember
		}

		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Str("member_id", params.UserID).
			Msg("failed to remove project member")
		return nil, err
	}
	project.Members = slices.DeleteFunc(project.Members, func(m string) bool { return m == params.UserID })

	s.logger.Info().
		Str("project_id", project.ID).
		Str("member_id", params.UserID).
		Msg("removed project member")
	return s.withTasks(ctx, project)
}

func (s *projectServiceImpl) withTasks(ctx context.Context, project *models.Project) (*models.Project, error) {
	tasks, err := s.tasks.ListTasks(ctx, store.TaskFilter{ProjectID: project.ID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Msg("failed to list project tasks")
		return nil, err
	}
	project.Tasks = tasks
	if project.Tasks == nil {
		project.Tasks = []models.Task{}
	}

	s.logger.Debug().
		Str("project_id", project.ID).
		Int("tasks", len(project.Tasks)).
		Msg("selected project")
	return project, nil
}

func (s *projectServiceImpl) getProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("project_id", id).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to get project")
		return nil, err
	}
	return project, nil
}

func canManage(actor session.Principal, project *models.Project) bool {
	return actor.IsAdmin() || actor.UserID == project.OwnerID
}

func canView(actor session.Principal, project *models.Project) bool {
	return actor.IsAdmin() || project.HasMember(actor.UserID)
}
