package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
	"github.com/adanyl0v/taskwise/internal/views"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	tasks    store.TaskStore
	projects store.ProjectStore
	users    store.UserStore
}

func NewTaskService(
	logger zerolog.Logger,
	tasks store.TaskStore,
	projects store.ProjectStore,
	users store.UserStore,
) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	task := models.Task{
		ProjectID: params.ProjectID,
		Title:     strings.TrimSpace(params.Title),
		Status:    models.StatusTodo,
		Tags:      normalizeTags(params.Tags),
		CreatedAt: time.Now(),
	}
	if task.Title == "" {
		s.logger.Error().Msg("empty task title")
		return nil, ErrEmptyTitle
	}
	if params.Status != "" {
		status, err := models.ParseTaskStatus(params.Status)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("invalid task status")
			return nil, err
		}
		task.Status = status
	}
	if params.Description != nil {
		task.Description = normalizeDescription(*params.Description)
	}

	var err error
	if params.DueDate != nil {
		task.DueDate, err = normalizeDueDate(*params.DueDate)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("invalid due date")
			return nil, err
		}
	}
	if params.AssigneeID != nil {
		task.Assignee, err = s.resolveAssignee(ctx, *params.AssigneeID)
		if err != nil {
			return nil, err
		}
	}

	_, err = s.projects.GetProject(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("project_id", task.ProjectID).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", task.ProjectID).
			Msg("failed to get project")
		return nil, err
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	err = s.tasks.CreateTask(ctx, &task)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to get task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) ([]models.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, store.TaskFilter{
		ProjectID:  params.ProjectID,
		AssigneeID: params.AssigneeID,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("project_id", params.ProjectID).
		Str("assignee_id", params.AssigneeID).
		Msg("selected tasks")

	filtered := views.FilterTasks(tasks, params.Criteria)

	s.logger.Info().
		Int("count", len(filtered)).
		Msg("tasks found")
	return filtered, nil
}

func (s *taskServiceImpl) ListTags(ctx context.Context, projectID string) ([]string, error) {
	tasks, err := s.tasks.ListTasks(ctx, store.TaskFilter{ProjectID: projectID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to list tasks")
		return nil, err
	}
	return views.DistinctTags(tasks), nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			s.logger.Error().
				Str("task_id", task.ID).
				Msg("empty task title")
			return nil, ErrEmptyTitle
		}
		task.Title = title
	}
	if params.Description != nil {
		task.Description = normalizeDescription(*params.Description)
	}
	if params.Status != nil {
		task.Status, err = models.ParseTaskStatus(*params.Status)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", task.ID).
				Msg("invalid task status")
			return nil, err
		}
	}
	if params.Tags != nil {
		task.Tags = normalizeTags(params.Tags)
	}
	if params.DueDate != nil {
		task.DueDate, err = normalizeDueDate(*params.DueDate)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", task.ID).
				Msg("invalid due date")
			return nil, err
		}
	}
	if params.AssigneeID != nil {
		task.Assignee, err = s.resolveAssignee(ctx, *params.AssigneeID)
		if err != nil {
			return nil, err
		}
	}

	return s.saveTask(ctx, task)
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	status, err := models.ParseTaskStatus(params.Status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("invalid task status")
		return nil, err
	}

	task, err := s.GetTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	task.Status = status

	return s.saveTask(ctx, task)
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	err := s.tasks.DeleteTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("task_id", id).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) saveTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now()
	task.UpdatedAt = &now

	err := s.tasks.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", string(task.Status)).
		Msg("updated task")
	return task, nil
}

// resolveAssignee returns nil for a blank id.
func (s *taskServiceImpl) resolveAssignee(ctx context.Context, id string) (*models.Assignee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("assignee_id", id).
				Msg("assignee not found")
			return nil, ErrAssigneeNotFound
		}

		s.logger.Error().
			Err(err).
			Str("assignee_id", id).
			Msg("failed to get assignee")
		return nil, err
	}
	return &models.Assignee{ID: user.ID, Name: user.Name}, nil
}

// normalizeTags trims every tag and drops blanks and duplicates, keeping
// the first occurrence.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func normalizeDescription(raw string) *string {
	d := strings.TrimSpace(raw)
	if d == "" {
		return nil
	}
	return &d
}

// normalizeDueDate accepts a calendar date or an RFC 3339 timestamp and
// keeps only the date. A blank value clears the due date.
func normalizeDueDate(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(models.DueDateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
		}
	}
	date := t.Format(models.DueDateLayout)
	return &date, nil
}
