package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
)

const taskColumns = `id,
       project_id,
       title,
       description,
       status,
       tags,
       assignee_id,
       assignee_name,
       due_date,
       created_at,
       updated_at`

func scanTask(row interface{ Scan(dest ...any) error }, task *models.Task) error {
	var status string
	var assigneeID, assigneeName *string
	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&status,
		&task.Tags,
		&assigneeID,
		&assigneeName,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	task.Status, err = models.ParseTaskStatus(status)
	if err != nil {
		return fmt.Errorf("task %s: %w", task.ID, err)
	}
	if assigneeID != nil {
		task.Assignee = &models.Assignee{ID: *assigneeID}
		if assigneeName != nil {
			task.Assignee.Name = *assigneeName
		}
	}
	return nil
}

func assigneeArgs(a *models.Assignee) (id, name *string) {
	if a == nil {
		return nil, nil
	}
	return &a.ID, &a.Name
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	assigneeID, assigneeName := assigneeArgs(task.Assignee)

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   project_id,
                   title,
                   description,
                   status,
                   tags,
                   assignee_id,
                   assignee_name,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := s.pool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		nonNilTags(task.Tags),
		assigneeID,
		assigneeName,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	const selectTaskByIDQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
`
	var task models.Task
	err := scanTask(s.pool.QueryRow(ctx, selectTaskByIDQuery, id), &task)
	if err != nil {
		return nil, mapError(err)
	}
	return &task, nil
}

func (s *Store) ListTasks(ctx context.Context, filter store.TaskFilter) ([]models.Task, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		conditions = append(conditions, fmt.Sprintf("assignee_id = $%d", len(args)))
	}

	query := `
SELECT ` + taskColumns + `
FROM tasks
`
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "ORDER BY created_at DESC\n"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err = scanTask(rows, &task)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	assigneeID, assigneeName := assigneeArgs(task.Assignee)

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    tags = $4,
    assignee_id = $5,
    assignee_name = $6,
    due_date = $7,
    updated_at = $8
WHERE id = $9
`
	return expectAffected(s.pool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		nonNilTags(task.Tags),
		assigneeID,
		assigneeName,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
	))
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	return expectAffected(s.pool.Exec(ctx, deleteTaskQuery, id))
}
