package postgres

import (
	"context"

	"github.com/adanyl0v/taskwise/internal/models"
)

const projectColumns = `id,
       owner_id,
       title,
       description,
       tags,
       created_at,
       updated_at,
       ARRAY(SELECT m.user_id
             FROM project_members m
             WHERE m.project_id = projects.id
             ORDER BY m.created_at, m.user_id) AS members`

func scanProject(row interface{ Scan(dest ...any) error }, project *models.Project) error {
	return row.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Title,
		&project.Description,
		&project.Tags,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.Members,
	)
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	const insertProjectQuery = `
INSERT INTO projects (id,
                      owner_id,
                      title,
                      description,
                      tags,
                      created_at,
                      updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := s.pool.Exec(
		ctx,
		insertProjectQuery,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		nonNilTags(project.Tags),
		project.CreatedAt,
		project.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	const selectProjectByIDQuery = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1
`
	var project models.Project
	err := scanProject(s.pool.QueryRow(ctx, selectProjectByIDQuery, id), &project)
	if err != nil {
		return nil, mapError(err)
	}
	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	const selectProjectsQuery = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at DESC
`
	rows, err := s.pool.Query(ctx, selectProjectsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err = scanProject(rows, &project)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) error {
	const updateProjectQuery = `
UPDATE projects
SET title = $1,
    description = $2,
    tags = $3,
    updated_at = $4
WHERE id = $5
`
	return expectAffected(s.pool.Exec(
		ctx,
		updateProjectQuery,
		project.Title,
		project.Description,
		nonNilTags(project.Tags),
		project.UpdatedAt,
		project.ID,
	))
}

// DeleteProject relies on ON DELETE CASCADE to drop the project's tasks.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	const deleteProjectQuery = `
DELETE FROM projects
WHERE id = $1
`
	return expectAffected(s.pool.Exec(ctx, deleteProjectQuery, id))
}

func (s *Store) AddProjectMember(ctx context.Context, projectID, userID string) error {
	const insertProjectMemberQuery = `
INSERT INTO project_members (project_id, user_id)
VALUES ($1, $2)
`
	_, err := s.pool.Exec(ctx, insertProjectMemberQuery, projectID, userID)
	return mapError(err)
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	const deleteProjectMemberQuery = `
DELETE FROM project_members
WHERE project_id = $1
  AND user_id = $2
`
	return expectAffected(s.pool.Exec(ctx, deleteProjectMemberQuery, projectID, userID))
}

// nonNilTags keeps NULL out of the NOT NULL array columns.
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
