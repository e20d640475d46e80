package postgres

import (
	"context"

	"github.com/adanyl0v/taskwise/internal/models"
)

const userColumns = `id,
       name,
       email,
       password,
       role,
       active,
       created_at,
       updated_at`

func scanUser(row interface{ Scan(dest ...any) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   role,
                   active,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := s.pool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`
	var user models.User
	err := scanUser(s.pool.QueryRow(ctx, selectUserByIDQuery, id), &user)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
`
	var user models.User
	err := scanUser(s.pool.QueryRow(ctx, selectUserByEmailQuery, email), &user)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const selectUsersQuery = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at
`
	rows, err := s.pool.Query(ctx, selectUsersQuery)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err = scanUser(rows, &user)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	const updateUserQuery = `
UPDATE users
SET name = $1,
    email = $2,
    password = $3,
    role = $4,
    active = $5,
    updated_at = $6
WHERE id = $7
`
	return expectAffected(s.pool.Exec(
		ctx,
		updateUserQuery,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.Active,
		user.UpdatedAt,
		user.ID,
	))
}

// DeleteUser relies on the foreign keys to drop the user's sessions and
// unassign their tasks. The denormalized assignee name is cleared here.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const clearAssigneeQuery = `
UPDATE tasks
SET assignee_id = NULL,
    assignee_name = NULL
WHERE assignee_id = $1
`
	_, err = tx.Exec(ctx, clearAssigneeQuery, id)
	if err != nil {
		return err
	}

	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	err = expectAffected(tx.Exec(ctx, deleteUserQuery, id))
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
