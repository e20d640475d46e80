package store

import (
	"context"
	"errors"

	"github.com/adanyl0v/taskwise/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type UserStore interface {
	// CreateUser returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

type SessionStore interface {
	// ReplaceSessions deletes every session of session.UserID and
	// inserts session, atomically.
	ReplaceSessions(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id string) (*models.Session, error)
	GetSessionByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	// DeleteSessionsByUserID returns the number of deleted sessions.
	DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error)
}

// ProjectStore never populates models.Project.Tasks, tasks are read
// through TaskStore. Members are always populated and are only changed
// through AddProjectMember and RemoveProjectMember.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	// ListProjects returns projects ordered by creation time, newest first.
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	// DeleteProject deletes the project and all of its tasks.
	DeleteProject(ctx context.Context, id string) error

	// AddProjectMember returns ErrNotFound if the project or the user
	// doesn't exist and ErrAlreadyExists if the user is a member already.
	AddProjectMember(ctx context.Context, projectID, userID string) error
	// RemoveProjectMember returns ErrNotFound if the user isn't a member.
	RemoveProjectMember(ctx context.Context, projectID, userID string) error
}

// TaskFilter narrows ListTasks. Empty fields match everything.
type TaskFilter struct {
	ProjectID  string
	AssigneeID string
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	// ListTasks returns tasks ordered by creation time, newest first.
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type Store interface {
	UserStore
	SessionStore
	ProjectStore
	TaskStore
}
