package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/session"
	"github.com/adanyl0v/taskwise/internal/views"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrUserInactive         = errors.New("user is inactive")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrTaskNotFound         = errors.New("task not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrAssigneeNotFound     = errors.New("assignee not found")
	ErrEmptyTitle           = errors.New("title must not be empty")
	ErrEmptyName            = errors.New("name must not be empty")
	ErrInvalidDueDate       = errors.New("invalid due date")
	ErrInvalidTaskStatus    = models.ErrInvalidTaskStatus
	ErrInvalidRole          = models.ErrInvalidRole
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyMember        = errors.New("user is already a project member")
	ErrNotMember            = errors.New("user is not a project member")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist, ErrUserPasswordMismatch if the
	// given password doesn't match the user's password or
	// ErrUserInactive if the account was deactivated.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a member with the given name, email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type UserService interface {
	// CreateUser stores a new account on behalf of an administrator. The
	// role defaults to member.
	//
	// It returns ErrUserAlreadyExists if the email is taken and
	// ErrInvalidRole if the role is unknown.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateUser applies the non-nil fields of params.
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// EnsureAdmin creates the bootstrap administrator unless a user
	// with the same email already exists, in which case that user is
	// returned untouched.
	EnsureAdmin(ctx context.Context, params EnsureAdminParams) (*models.User, error)
}

type TaskService interface {
	// CreateTask validates params and stores a new task. The status
	// defaults to todo.
	//
	// It returns ErrProjectNotFound if the project doesn't exist and
	// ErrAssigneeNotFound if the assignee doesn't exist.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// ListTasks loads the tasks narrowed by project and assignee, newest
	// first, and then applies the display criteria.
	ListTasks(ctx context.Context, params ListTasksParams) ([]models.Task, error)

	// ListTags returns the distinct tags of the project's tasks, or of
	// every task if projectID is empty.
	ListTags(ctx context.Context, projectID string) ([]string, error)

	// UpdateTask applies the non-nil fields of params and stamps
	// UpdatedAt.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error)

	// GetProject returns the project with its tasks attached, or
	// ErrForbidden unless the actor is an admin, the owner or a member.
	GetProject(ctx context.Context, params GetProjectParams) (*models.Project, error)

	// ListProjects returns the projects visible to the actor that match
	// the query, newest first, each with its tasks attached. Admins see
	// every project.
	ListProjects(ctx context.Context, params ListProjectsParams) ([]models.Project, error)

	// UpdateProject, DeleteProject, AddProjectMember and
	// RemoveProjectMember return ErrForbidden unless the actor owns the
	// project or is an admin.
	UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error)
	DeleteProject(ctx context.Context, params DeleteProjectParams) error

	// AddProjectMember returns ErrUserNotFound if the user doesn't exist
	// and ErrAlreadyMember if the user owns or already belongs to the
	// project.
	AddProjectMember(ctx context.Context, params ProjectMemberParams) (*models.Project, error)
	// RemoveProjectMember returns ErrNotMember if the user doesn't
	// belong to the project.
	RemoveProjectMember(ctx context.Context, params ProjectMemberParams) (*models.Project, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateUserParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateUserParams struct {
	ID     string
	Name   *string
	Role   *string
	Active *bool
}

type EnsureAdminParams struct {
	Name     string
	Email    string
	Password string
}

type CreateTaskParams struct {
	ProjectID   string
	Title       string
	Description *string
	Status      string
	Tags        []string
	AssigneeID  *string
	DueDate     *string
}

type ListTasksParams struct {
	ProjectID  string
	AssigneeID string
	Criteria   views.TaskCriteria
}

// UpdateTaskParams leaves nil fields untouched. An empty Description,
// AssigneeID or DueDate clears the field, a non-nil empty Tags clears
// the tags.
type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
	Tags        []string
	AssigneeID  *string
	DueDate     *string
}

type UpdateTaskStatusParams struct {
	ID     string
	Status string
}

type CreateProjectParams struct {
	Actor       session.Principal
	Title       string
	Description string
	Tags        []string
}

type GetProjectParams struct {
	Actor session.Principal
	ID    string
}

type ListProjectsParams struct {
	Actor session.Principal
	Query string
}

type UpdateProjectParams struct {
	Actor       session.Principal
	ID          string
	Title       *string
	Description *string
	Tags        []string
}

type DeleteProjectParams struct {
	Actor session.Principal
	ID    string
}

type ProjectMemberParams struct {
	Actor     session.Principal
	ProjectID string
	UserID    string
}
