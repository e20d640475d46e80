package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
)

// Store keeps everything in process memory. Values are copied on the way in
// and on the way out, so callers never share state with the store.
type Store struct {
	mu       sync.RWMutex
	users    []models.User
	sessions map[string]models.Session
	// projects and tasks are kept newest first.
	projects []models.Project
	tasks    []models.Task
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		sessions: make(map[string]models.Session),
	}
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == user.ID || u.Email == user.Email {
			return store.ErrAlreadyExists
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	user := s.users[i]
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	user := s.users[i]
	return &user, nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.users), nil
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == user.ID })
	if i < 0 {
		return store.ErrNotFound
	}
	for j, u := range s.users {
		if j != i && u.Email == user.Email {
			return store.ErrAlreadyExists
		}
	}
	s.users[i] = *user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.users = slices.Delete(s.users, i, i+1)
	for sid, sess := range s.sessions {
		if sess.UserID == id {
			delete(s.sessions, sid)
		}
	}
	for k := range s.tasks {
		if a := s.tasks[k].Assignee; a != nil && a.ID == id {
			s.tasks[k].Assignee = nil
		}
	}
	for k := range s.projects {
		s.projects[k].Members = slices.DeleteFunc(s.projects[k].Members, func(m string) bool { return m == id })
	}
	return nil
}

func (s *Store) ReplaceSessions(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == session.UserID {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) GetSessionByID(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) GetSessionByRefreshToken(_ context.Context, refreshToken, fingerprint string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.RefreshToken == refreshToken && sess.Fingerprint == fingerprint {
			return &sess, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateSession(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return store.ErrNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) DeleteSessionsByUserID(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
			affected++
		}
	}
	return affected, nil
}

func (s *Store) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(project.ID) >= 0 {
		return store.ErrAlreadyExists
	}
	p := project.Clone()
	p.Tasks = nil
	p.Members = []string{}
	s.projects = slices.Insert(s.projects, 0, p)
	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.projectIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	p := s.projects[i].Clone()
	return &p, nil
}

func (s *Store) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		projects[i] = p.Clone()
	}
	return projects, nil
}

func (s *Store) UpdateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(project.ID)
	if i < 0 {
		return store.ErrNotFound
	}
	p := project.Clone()
	p.Tasks = nil
	p.Members = s.projects[i].Members
	s.projects[i] = p
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.projects = slices.Delete(s.projects, i, i+1)
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ProjectID == id })
	return nil
}

func (s *Store) AddProjectMember(_ context.Context, projectID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 || !slices.ContainsFunc(s.users, func(u models.User) bool { return u.ID == userID }) {
		return store.ErrNotFound
	}
	if slices.Contains(s.projects[i].Members, userID) {
		return store.ErrAlreadyExists
	}
	s.projects[i].Members = append(s.projects[i].Members, userID)
	return nil
}

func (s *Store) RemoveProjectMember(_ context.Context, projectID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 {
		return store.ErrNotFound
	}
	j := slices.Index(s.projects[i].Members, userID)
	if j < 0 {
		return store.ErrNotFound
	}
	s.projects[i].Members = slices.Delete(s.projects[i].Members, j, j+1)
	return nil
}

func (s *Store) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(task.ProjectID) < 0 {
		return store.ErrNotFound
	}
	if s.taskIndex(task.ID) >= 0 {
		return store.ErrAlreadyExists
	}
	s.tasks = slices.Insert(s.tasks, 0, task.Clone())
	return nil
}

func (s *Store) GetTask(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	t := s.tasks[i].Clone()
	return &t, nil
}

func (s *Store) ListTasks(_ context.Context, filter store.TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AssigneeID != "" && (t.Assignee == nil || t.Assignee.ID != filter.AssigneeID) {
			continue
		}
		tasks = append(tasks, t.Clone())
	}
	return tasks, nil
}

func (s *Store) UpdateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(task.ID)
	if i < 0 {
		return store.ErrNotFound
	}
	s.tasks[i] = task.Clone()
	return nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

func (s *Store) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == id })
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}
