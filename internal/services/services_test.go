package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/session"
	"github.com/adanyl0v/taskwise/internal/store/memory"
)

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	store    *memory.Store
	tasks    TaskService
	projects ProjectService
	users    UserService
	owner    session.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	logger := zerolog.Nop()
	f := &fixture{
		store:    st,
		tasks:    NewTaskService(logger, st, st, st),
		projects: NewProjectService(logger, st, st, st),
		users:    NewUserService(logger, st),
	}

	owner := models.User{ID: "u-owner", Name: "Owner", Email: "owner@example.com", Role: models.RoleManager, Active: true}
	if err := st.CreateUser(context.Background(), &owner); err != nil {
		t.Fatalf("CreateUser() err=%v", err)
	}
	f.owner = session.Principal{UserID: owner.ID, Name: owner.Name, Email: owner.Email, Role: owner.Role}
	return f
}

func (f *fixture) user(t *testing.T, id string, role models.Role) session.Principal {
	t.Helper()

	u := models.User{ID: id, Name: id, Email: id + "@example.com", Role: role, Active: true}
	if err := f.store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("CreateUser() err=%v", err)
	}
	return session.Principal{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (f *fixture) project(t *testing.T, title string) *models.Project {
	t.Helper()

	p, err := f.projects.CreateProject(context.Background(), CreateProjectParams{
		Actor: f.owner,
		Title: title,
	})
	if err != nil {
		t.Fatalf("CreateProject() err=%v, want nil", err)
	}
	return p
}

func (f *fixture) task(t *testing.T, projectID, title, status string, tags ...string) *models.Task {
	t.Helper()

	task, err := f.tasks.CreateTask(context.Background(), CreateTaskParams{
		ProjectID: projectID,
		Title:     title,
		Status:    status,
		Tags:      tags,
	})
	if err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}
	return task
}
