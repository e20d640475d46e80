package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
	"github.com/adanyl0v/taskwise/internal/views"
)

func newProject(t *testing.T, s *Store, id string) models.Project {
	t.Helper()

	p := models.Project{ID: id, Title: "p " + id, CreatedAt: time.Now()}
	if err := s.CreateProject(context.Background(), &p); err != nil {
		t.Fatalf("CreateProject() err=%v, want nil", err)
	}
	return p
}

func TestStore_TaskCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")

	description := "d1"
	in := models.Task{
		ID:          "t1",
		ProjectID:   "p1",
		Title:       "t1",
		Description: &description,
		Status:      models.StatusTodo,
		Tags:        []string{"ui"},
	}
	if err := s.CreateTask(ctx, &in); err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}

	// the store must not alias the caller's values
	in.Tags[0] = "changed"
	description = "changed"

	got, err := s.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask() err=%v, want nil", err)
	}
	if got.Tags[0] != "ui" || *got.Description != "d1" {
		t.Fatalf("GetTask()=%+v, want stored copy", got)
	}
}

func TestStore_CreateTask_UnknownProject(t *testing.T) {
	s := New()
	err := s.CreateTask(context.Background(), &models.Task{ID: "t1", ProjectID: "missing"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("CreateTask() err=%v, want %v", err, store.ErrNotFound)
	}
}

func TestStore_ListTasks_NewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")
	newProject(t, s, "p2")

	tasks := []models.Task{
		{ID: "a", ProjectID: "p1", Assignee: &models.Assignee{ID: "u1", Name: "U"}},
		{ID: "b", ProjectID: "p2"},
		{ID: "c", ProjectID: "p1"},
	}
	for i := range tasks {
		if err := s.CreateTask(ctx, &tasks[i]); err != nil {
			t.Fatalf("CreateTask() err=%v", err)
		}
	}

	all, _ := s.ListTasks(ctx, store.TaskFilter{})
	if got := taskIDs(all); got != "cba" {
		t.Fatalf("ListTasks() order=%s, want cba", got)
	}

	p1, _ := s.ListTasks(ctx, store.TaskFilter{ProjectID: "p1"})
	if got := taskIDs(p1); got != "ca" {
		t.Fatalf("ListTasks(p1)=%s, want ca", got)
	}

	mine, _ := s.ListTasks(ctx, store.TaskFilter{AssigneeID: "u1"})
	if got := taskIDs(mine); got != "a" {
		t.Fatalf("ListTasks(u1)=%s, want a", got)
	}
}

func TestStore_DeleteProject_CascadesTasks(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")
	newProject(t, s, "p2")
	_ = s.CreateTask(ctx, &models.Task{ID: "a", ProjectID: "p1"})
	_ = s.CreateTask(ctx, &models.Task{ID: "b", ProjectID: "p2"})

	if err := s.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject() err=%v, want nil", err)
	}
	if _, err := s.GetTask(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetTask(a) err=%v, want %v", err, store.ErrNotFound)
	}
	if _, err := s.GetTask(ctx, "b"); err != nil {
		t.Fatalf("GetTask(b) err=%v, want nil", err)
	}
	if err := s.DeleteProject(ctx, "p1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("DeleteProject() twice err=%v, want %v", err, store.ErrNotFound)
	}
}

func TestStore_UserEmailUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@example.com"}); err != nil {
		t.Fatalf("CreateUser() err=%v, want nil", err)
	}
	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "a@example.com"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("CreateUser() err=%v, want %v", err, store.ErrAlreadyExists)
	}
}

func TestStore_DeleteUser_ClearsSessionsAndAssignments(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")
	_ = s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@example.com"})
	_ = s.ReplaceSessions(ctx, &models.Session{ID: "s1", UserID: "u1"})
	_ = s.CreateTask(ctx, &models.Task{ID: "t1", ProjectID: "p1", Assignee: &models.Assignee{ID: "u1"}})

	if err := s.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUser() err=%v, want nil", err)
	}
	if _, err := s.GetSessionByID(ctx, "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetSessionByID() err=%v, want %v", err, store.ErrNotFound)
	}
	task, _ := s.GetTask(ctx, "t1")
	if task.Assignee != nil {
		t.Fatalf("task.Assignee=%+v, want nil", task.Assignee)
	}
}

func TestStore_ReplaceSessions(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.ReplaceSessions(ctx, &models.Session{ID: "s1", UserID: "u1", RefreshToken: "r1", Fingerprint: "f"})
	_ = s.ReplaceSessions(ctx, &models.Session{ID: "s2", UserID: "u1", RefreshToken: "r2", Fingerprint: "f"})

	if _, err := s.GetSessionByID(ctx, "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetSessionByID(s1) err=%v, want %v", err, store.ErrNotFound)
	}
	got, err := s.GetSessionByRefreshToken(ctx, "r2", "f")
	if err != nil || got.ID != "s2" {
		t.Fatalf("GetSessionByRefreshToken()=%v,%v, want s2", got, err)
	}
	if _, err := s.GetSessionByRefreshToken(ctx, "r2", "other"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetSessionByRefreshToken(other fingerprint) err=%v, want %v", err, store.ErrNotFound)
	}

	n, _ := s.DeleteSessionsByUserID(ctx, "u1")
	if n != 1 {
		t.Fatalf("DeleteSessionsByUserID()=%d, want 1", n)
	}
}

func TestStore_Seed(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := store.Seed(ctx, s, "owner", &models.Assignee{ID: "u1", Name: "Anusua Roy"}, time.Now())
	if err != nil {
		t.Fatalf("Seed() err=%v, want nil", err)
	}

	projects, _ := s.ListProjects(ctx)
	if len(projects) != 4 {
		t.Fatalf("ListProjects() len=%d, want 4", len(projects))
	}
	if projects[0].Title != "TaskWise App Development" {
		t.Fatalf("projects[0].Title=%q, want newest first", projects[0].Title)
	}

	tasks, _ := s.ListTasks(ctx, store.TaskFilter{ProjectID: projects[0].ID})
	if got := views.ComputeProgress(tasks); got != 33 {
		t.Fatalf("progress=%d, want 33", got)
	}
	if tasks[0].Title != "Design login" {
		t.Fatalf("tasks[0].Title=%q, want Design login", tasks[0].Title)
	}

	mine, _ := s.ListTasks(ctx, store.TaskFilter{AssigneeID: "u1"})
	if len(mine) != 3 {
		t.Fatalf("assigned tasks=%d, want 3", len(mine))
	}
}

func TestStore_ConcurrentCreateTask(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.CreateTask(ctx, &models.Task{ID: fmt.Sprintf("t%d", i), ProjectID: "p1"})
		}()
	}
	wg.Wait()

	tasks, err := s.ListTasks(ctx, store.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks() err=%v, want nil", err)
	}
	if len(tasks) != n {
		t.Fatalf("ListTasks() len=%d, want %d", len(tasks), n)
	}
}

func taskIDs(tasks []models.Task) string {
	var out string
	for _, t := range tasks {
		out += t.ID
	}
	return out
}

func TestStore_ProjectMembers(t *testing.T) {
	ctx := context.Background()
	s := New()
	newProject(t, s, "p1")
	for _, id := range []string{"u1", "u2"} {
		if err := s.CreateUser(ctx, &models.User{ID: id, Email: id + "@example.com"}); err != nil {
			t.Fatalf("CreateUser() err=%v", err)
		}
	}

	if err := s.AddProjectMember(ctx, "missing", "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("AddProjectMember(missing project) err=%v, want %v", err, store.ErrNotFound)
	}
	if err := s.AddProjectMember(ctx, "p1", "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("AddProjectMember(missing user) err=%v, want %v", err, store.ErrNotFound)
	}
	for _, id := range []string{"u1", "u2"} {
		if err := s.AddProjectMember(ctx, "p1", id); err != nil {
			t.Fatalf("AddProjectMember(%s) err=%v, want nil", id, err)
		}
	}
	if err := s.AddProjectMember(ctx, "p1", "u1"); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("AddProjectMember(twice) err=%v, want %v", err, store.ErrAlreadyExists)
	}

	// updates keep the membership
	p, _ := s.GetProject(ctx, "p1")
	p.Title = "renamed"
	p.Members = nil
	if err := s.UpdateProject(ctx, p); err != nil {
		t.Fatalf("UpdateProject() err=%v", err)
	}
	p, _ = s.GetProject(ctx, "p1")
	if len(p.Members) != 2 || p.Members[0] != "u1" {
		t.Fatalf("Members=%v, want [u1 u2]", p.Members)
	}

	p.Members[0] = "changed"
	if got, _ := s.GetProject(ctx, "p1"); got.Members[0] != "u1" {
		t.Fatalf("GetProject() aliases members: %v", got.Members)
	}

	if err := s.RemoveProjectMember(ctx, "p1", "u1"); err != nil {
		t.Fatalf("RemoveProjectMember() err=%v, want nil", err)
	}
	if err := s.RemoveProjectMember(ctx, "p1", "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("RemoveProjectMember(twice) err=%v, want %v", err, store.ErrNotFound)
	}

	if err := s.DeleteUser(ctx, "u2"); err != nil {
		t.Fatalf("DeleteUser() err=%v", err)
	}
	if p, _ = s.GetProject(ctx, "p1"); len(p.Members) != 0 {
		t.Fatalf("Members after DeleteUser=%v, want none", p.Members)
	}
}
