package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/views"
)

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "Website Redesign")

	task, err := f.tasks.CreateTask(context.Background(), CreateTaskParams{
		ProjectID:   p.ID,
		Title:       "  Audit css  ",
		Description: ptr("   "),
		Tags:        []string{" css", "", "infra", "css"},
		DueDate:     ptr("2025-09-12T10:30:00Z"),
		AssigneeID:  ptr(f.owner.UserID),
	})
	if err != nil {
		t.Fatalf("CreateTask() err=%v, want nil", err)
	}

	if task.Title != "Audit css" {
		t.Fatalf("Title=%q, want %q", task.Title, "Audit css")
	}
	if task.Status != models.StatusTodo {
		t.Fatalf("Status=%q, want %q", task.Status, models.StatusTodo)
	}
	if task.Description != nil {
		t.Fatalf("Description=%q, want nil", *task.Description)
	}
	if want := []string{"css", "infra"}; !reflect.DeepEqual(task.Tags, want) {
		t.Fatalf("Tags=%v, want %v", task.Tags, want)
	}
	if task.DueDate == nil || *task.DueDate != "2025-09-12" {
		t.Fatalf("DueDate=%v, want 2025-09-12", task.DueDate)
	}
	if task.Assignee == nil || task.Assignee.Name != "Owner" {
		t.Fatalf("Assignee=%+v, want Owner", task.Assignee)
	}
	if task.UpdatedAt != nil {
		t.Fatalf("UpdatedAt=%v, want nil", task.UpdatedAt)
	}
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")

	tests := []struct {
		name   string
		params CreateTaskParams
		want   error
	}{
		{"empty title", CreateTaskParams{ProjectID: p.ID, Title: "  "}, ErrEmptyTitle},
		{"unknown status", CreateTaskParams{ProjectID: p.ID, Title: "x", Status: "unknown"}, ErrInvalidTaskStatus},
		{"bad due date", CreateTaskParams{ProjectID: p.ID, Title: "x", DueDate: ptr("tomorrow")}, ErrInvalidDueDate},
		{"unknown assignee", CreateTaskParams{ProjectID: p.ID, Title: "x", AssigneeID: ptr("nobody")}, ErrAssigneeNotFound},
		{"unknown project", CreateTaskParams{ProjectID: "missing", Title: "x"}, ErrProjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.CreateTask(context.Background(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CreateTask() err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestTaskService_ListTasks_AppliesCriteria(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")
	other := f.project(t, "other")

	f.task(t, p.ID, "Write docs", "done", "docs")
	f.task(t, p.ID, "Write tests", "todo", "qa")
	f.task(t, other.ID, "Write tests elsewhere", "todo", "qa")

	got, err := f.tasks.ListTasks(context.Background(), ListTasksParams{
		ProjectID: p.ID,
		Criteria:  views.TaskCriteria{Query: "test"},
	})
	if err != nil {
		t.Fatalf("ListTasks() err=%v, want nil", err)
	}
	if len(got) != 1 || got[0].Title != "Write tests" {
		t.Fatalf("ListTasks()=%v, want only Write tests", got)
	}

	all, _ := f.tasks.ListTasks(context.Background(), ListTasksParams{})
	if len(all) != 3 || all[0].Title != "Write tests elsewhere" {
		t.Fatalf("ListTasks() first=%q, want newest first", all[0].Title)
	}
}

func TestTaskService_ListTasks_Mine(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")

	_, err := f.tasks.CreateTask(context.Background(), CreateTaskParams{
		ProjectID:  p.ID,
		Title:      "mine",
		AssigneeID: ptr(f.owner.UserID),
	})
	if err != nil {
		t.Fatalf("CreateTask() err=%v", err)
	}
	f.task(t, p.ID, "unassigned", "")

	got, _ := f.tasks.ListTasks(context.Background(), ListTasksParams{AssigneeID: f.owner.UserID})
	if len(got) != 1 || got[0].Title != "mine" {
		t.Fatalf("ListTasks(mine)=%v, want only mine", got)
	}
}

func TestTaskService_ListTags(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")

	f.task(t, p.ID, "a", "", "ui", "mobile")
	f.task(t, p.ID, "b", "", "backend", "ui")

	got, err := f.tasks.ListTags(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ListTags() err=%v, want nil", err)
	}
	// tasks are listed newest first
	if want := []string{"backend", "ui", "mobile"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ListTags()=%v, want %v", got, want)
	}
}

func TestTaskService_UpdateTask(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")
	created, err := f.tasks.CreateTask(context.Background(), CreateTaskParams{
		ProjectID:   p.ID,
		Title:       "old",
		Description: ptr("keep me"),
		Tags:        []string{"a"},
		DueDate:     ptr("2025-01-01"),
	})
	if err != nil {
		t.Fatalf("CreateTask() err=%v", err)
	}

	updated, err := f.tasks.UpdateTask(context.Background(), UpdateTaskParams{
		ID:      created.ID,
		Title:   ptr("new"),
		Status:  ptr("blocked"),
		DueDate: ptr(""),
	})
	if err != nil {
		t.Fatalf("UpdateTask() err=%v, want nil", err)
	}
	if updated.Title != "new" || updated.Status != models.StatusBlocked {
		t.Fatalf("UpdateTask()=%+v, want new/blocked", updated)
	}
	if updated.DescriptionOrEmpty() != "keep me" || !reflect.DeepEqual(updated.Tags, []string{"a"}) {
		t.Fatalf("UpdateTask() touched fields that were not set: %+v", updated)
	}
	if updated.DueDate != nil {
		t.Fatalf("DueDate=%v, want cleared", *updated.DueDate)
	}
	if updated.UpdatedAt == nil {
		t.Fatal("UpdatedAt=nil, want set")
	}

	stored, _ := f.tasks.GetTask(context.Background(), created.ID)
	if stored.Title != "new" {
		t.Fatalf("stored Title=%q, want new", stored.Title)
	}
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")
	task := f.task(t, p.ID, "x", "")

	_, err := f.tasks.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{ID: task.ID, Status: "archived"})
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Fatalf("UpdateTaskStatus() err=%v, want %v", err, ErrInvalidTaskStatus)
	}

	got, err := f.tasks.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{ID: task.ID, Status: "done"})
	if err != nil {
		t.Fatalf("UpdateTaskStatus() err=%v, want nil", err)
	}
	if got.Status != models.StatusDone {
		t.Fatalf("Status=%q, want done", got.Status)
	}

	_, err = f.tasks.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{ID: "missing", Status: "done"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("UpdateTaskStatus() err=%v, want %v", err, ErrTaskNotFound)
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	f := newFixture(t)
	p := f.project(t, "p")
	task := f.task(t, p.ID, "x", "")

	if err := f.tasks.DeleteTask(context.Background(), task.ID); err != nil {
		t.Fatalf("DeleteTask() err=%v, want nil", err)
	}
	if err := f.tasks.DeleteTask(context.Background(), task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("DeleteTask() twice err=%v, want %v", err, ErrTaskNotFound)
	}
}

func TestNormalizeDueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-09-12", want: "2025-09-12"},
		{in: " 2025-09-12T23:00:00+02:00 ", want: "2025-09-12"},
		{in: "", want: ""},
		{in: "12/09/2025", wantErr: true},
	}
	for _, tt := range tests {
		got, err := normalizeDueDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("normalizeDueDate(%q) err=%v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if tt.wantErr {
			continue
		}
		if tt.want == "" {
			if got != nil {
				t.Fatalf("normalizeDueDate(%q)=%q, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Fatalf("normalizeDueDate(%q)=%v, want %q", tt.in, got, tt.want)
		}
	}
}
