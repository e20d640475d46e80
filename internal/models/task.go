package models

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrInvalidTaskStatus = errors.New("invalid task status")

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{
	StatusTodo,
	StatusInProgress,
	StatusBlocked,
	StatusDone,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// ParseTaskStatus returns ErrInvalidTaskStatus for anything outside the
// closed set of statuses.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, raw)
	}
	return s, nil
}

type Assignee struct {
	ID   string
	Name string
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      TaskStatus
	Tags        []string
	Assignee    *Assignee
	// DueDate is normalized to the DueDateLayout.
	DueDate   *string
	CreatedAt time.Time
	// UpdatedAt stays nil until the first mutation.
	UpdatedAt *time.Time
}

const DueDateLayout = time.DateOnly

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	c.Tags = slices.Clone(t.Tags)
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}

func (t Task) DescriptionOrEmpty() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}
