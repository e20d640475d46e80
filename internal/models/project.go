package models

import (
	"slices"
	"time"
)

// Project owns its tasks. Progress is never stored, it is derived from
// Tasks every time the project is rendered.
type Project struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Tags        []string
	// Members holds the ids of users granted access besides the owner.
	Members     []string
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (p Project) Clone() Project {
	c := p
	c.Tags = slices.Clone(p.Tags)
	c.Members = slices.Clone(p.Members)
	if p.Tasks != nil {
		c.Tasks = make([]Task, len(p.Tasks))
		for i, t := range p.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	if p.UpdatedAt != nil {
		u := *p.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}

// HasMember reports whether userID owns the project or was added to it.
func (p Project) HasMember(userID string) bool {
	return p.OwnerID == userID || slices.Contains(p.Members, userID)
}
