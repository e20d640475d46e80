package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleAdmin, RoleManager, RoleMember:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
}

type User struct {
	ID    string
	Name  string
	Email string
	// Password holds the argon2id hash, never the plain text.
	Password  string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
