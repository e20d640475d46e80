// Package session carries the authenticated principal through a request.
//
// The principal is loaded once per request by the auth middleware and
// injected into the request context; nothing reads session state from
// anywhere else.
package session

import (
	"context"

	"github.com/adanyl0v/taskwise/internal/models"
)

type Principal struct {
	UserID    string
	SessionID string
	Name      string
	Email     string
	Role      models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type principalCtxKey struct{}

func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
