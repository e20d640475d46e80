package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskwise/internal/services"
	"github.com/adanyl0v/taskwise/internal/session"
)

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		h.logger.Error().Msg("access token required")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	claims, err := h.auth.ParseJWTToken(accessToken)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Error().
				Err(err).
				Msg("failed to parse token")
			abort(c, newUnauthorizedError(errUnauthenticated.Error()))
			return
		}

		result, ok := h.refresh(c)
		if !ok {
			return
		}
		claims, err = h.auth.ParseJWTToken(result.AccessToken)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			abort(c, newUnauthorizedError(errUnauthenticated.Error()))
			return
		}
	}

	sess, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.logger.Warn().Msg("session not found")
			abort(c, newUnauthorizedError(services.ErrSessionNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	browserFingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	if browserFingerprint != sess.Fingerprint {
		h.logger.Error().
			Str("session_id", sess.ID).
			Msg("fingerprint mismatch")
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}

	user, err := h.users.GetUser(c, sess.UserID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", sess.UserID).
			Msg("failed to load session user")
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newUnauthorizedError(errUnauthenticated.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	if !user.Active {
		h.logger.Error().
			Str("user_id", user.ID).
			Msg("user is inactive")
		abort(c, newUnauthorizedError(services.ErrUserInactive.Error()))
		return
	}

	principal := session.Principal{
		UserID:    user.ID,
		SessionID: sess.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
	}
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), principal))
	c.Next()
}

func (h *handlerImpl) HandleAdminMiddleware(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		abort(c, newUnauthorizedError(errUnauthenticated.Error()))
		return
	}
	if !p.IsAdmin() {
		h.logger.Error().
			Str("user_id", p.UserID).
			Str("role", string(p.Role)).
			Msg("admin role required")
		abort(c, newForbiddenError(services.ErrForbidden.Error()))
		return
	}
	c.Next()
}

// bearerToken reads the access token from the Authorization header and
// falls back to the access token cookie.
func bearerToken(c *gin.Context) (string, bool) {
	const bearerPrefix = "Bearer"
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	token, err := c.Cookie(accessTokenCookie)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func principal(c *gin.Context) (session.Principal, bool) {
	return session.FromContext(c.Request.Context())
}
