package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/services"
)

type getUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user *models.User) getUserResponse {
	return getUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"omitempty,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=admin manager member"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create user")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	response := make([]getUserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	user, err := h.users.GetUser(c, c.Param("id"))
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateUserRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin manager member"`
	Active *bool   `json:"active,omitempty"`
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	var req updateUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.UpdateUser(c, services.UpdateUserParams{
		ID:     c.Param("id"),
		Name:   req.Name,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update user")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	p, _ := principal(c)
	if p.UserID == c.Param("id") {
		h.logger.Error().
			Str("user_id", p.UserID).
			Msg("admin tried to delete own account")
		abort(c, newBadRequestError("cannot delete the current user"))
		return
	}

	err := h.users.DeleteUser(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete user")
		abort(c, newServiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
