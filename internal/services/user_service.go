package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  store.UserStore
}

func NewUserService(
	logger zerolog.Logger,
	users store.UserStore,
) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	now := time.Now()
	user := models.User{
		Name:      strings.TrimSpace(params.Name),
		Email:     normalizeEmail(params.Email),
		Role:      models.RoleMember,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Name == "" {
		user.Name = user.Email
	}
	if params.Role != "" {
		role, err := models.ParseRole(params.Role)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("email", user.Email).
				Msg("invalid role")
			return nil, err
		}
		user.Role = role
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	user.Password, err = argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	err = s.users.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("created user")
	return &user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list users")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(users)).
		Msg("listed users")
	return users, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("user_id", id).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to get user by id")
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error) {
	user, err := s.GetUser(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			s.logger.Error().
				Str("user_id", user.ID).
				Msg("empty user name")
			return nil, ErrEmptyName
		}
		user.Name = name
	}
	if params.Role != nil {
		role, err := models.ParseRole(*params.Role)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("user_id", user.ID).
				Msg("invalid role")
			return nil, err
		}
		user.Role = role
	}
	if params.Active != nil {
		user.Active = *params.Active
	}
	user.UpdatedAt = time.Now()

	err = s.users.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Bool("active", user.Active).
		Msg("updated user")
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id string) error {
	err := s.users.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().
				Str("user_id", id).
				Msg("user not found")
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to delete user")
		return err
	}

	s.logger.Info().
		Str("user_id", id).
		Msg("deleted user")
	return nil
}

func (s *userServiceImpl) EnsureAdmin(ctx context.Context, params EnsureAdminParams) (*models.User, error) {
	email := normalizeEmail(params.Email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		s.logger.Debug().
			Str("user_id", existing.ID).
			Msg("admin already exists")
		return existing, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to get user by email")
		return nil, err
	}

	now := time.Now()
	user := models.User{
		Name:      strings.TrimSpace(params.Name),
		Email:     email,
		Role:      models.RoleAdmin,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Name == "" {
		user.Name = "Administrator"
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	user.Password, err = argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	err = s.users.CreateUser(ctx, &user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to create admin")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("created admin")
	return &user, nil
}
