package app

import (
	"context"
	"fmt"
	"time"

	"github.com/adanyl0v/taskwise/internal/config"
	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/services"
	"github.com/adanyl0v/taskwise/internal/store"
	"github.com/adanyl0v/taskwise/internal/store/memory"
	"github.com/adanyl0v/taskwise/internal/store/postgres"
)

var globalStore store.Store

// MustOpenStorage opens the configured store, applies the schema for
// postgres, creates the bootstrap admin and seeds the demo data.
func MustOpenStorage() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		globalStore = memory.New()
	case config.StoragePostgres:
		pgStore := postgres.New(mustConnectPostgres())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Postgres.PingTimeout)
		defer cancel()

		err := pgStore.Migrate(ctx)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to migrate postgres")
			panic(err)
		}
		globalStore = pgStore
	default:
		globalLogger.Error().
			Str("driver", cfg.Storage.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver))
	}
	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("opened storage")

	admin := mustEnsureAdmin()
	if cfg.Storage.Seed {
		mustSeed(admin)
	}
}

func CloseStorage() {
	disconnectPostgres()
}

func mustEnsureAdmin() *models.User {
	cfg := config.Global().Admin
	if cfg.Email == "" {
		return nil
	}

	users := services.NewUserService(componentLogger("users"), globalStore)
	admin, err := users.EnsureAdmin(context.Background(), services.EnsureAdminParams{
		Name:     cfg.Name,
		Email:    cfg.Email,
		Password: cfg.Password,
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure admin")
		panic(err)
	}
	return admin
}

// mustSeed leaves a store that already has projects untouched.
func mustSeed(owner *models.User) {
	ctx := context.Background()
	projects, err := globalStore.ListProjects(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to list projects")
		panic(err)
	}
	if len(projects) > 0 {
		globalLogger.Debug().
			Int("projects", len(projects)).
			Msg("storage is not empty, skipping seed")
		return
	}

	var (
		ownerID  string
		assignee *models.Assignee
	)
	if owner != nil {
		ownerID = owner.ID
		assignee = &models.Assignee{ID: owner.ID, Name: owner.Name}
	}

	err = store.Seed(ctx, globalStore, ownerID, assignee, time.Now())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to seed storage")
		panic(err)
	}
	globalLogger.Info().Msg("seeded storage")
}
