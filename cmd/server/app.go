package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"fleet-api/internal/api"
	"fleet-api/internal/config"
	"fleet-api/internal/platform/postgres"
	"fleet-api/internal/service/auth"
	"fleet-api/internal/service/historic"
)

// application holds the server's wired dependencies. Handlers and middleware
// are built from these in setupRouter.
type application struct {
	config          *config.Config
	logger          *slog.Logger
	db              *sql.DB
	jwtService      auth.JWTService
	passwordHasher  *auth.BcryptHasher
	userStore       *postgres.PostgresUserStore
	historicStore   *postgres.PostgresHistoricStore
	historicService *historic.Service

	authHandler     *api.AuthHandler
	userHandler     *api.UserHandler
	historicHandler *api.HistoricHandler
}

// newApplication wires the stores, services and handlers together.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userStore := postgres.NewPostgresUserStore(db, logger)
	historicStore := postgres.NewPostgresHistoricStore(db, logger)
	historicService := historic.NewService(historicStore, logger)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		passwordHasher:  passwordHasher,
		userStore:       userStore,
		historicStore:   historicStore,
		historicService: historicService,

		authHandler:     api.NewAuthHandler(userStore, jwtService, passwordHasher),
		userHandler:     api.NewUserHandler(userStore, passwordHasher, logger),
		historicHandler: api.NewHistoricHandler(historicService, logger),
	}, nil
}
