// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"ktm_rentals_backend/internal/app"
	"ktm_rentals_backend/internal/config"
	"ktm_rentals_backend/internal/filestorage"
	"ktm_rentals_backend/internal/firebase"
	"ktm_rentals_backend/internal/jobs"
	"ktm_rentals_backend/internal/loginlog"
	"ktm_rentals_backend/internal/platform/database"
	platformElasticsearch "ktm_rentals_backend/internal/platform/elasticsearch"
	"ktm_rentals_backend/internal/platform/logger"
	"ktm_rentals_backend/internal/room"
	"ktm_rentals_backend/internal/shared"
	"ktm_rentals_backend/internal/submission"
	"ktm_rentals_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		platformElasticsearch.NewClient,
		provideCleanup,

		// Firebase Service
		firebase.NewFirebaseService,

		// Login events
		loginlog.NewGORMRepository,
		loginlog.NewService,
		wire.Bind(new(loginlog.Service), new(*loginlog.ServiceImplementation)),

		// Core User Services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Published rooms
		room.NewGORMRepository,
		room.NewService,
		wire.Bind(new(room.Service), new(*room.ServiceImplementation)),
		room.NewHandler,

		// Verification workflow
		submission.NewGORMRepository,
		submission.NewService,
		wire.Bind(new(submission.Service), new(*submission.ServiceImplementation)),
		submission.NewHandler,

		// Uploads
		provideFileStorage,
		filestorage.NewHandler,

		// Jobs
		jobs.NewLoginPurgeJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideFileStorage(cfg *config.Config, zapLogger *zap.Logger) (*filestorage.Service, error) {
	return filestorage.NewService(cfg.ImageStoragePath, zapLogger)
}

func provideCleanup(zapLogger *zap.Logger, db *gorm.DB) func() {
	return func() {
		zapLogger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := zapLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
