// Package main implements the entry point for the task management API
// server, which handles user accounts and their personal task lists.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/oleh-26-01/TaskManagementAPI/internal/config"
	"github.com/oleh-26-01/TaskManagementAPI/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run initializes configuration, logging, the database connection and the
// application dependency graph, then starts the HTTP server. Separated from
// main so every failure path returns an error instead of exiting directly.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(context.Background()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
