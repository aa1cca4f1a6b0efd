package cmd

import (
	"fmt"

	"storefront/core/config"
	"storefront/core/database"
	"storefront/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// operatorSetup loads configuration, builds a console logger, and connects to
// the database. Shared by the one-shot operator commands; the server has its
// own startup path.
func operatorSetup() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Operator commands are interactive; force readable console output.
	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, logg, db, nil
}
