package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/storage/db"
	"careercraft-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.MigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}

	err = db.Migrate(ctx, sqlDB)
	sqlDB.Close()
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
