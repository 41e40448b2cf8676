package main

// Run database migrations:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate -down      # revert the latest migration
//   go run ./cmd/migrate -status

import (
	"context"
	"flag"
	"log"
	"os"

	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/storage/db"
)

func main() {
	down := flag.Bool("down", false, "Revert the most recent migration")
	status := flag.Bool("status", false, "Print migration status and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch {
	case *status:
		err = db.MigrationStatus(ctx, sqlDB)
	case *down:
		err = db.RollbackMigration(ctx, sqlDB)
	default:
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		log.Printf("migration failed: %v", err)
		os.Exit(1)
	}
}
