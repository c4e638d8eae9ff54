package main

import (
	"database/sql"
	"fmt"
	"os"

	"event-manager/internal/config"
	"event-manager/internal/database/migrations"
	"event-manager/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Standalone migration runner: `go run ./cmd/migrate up` brings the
// schema current (with DB_SEED_DATA=true it also loads the demo rows),
// `down` rolls everything back.
func main() {
	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	sqldb, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: cfg.Database.MigrationsDir,
		SeedData:      cfg.Database.SeedData,
	})
	defer runner.Close()

	switch direction {
	case "up":
		if err := runner.Run(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Schema is up to date")
	case "down":
		if err := runner.Down(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Rollback failed: %v", err))
		}
		log.Info("DATABASE", "All migrations rolled back")
	default:
		log.Fatal("APP", fmt.Sprintf("Unknown direction %q (want up or down)", direction))
	}
}
