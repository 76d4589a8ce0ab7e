package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/pkg/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory containing the SQL migrations")
	flag.Parse()

	logging.Setup()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("DATABASE_URL environment variable is not set")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		name, err := database.RollbackLast(ctx, db, *dir)
		if errors.Is(err, database.ErrNoMigrations) {
			slog.Info("no migrations to rollback")
			return
		}
		if err != nil {
			slog.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("rolled back migration", "name", name)
		return
	}

	applied, err := database.ApplyMigrations(ctx, db, *dir)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if len(applied) == 0 {
		slog.Info("database is up to date")
		return
	}
	slog.Info("applied migrations", "count", len(applied), "names", applied)
}
