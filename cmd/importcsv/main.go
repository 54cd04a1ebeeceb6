// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

// Command importcsv bulk-loads a CSV fixture directory into the database.
//
// # Usage
//
//	DATABASE_URL=postgres://... importcsv -dir ./static/data [-migrations ./data/migrations]
//
// The load is transactional: a failure in any file rolls everything back.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/revio-app/revio/internal/importer"
	"github.com/revio-app/revio/internal/platform/constants"
	"github.com/revio-app/revio/internal/platform/migration"
	pgstore "github.com/revio-app/revio/internal/platform/postgres"
)

func main() {
	dir := flag.String("dir", "./static/data", "directory containing the CSV fixture files")
	migrationsPath := flag.String("migrations", "", "optional migrations directory to apply before loading")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *migrationsPath != "" {
		if err := migration.RunUp(dsn, *migrationsPath, log); err != nil {
			log.Error("migration failure", slog.Any("error", err))
			os.Exit(1)
		}
	}

	pool, err := pgstore.NewPool(ctx, dsn, log)
	if err != nil {
		log.Error("connect failure", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := importer.New(pool, log).Run(ctx, *dir); err != nil {
		log.Error("import failure", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("import_complete", slog.String("dir", *dir))
}
