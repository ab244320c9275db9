package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avinashkumarr/studiobook/internal/cache"
	"github.com/avinashkumarr/studiobook/internal/cli"
	"github.com/avinashkumarr/studiobook/internal/db"
	"github.com/avinashkumarr/studiobook/internal/pricing"
	"github.com/avinashkumarr/studiobook/internal/repository"
	"github.com/avinashkumarr/studiobook/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.studiobook/studiobook.db
	dbPath := os.Getenv("STUDIOBOOK_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studiobook", "studiobook.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Local draft cache: env var or default ~/.studiobook/state
	stateDir := os.Getenv("STUDIOBOOK_STATE")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".studiobook", "state")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	fileCache, err := cache.NewFileCache(stateDir)
	if err != nil {
		return fmt.Errorf("opening draft cache: %w", err)
	}

	projectRepo := repository.NewSQLiteProjectRepo(database)
	eventRepo := repository.NewSQLiteEventPackageRepo(database)
	envelopeRepo := repository.NewSQLiteEnvelopeRepo(database)
	coordinatorRepo := repository.NewSQLiteCoordinatorRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("STUDIOBOOK_DEBUG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Drafts:       service.NewDraftService(projectRepo, eventRepo, envelopeRepo, coordinatorRepo, uow, observers...),
		Coordinators: service.NewCoordinatorService(coordinatorRepo),
		Cache:        fileCache,
		Rates:        pricing.DefaultRates(),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
