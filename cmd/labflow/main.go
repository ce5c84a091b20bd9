package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/swoodhull82/labflow/internal/cli"
	"github.com/swoodhull82/labflow/internal/config"
	"github.com/swoodhull82/labflow/internal/db"
	"github.com/swoodhull82/labflow/internal/repository"
	"github.com/swoodhull82/labflow/internal/service"
	"github.com/swoodhull82/labflow/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("LABFLOW_CONFIG")
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Remote mode talks to the collection API; local mode opens SQLite.
	var taskStore store.Store
	if cfg.Remote() {
		taskStore = store.NewHTTPStore(cfg.ServerURL, cfg.Token)
	} else {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		taskStore = repository.NewSQLiteTaskStore(database)
	}

	var observers []service.UseCaseObserver
	if cfg.LogPath != "" {
		logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		observers = append(observers, service.NewLogUseCaseObserver(logFile))
	}

	app := &cli.App{
		Tasks: service.NewTaskService(taskStore, observers...),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
