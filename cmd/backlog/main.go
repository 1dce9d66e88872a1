package main

import (
	"fmt"
	"os"
	"path/filepath"

	"backlog/internal/cli"
	"backlog/internal/db"
	"backlog/internal/domain"
	"backlog/internal/repository"
	"backlog/internal/service"

	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.backlog/backlog.db
	dbPath := os.Getenv("BACKLOG_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".backlog", "backlog.db")
	}

	// The acting identity comes from the environment; every command is
	// scoped to this user and org.
	identity := domain.Identity{
		UserID: os.Getenv("BACKLOG_USER"),
		OrgID:  os.Getenv("BACKLOG_ORG"),
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	issueSvc := service.NewIssueService(issueRepo, projectRepo, sprintRepo, uow)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("BACKLOG_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Users:    service.NewUserService(userRepo),
		Projects: service.NewProjectService(projectRepo, issueRepo),
		Sprints:  service.NewSprintService(sprintRepo, projectRepo, issueRepo),
		Issues:   issueSvc,
		Actions:  service.NewActions(issueSvc, service.NoopInvalidator{}, observer),
		Identity: identity,
	}

	// Detect interactive terminal for forms and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
