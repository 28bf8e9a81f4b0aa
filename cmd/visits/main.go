package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/toad-frogski/visits/internal/cli"
	"github.com/toad-frogski/visits/internal/db"
	"github.com/toad-frogski/visits/internal/notify"
	"github.com/toad-frogski/visits/internal/plugin"
	"github.com/toad-frogski/visits/internal/plugin/holidays"
	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.visits/visits.db
	dbPath := os.Getenv("VISITS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".visits", "visits.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	entryRepo := repository.NewSQLiteEntryRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Status events: structured log lines plus the in-process broker the
	// watch dashboard subscribes to.
	broker := notify.NewBroker()
	notifier := service.MultiNotifier{
		service.NewLogNotifier(statusLogWriter()),
		broker,
	}

	// Statistics plugins
	registry := plugin.NewRegistry(holidays.New(parseHolidays(os.Getenv("VISITS_HOLIDAYS"))))

	app := &cli.App{
		Sessions:   service.NewSessionService(sessionRepo, entryRepo, uow, notifier),
		Statistics: service.NewStatisticsService(sessionRepo, entryRepo, registry),
		Events:     broker,
	}

	// Detect interactive terminal for form-based and dashboard commands.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// statusLogWriter keeps event log lines off the terminal unless asked for.
func statusLogWriter() io.Writer {
	if os.Getenv("VISITS_LOG_EVENTS") == "" {
		return nil
	}
	return os.Stderr
}

// parseHolidays reads "MM-DD=Name" pairs separated by commas, e.g.
// "01-01=New Year,05-01=Labour Day".
func parseHolidays(raw string) map[string]string {
	fixed := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		date, name, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fixed[strings.TrimSpace(date)] = strings.TrimSpace(name)
	}
	return fixed
}
