package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/stockops/adjustment-e2e/internal/browser"
	internalcli "github.com/stockops/adjustment-e2e/internal/cli"
	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/database"
	"github.com/stockops/adjustment-e2e/internal/handlers"
	"github.com/stockops/adjustment-e2e/internal/logger"
	"github.com/stockops/adjustment-e2e/internal/repository"
	"github.com/stockops/adjustment-e2e/internal/services"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// openRunService connects to the run-history database and runs migrations
func openRunService(log *logger.Logger) (services.RunService, func(), error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Str("host", pgConfig.Host).Str("database", pgConfig.Database).Msg("connected to run-history database")

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return services.NewRunService(repository.NewRunRepository(db)), func() { db.Close() }, nil
}

// AuthCommand returns the auth command
func AuthCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Log in once and save the browser storage state the suites restore",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "storage state file to write",
				Value: "artifacts/storage-state.json",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadE2EConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sessions := services.NewSessionService(services.NewAuthClient(cfg), cfg, log)
			ctx, cancel := context.WithTimeout(c.Context, cfg.NetworkTimeout)
			defer cancel()
			token, err := sessions.AcquireToken(ctx)
			if err != nil {
				return err
			}

			pw, err := playwright.Run()
			if err != nil {
				return fmt.Errorf("could not start playwright: %w", err)
			}
			defer pw.Stop()

			b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
				Headless: playwright.Bool(true),
			})
			if err != nil {
				return fmt.Errorf("could not launch browser: %w", err)
			}
			defer b.Close()

			out := c.String("out")
			if err := browser.WriteStorageState(b, cfg, token, out); err != nil {
				return err
			}
			log.Info().Str("path", out).Msg("storage state saved")
			return nil
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Print the most recent suite runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "number of runs to print",
				Value: 20,
			},
		},
		Action: func(c *cli.Context) error {
			runs, closeDB, err := openRunService(log)
			if err != nil {
				return err
			}
			defer closeDB()

			recent, err := runs.Recent(c.Int("limit"))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSUITE\tSTATUS\tSTARTED\tDURATION")
			for _, run := range recent {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					run.ID, run.Suite, run.Status,
					run.StartedAt.Local().Format(time.DateTime),
					run.Duration().Round(time.Second))
			}
			return w.Flush()
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the run history as JSON",
		Action: func(c *cli.Context) error {
			runs, closeDB, err := openRunService(log)
			if err != nil {
				return err
			}
			defer closeDB()

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: config.LoadServerConfig(),
				Logger:       log,
				RunsHandler:  handlers.NewRunsHandler(runs, log),
				RunHandler:   handlers.NewRunHandler(runs, log),
			})
		},
	}
}

// bootLogger loads env files before APP_ENV and LOG_LEVEL are read
func bootLogger(w io.Writer, envFiles ...string) *logger.Logger {
	envErr := godotenv.Load(envFiles...)
	log := logger.NewWithWriter(logger.Config{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL")}, w)
	if envErr != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}
	return log
}

func main() {
	log := bootLogger(os.Stderr)

	app := &cli.App{
		Name:    "adjcheck",
		Usage:   "Inventory adjustment browser suite tooling",
		Version: version,
		Commands: []*cli.Command{
			AuthCommand(log),
			HistoryCommand(log),
			ServeCommand(log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
