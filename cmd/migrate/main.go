package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookcatalog/internal/config"
	"bookcatalog/internal/logging"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

func databaseDSN() string {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v
	}
	return config.DefaultDSN
}

// withDB opens a pool, exposes it as *sql.DB for goose and closes both.
func withDB(ctx context.Context, log *zap.Logger, fn func(db *sql.DB) error) error {
	dsn := databaseDSN()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", config.RedactDSN(dsn), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	log.Debug("database connection ready", zap.String("dsn", config.RedactDSN(dsn)))
	return fn(db)
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply and inspect the book catalog schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnvFiles()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd.Context(), log, func(db *sql.DB) error {
					if err := goose.UpContext(cmd.Context(), db, migrationsDir()); err != nil {
						return fmt.Errorf("apply migrations: %w", err)
					}
					log.Info("migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd.Context(), log, func(db *sql.DB) error {
					if err := goose.DownContext(cmd.Context(), db, migrationsDir()); err != nil {
						return fmt.Errorf("roll back migration: %w", err)
					}
					log.Info("migration rolled back")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd.Context(), log, func(db *sql.DB) error {
					return goose.StatusContext(cmd.Context(), db, migrationsDir())
				})
			},
		},
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create a new SQL migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := goose.Create(nil, migrationsDir(), args[0], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				log.Info("migration created", zap.String("name", args[0]))
				return nil
			},
		},
	)
	return root
}

func main() {
	log := logging.New(config.LogConfig{Level: os.Getenv("LOG_LEVEL")})
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(log).ExecuteContext(context.Background()); err != nil {
		log.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}
}
