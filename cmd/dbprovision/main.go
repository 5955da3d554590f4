package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/infrastructure/config"
	"github.com/upg/backend/internal/infrastructure/logger"
	"github.com/upg/backend/internal/infrastructure/migration"
	"github.com/upg/backend/internal/infrastructure/provision"
)

const defaultConfigPath = "config.toml"

func main() {
	var (
		configPath     string
		migrationsPath string
		waitTimeout    time.Duration
		pollInterval   time.Duration
		skipMigrate    bool
		logLevel       string
	)

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to the config file (for switch/rollback)")
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to migrations directory")
	flag.DurationVar(&waitTimeout, "wait-timeout", 2*time.Minute, "How long to wait for the database server to come up")
	flag.DurationVar(&pollInterval, "poll-interval", 2*time.Second, "How often to probe the server while waiting")
	flag.BoolVar(&skipMigrate, "skip-migrate", false, "Provision the schema without applying migrations")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	command := "provision"
	if len(args) > 0 {
		command = args[0]
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// switch and rollback operate on the config file itself, before it has
	// to load cleanly.
	switch command {
	case "switch":
		if len(args) < 2 {
			log.Fatal("Backend required. Usage: dbprovision switch <sqlite|mysql>")
		}
		backupPath, err := config.SwitchBackend(configPath, args[1])
		if err != nil {
			log.Fatal("Backend switch failed", zap.Error(err))
		}
		log.Info("Backend switched",
			zap.String("backend", args[1]),
			zap.String("config", configPath),
			zap.String("backup", backupPath),
		)
		return

	case "rollback":
		if len(args) < 2 {
			log.Fatal("Backup file required. Usage: dbprovision rollback <backup-file>")
		}
		if err := config.Restore(configPath, args[1]); err != nil {
			log.Fatal("Config rollback failed", zap.Error(err))
		}
		log.Info("Config restored",
			zap.String("config", configPath),
			zap.String("backup", args[1]),
		)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	p := provision.New(&cfg.Database, log)

	switch command {
	case "check":
		if err := runCheck(ctx, cfg, p, pollInterval, log); err != nil {
			log.Fatal("Check failed", zap.Error(err))
		}
		log.Info("Configuration and connectivity OK",
			zap.String("backend", cfg.Database.Backend),
			zap.String("database", cfg.Database.DBName),
		)

	case "provision":
		if err := p.Run(ctx, pollInterval); err != nil {
			log.Fatal("Provisioning failed", zap.Error(err))
		}
		if !skipMigrate {
			if err := applyMigrations(&cfg.Database, migrationsPath, log); err != nil {
				log.Fatal("Migrations failed", zap.Error(err))
			}
		}
		log.Info("Database provisioning complete",
			zap.String("backend", cfg.Database.Backend),
			zap.String("database", cfg.Database.DBName),
		)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// runCheck verifies the configuration and database connectivity without
// changing anything.
func runCheck(ctx context.Context, cfg *config.Config, p *provision.Provisioner, pollInterval time.Duration, log *zap.Logger) error {
	if cfg.Database.IsSQLite() {
		// The driver would create a missing database file on open, so a
		// read-only check has to stat first.
		exists, err := provision.SQLiteFileExists(cfg.Database.SQLitePath)
		if err != nil {
			return err
		}
		if !exists {
			log.Warn("Database not provisioned yet", zap.String("path", cfg.Database.SQLitePath))
			return nil
		}
		db, err := openDatabase(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.PingContext(ctx)
	}

	if err := p.WaitForServer(ctx, pollInterval); err != nil {
		return err
	}
	// VerifyCharset reads information_schema only; a missing schema is
	// reported, not created.
	if err := p.VerifyCharset(ctx); err != nil {
		log.Warn("Schema not provisioned yet", zap.Error(err))
	}
	return nil
}

func applyMigrations(dbCfg *config.DatabaseConfig, migrationsPath string, log *zap.Logger) error {
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}

	db, err := openDatabase(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := migration.New(db, dbCfg.Backend, absPath, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}

func openDatabase(dbCfg *config.DatabaseConfig) (*sql.DB, error) {
	driverName := "mysql"
	if dbCfg.IsSQLite() {
		driverName = "sqlite3"
	}
	db, err := sql.Open(driverName, dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func printUsage() {
	fmt.Println(`UPG Database Provisioning Tool

Usage:
  dbprovision [flags] [command] [arguments]

Commands:
  provision               Wait for the server, create the schema with the
                          configured charset/collation, apply migrations
                          (default command)
  check                   Validate configuration and connectivity without
                          making changes
  switch <sqlite|mysql>   Rewrite the database backend in the config file,
                          keeping a timestamped backup
  rollback <backup-file>  Restore a config backup produced by switch

Flags:
  -config string          Config file for switch/rollback (default: config.toml)
  -path string            Migrations directory (default: migrations)
  -wait-timeout duration  How long to wait for the server (default: 2m)
  -poll-interval duration Probe interval while waiting (default: 2s)
  -skip-migrate           Provision without applying migrations
  -log-level string       Log level: debug, info, warn, error (default: info)

Examples:
  # Bring up a fresh MySQL schema and apply all migrations
  dbprovision provision

  # Move a deployment onto the shared MySQL server
  dbprovision switch mysql

  # Undo a switch
  dbprovision rollback config.toml.20240101-120000.bak`)
}
