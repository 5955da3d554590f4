// Package provision prepares a MariaDB/MySQL server for first use: it waits
// for the server to accept connections, creates the application schema with
// the required character set and collation, and verifies the result.
package provision

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/infrastructure/config"
)

// Provisioner creates and verifies the application database schema
type Provisioner struct {
	cfg    *config.DatabaseConfig
	logger *zap.Logger
}

// New creates a Provisioner for the given database configuration
func New(cfg *config.DatabaseConfig, logger *zap.Logger) *Provisioner {
	return &Provisioner{cfg: cfg, logger: logger}
}

// WaitForServer blocks until the database server accepts TCP connections or
// the context is cancelled. It polls at the given interval.
func (p *Provisioner) WaitForServer(ctx context.Context, interval time.Duration) error {
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	dialer := &net.Dialer{Timeout: interval}

	p.logger.Info("waiting for database server", zap.String("addr", addr))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			p.logger.Info("database server is reachable", zap.String("addr", addr))
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("database server at %s did not become reachable: %w", addr, ctx.Err())
		case <-ticker.C:
		}
	}
}

// EnsureDatabase creates the application schema if it does not exist, with
// the configured character set and collation. It connects without selecting
// a schema so it works on a freshly installed server.
func (p *Provisioner) EnsureDatabase(ctx context.Context) error {
	db, err := sql.Open("mysql", p.cfg.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to open server connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database server: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET %s COLLATE %s",
		p.cfg.DBName, p.cfg.Charset, p.cfg.Collation,
	)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create database %s: %w", p.cfg.DBName, err)
	}

	p.logger.Info("database ensured",
		zap.String("database", p.cfg.DBName),
		zap.String("charset", p.cfg.Charset),
		zap.String("collation", p.cfg.Collation),
	)
	return nil
}

// VerifyCharset checks that the schema's default character set and collation
// match the configuration. An existing schema created with different settings
// is reported as an error rather than silently altered.
func (p *Provisioner) VerifyCharset(ctx context.Context) error {
	db, err := sql.Open("mysql", p.cfg.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to open server connection: %w", err)
	}
	defer db.Close()

	var charset, collation string
	row := db.QueryRowContext(ctx,
		"SELECT DEFAULT_CHARACTER_SET_NAME, DEFAULT_COLLATION_NAME FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ?",
		p.cfg.DBName,
	)
	if err := row.Scan(&charset, &collation); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("database %s does not exist", p.cfg.DBName)
		}
		return fmt.Errorf("failed to read schema settings: %w", err)
	}

	if charset != p.cfg.Charset || collation != p.cfg.Collation {
		return fmt.Errorf("database %s has charset %s/%s, expected %s/%s",
			p.cfg.DBName, charset, collation, p.cfg.Charset, p.cfg.Collation)
	}

	p.logger.Info("database charset verified",
		zap.String("database", p.cfg.DBName),
		zap.String("charset", charset),
		zap.String("collation", collation),
	)
	return nil
}

// SQLiteFileExists reports whether the SQLite database file is already
// present. It deliberately stats instead of opening: the driver creates a
// missing database file on first open, which a read-only check must not do.
func SQLiteFileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat sqlite database %s: %w", path, err)
}

// Run performs the full provisioning sequence: wait, create, verify.
func (p *Provisioner) Run(ctx context.Context, pollInterval time.Duration) error {
	if p.cfg.IsSQLite() {
		// SQLite needs no server; the driver creates the file on first open.
		p.logger.Info("sqlite backend configured, skipping server provisioning",
			zap.String("path", p.cfg.SQLitePath))
		return nil
	}

	if err := p.WaitForServer(ctx, pollInterval); err != nil {
		return err
	}
	if err := p.EnsureDatabase(ctx); err != nil {
		return err
	}
	return p.VerifyCharset(ctx)
}
