package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// SwitchBackend rewrites the config file so the database section points at
// the given backend. The previous file is kept as a timestamped backup; if
// the rewritten config fails to load and validate, the backup is restored
// and the error returned.
//
// Deployments move between a local SQLite file and a shared MariaDB/MySQL
// server; the switch only touches database.backend so credentials for both
// backends can stay in the file.
func SwitchBackend(path, backend string) (string, error) {
	if backend != BackendSQLite && backend != BackendMySQL {
		return "", fmt.Errorf("unknown backend %q (want %q or %q)", backend, BackendSQLite, BackendMySQL)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config %s: %w", path, err)
	}

	backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, original, 0o600); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backupPath, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return backupPath, fmt.Errorf("parse config %s: %w", path, err)
	}
	v.Set("database.backend", backend)
	if err := v.WriteConfigAs(path); err != nil {
		return backupPath, fmt.Errorf("rewrite config %s: %w", path, err)
	}

	if err := verifyConfigFile(path); err != nil {
		if restoreErr := os.WriteFile(path, original, 0o600); restoreErr != nil {
			return backupPath, fmt.Errorf("config invalid after switch (%v) and rollback failed: %w", err, restoreErr)
		}
		return backupPath, fmt.Errorf("switch rolled back, rewritten config invalid: %w", err)
	}

	return backupPath, nil
}

// Restore copies a backup produced by SwitchBackend back over the config
// file.
func Restore(path, backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup %s: %w", backupPath, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("restore config %s: %w", path, err)
	}
	return nil
}

// verifyConfigFile loads a specific file through the same defaulting and
// validation as Load.
func verifyConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Backend:      v.GetString("database.backend"),
			SQLitePath:   v.GetString("database.sqlite_path"),
			Host:         v.GetString("database.host"),
			Port:         v.GetInt("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			DBName:       v.GetString("database.dbname"),
			Charset:      v.GetString("database.charset"),
			Collation:    v.GetString("database.collation"),
			SQLMode:      v.GetString("database.sql_mode"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
	}
	applyDefaults(cfg)
	return cfg.validate()
}
