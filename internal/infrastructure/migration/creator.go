package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const upSQLSuffix = ".up.sql"
const downSQLSuffix = ".down.sql"

// MigrationFile describes a freshly created up/down migration pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down SQL pair into migrationsDir. The
// version prefix is the current time in YYYYMMDDHHMMSS form so files sort in
// creation order after the seeded schema migrations.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}

	base := filepath.Join(migrationsDir, mf.Version+"_"+sanitizeName(name))
	mf.UpPath = base + upSQLSuffix
	mf.DownPath = base + downSQLSuffix

	if err := os.WriteFile(mf.UpPath, []byte(mf.upStub()), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(mf.downStub()), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

func (mf *MigrationFile) upStub() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s\n", mf.Name)
	fmt.Fprintf(&b, "-- Created: %s\n", mf.Timestamp)
	fmt.Fprintf(&b, "-- Description: %s\n\n", mf.Description)
	b.WriteString("-- Write your UP migration SQL here\n\n")
	return b.String()
}

func (mf *MigrationFile) downStub() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s (Rollback)\n", mf.Name)
	fmt.Fprintf(&b, "-- Created: %s\n", mf.Timestamp)
	fmt.Fprintf(&b, "-- Description: Rollback for %s\n\n", mf.Description)
	b.WriteString("-- Write your DOWN migration SQL here\n\n")
	return b.String()
}

// sanitizeName lowercases a human-readable migration name and collapses
// whitespace, dashes and repeated underscores into single underscores.
// Anything else non-alphanumeric is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of every migration pair found in
// migrationsDir, sorted by version. A missing directory is treated as empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), upSQLSuffix); ok && base != "" {
			migrations = append(migrations, base)
		}
	}
	sort.Strings(migrations)

	return migrations, nil
}
