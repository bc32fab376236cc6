package testutil

import (
	"fmt"
	"testing"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"stockroom/internal/config"
	"stockroom/internal/repository"
)

// SetupTestDB connects to the test database and brings it up to the
// current migration. Paths are relative to the calling package.
func SetupTestDB(envRelPath, migrationsRelPath string) (*repository.Database, error) {
	_ = godotenv.Load(envRelPath)
	cfg := config.Load()

	db, err := repository.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to test db: %w", err)
	}

	if err = goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}

	if err = goose.Up(db.DB().DB, migrationsRelPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return db, nil
}

func RequireDB(t *testing.T, db *repository.Database) {
	t.Helper()
	if db == nil {
		t.Skip("Test database not initialized")
	}
}
