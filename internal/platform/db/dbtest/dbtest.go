// Package dbtest provisions a throwaway Postgres schema for repository tests.
// Tests are skipped unless EHR_TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
)

const EnvDatabaseURL = "EHR_TEST_DATABASE_URL"

// MigrationsDir returns the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

// Pool migrates a fresh schema and returns a pool pinned to it. The schema
// is dropped when the test finishes.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}
	ctx := context.Background()
	schema := "ehr_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")

	admin, err := db.NewPool(ctx, url, 2, 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := db.NewMigrator(admin, MigrationsDir()).Up(ctx, schema); err != nil {
		admin.Close()
		t.Fatalf("migrate %s: %v", schema, err)
	}

	pool, err := db.NewPool(ctx, url, 4, 0, db.WithSearchPath(schema))
	if err != nil {
		admin.Close()
		t.Fatalf("connect to %s: %v", schema, err)
	}
	t.Cleanup(func() {
		pool.Close()
		_, err := admin.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", pgx.Identifier{schema}.Sanitize()))
		if err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		admin.Close()
	})
	return pool
}
