package storage

import (
	"os"
	"testing"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// TestSQLiteConnection tests connecting to a SQLite database
func TestSQLiteConnection(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	tempDir, err := os.MkdirTemp("", "quoteserver-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config := Config{
		Driver:  DriverSQLite,
		DataDir: tempDir,
	}

	db, err := Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping SQLite database: %v", err)
	}
}

// TestMySQLConnection tests connecting to a MySQL database
func TestMySQLConnection(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("Skipping MySQL test. Set MYSQL_DSN environment variable")
	}

	db, err := Connect(Config{Driver: DriverMySQL, DSN: dsn})
	if err != nil {
		t.Fatalf("Failed to connect to MySQL database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping MySQL database: %v", err)
	}
}

// TestPostgresConnection tests connecting to a PostgreSQL database
func TestPostgresConnection(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping PostgreSQL test. Set POSTGRES_DSN environment variable")
	}

	db, err := Connect(Config{Driver: DriverPostgres, DSN: dsn})
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping PostgreSQL database: %v", err)
	}
}

// TestGormBackendSemantics tests that the GORM backend enforces the same
// invariants as the in-memory backend: FK check on quote creation, rating
// clamping, duplicate names and the cascade soft delete.
func TestGormBackendSemantics(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	tempDir, err := os.MkdirTemp("", "quoteserver-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	s, err := NewStorage(Config{Driver: DriverSQLite, DataDir: tempDir})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	b := s.Backends()

	if _, err := b.Quotes.Create(1, "orphan", nil); err == nil {
		t.Fatal("expected NotFoundError for a missing author")
	}

	a, err := b.Authors.Create("Mark Twain", "")
	if err != nil {
		t.Fatalf("Create author failed: %v", err)
	}
	if _, err = b.Authors.Create("Mark Twain", ""); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}

	ten := 10
	q, err := b.Quotes.Create(a.ID, "clamped on the way in", &ten)
	if err != nil {
		t.Fatalf("Create quote failed: %v", err)
	}
	if q.Rating != 5 {
		t.Errorf("expected clamped rating 5, got %d", q.Rating)
	}

	if err = b.Authors.Delete(a.ID); err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}
	got, err := b.Quotes.Get(q.ID, true)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != model.StatusDeleted {
		t.Errorf("expected cascaded quote status deleted, got %s", got.Status)
	}
	if _, err = b.Quotes.Get(q.ID, false); err == nil {
		t.Fatal("expected the cascaded quote to be hidden")
	}
}
