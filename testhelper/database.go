package testhelper

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabaseEnv names the postgres DSN used by repository integration tests
const TestDatabaseEnv = "TEST_DATABASE_DSN"

// SetupTestDB opens the integration database and migrates models. The test
// is skipped in short mode or when no DSN is configured.
func SetupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// .env.test may live next to the package or at the module root
	for _, path := range []string{".env.test", "../.env.test", "../../.env.test"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}
	dsn := os.Getenv(TestDatabaseEnv)
	if dsn == "" {
		t.Skipf("Skipping integration test: %s is not set", TestDatabaseEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("Skipping integration test: database unavailable: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
