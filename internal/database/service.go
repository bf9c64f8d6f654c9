package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/soldout/backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DatabaseService implements the Service interface
type DatabaseService struct {
	config          *config.DatabaseConfig
	environment     string
	logger          Logger
	db              *gorm.DB
	migrationConfig *MigrationConfig
}

// NewDatabaseService creates a new database service instance
func NewDatabaseService(cfg *config.DatabaseConfig, environment string, logger Logger) *DatabaseService {
	return &DatabaseService{
		config:      cfg,
		environment: environment,
		logger:      logger,
	}
}

// DSN builds the postgres connection string from configuration
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Dbname,
		cfg.Port,
		cfg.Sslmode,
		cfg.Timezone,
	)
}

// Connect establishes a connection to the database
func (s *DatabaseService) Connect() (*gorm.DB, error) {
	s.logger.LogInfo("Connecting to database", map[string]interface{}{
		"host":   s.config.Host,
		"dbname": s.config.Dbname,
		"port":   s.config.Port,
	})

	gormConfig := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         NewGormLogger(s.logger, s.config.SlowThreshold),
	}

	db, err := gorm.Open(postgres.Open(DSN(s.config)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(s.config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(s.config.Pool.MaxIdle)
	if s.config.Pool.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(s.config.Pool.MaxLifetime)
	}

	s.migrationConfig = NewMigrationConfig(db, s.environment)
	s.logger.LogInfo(fmt.Sprintf("Initialized migration config for environment: %s", s.migrationConfig.Environment), nil)

	s.db = db
	return db, nil
}

// Migrate runs schema auto-migration for models when the environment allows
// it. Each distinct model set is recorded once in schema_migrations.
func (s *DatabaseService) Migrate(models ...interface{}) error {
	if s.db == nil {
		return fmt.Errorf("database is not connected")
	}
	if !s.migrationConfig.ShouldRunMigration() {
		s.logger.LogInfo("Skipping auto-migration based on environment configuration", nil)
		return nil
	}

	if err := s.migrationConfig.ensureLedger(); err != nil {
		return fmt.Errorf("failed to initialize migration tracking: %v", err)
	}

	name, content := schemaSignature(models)
	applied, err := s.migrationConfig.applied(name)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %v", err)
	}
	if applied && !s.migrationConfig.ForceRun {
		s.logger.LogInfo("Schema already up to date", map[string]interface{}{"migration": name})
		return nil
	}

	if err := s.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %v", err)
	}
	if !applied {
		if err := s.migrationConfig.record(name, content); err != nil {
			return fmt.Errorf("failed to record migration: %v", err)
		}
	}

	s.logger.LogInfo("Auto-migration completed successfully", map[string]interface{}{"migration": name})
	return nil
}

// AppliedMigrations returns the schema_migrations ledger, oldest first
func (s *DatabaseService) AppliedMigrations() ([]MigrationRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database is not connected")
	}
	return s.migrationConfig.history()
}

// Ping checks the connection is alive
func (s *DatabaseService) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database is not connected")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *DatabaseService) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %v", err)
		}
	}
	return nil
}

// schemaSignature names a model set by the hash of its sorted type names.
func schemaSignature(models []interface{}) (string, string) {
	names := make([]string, 0, len(models))
	for _, m := range models {
		t := reflect.TypeOf(m)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		names = append(names, t.PkgPath()+"."+t.Name())
	}
	sort.Strings(names)
	content := strings.Join(names, "\n")
	sum := sha256.Sum256([]byte(content))
	return "automigrate_" + hex.EncodeToString(sum[:])[:12], content
}
