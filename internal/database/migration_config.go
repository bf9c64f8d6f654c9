package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
)

// MigrationConfig decides whether schema migration may run and keeps the
// schema_migrations ledger.
type MigrationConfig struct {
	Environment string
	AutoMigrate bool
	ForceRun    bool
	db          *gorm.DB
}

// NewMigrationConfig reads AUTO_MIGRATE and FORCE_MIGRATION on top of the
// environment defaults: auto-migrate everywhere except production.
func NewMigrationConfig(db *gorm.DB, environment string) *MigrationConfig {
	if environment == "" {
		environment = "development"
	}

	autoMigrate := environment != "production"
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		autoMigrate = v == "true"
	}

	return &MigrationConfig{
		Environment: environment,
		AutoMigrate: autoMigrate,
		ForceRun:    os.Getenv("FORCE_MIGRATION") == "true",
		db:          db,
	}
}

// ShouldRunMigration reports whether Migrate may touch the schema. Production
// only migrates when forced.
func (c *MigrationConfig) ShouldRunMigration() bool {
	switch {
	case c.ForceRun:
		return true
	case c.Environment == "production":
		return false
	default:
		return c.AutoMigrate
	}
}

func (c *MigrationConfig) ensureLedger() error {
	if c.db.Migrator().HasTable(&MigrationRecord{}) {
		return nil
	}
	if err := c.db.Migrator().CreateTable(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %v", err)
	}
	return nil
}

func (c *MigrationConfig) applied(name string) (bool, error) {
	var count int64
	err := c.db.Model(&MigrationRecord{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// record stores name with the hash of content under the next batch number
func (c *MigrationConfig) record(name, content string) error {
	sum := sha256.Sum256([]byte(content))

	var batch int
	if err := c.db.Model(&MigrationRecord{}).Select("COALESCE(MAX(batch_no), 0) + 1").Row().Scan(&batch); err != nil {
		return fmt.Errorf("failed to determine batch number: %v", err)
	}

	return c.db.Create(&MigrationRecord{
		Name:      name,
		Hash:      hex.EncodeToString(sum[:]),
		AppliedAt: time.Now(),
		BatchNo:   batch,
	}).Error
}

// history lists the ledger oldest first
func (c *MigrationConfig) history() ([]MigrationRecord, error) {
	if !c.db.Migrator().HasTable(&MigrationRecord{}) {
		return []MigrationRecord{}, nil
	}
	var records []MigrationRecord
	err := c.db.Order("applied_at, id").Find(&records).Error
	return records, err
}
