package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleModel struct{ ID int64 }
type otherModel struct{ ID int64 }

func TestMigrationConfigDefaults(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		autoEnv     string
		forceEnv    string
		wantRun     bool
	}{
		{name: "development defaults on", environment: "development", wantRun: true},
		{name: "empty environment is development", environment: "", wantRun: true},
		{name: "test defaults on", environment: "test", wantRun: true},
		{name: "production defaults off", environment: "production", wantRun: false},
		{name: "production ignores auto migrate", environment: "production", autoEnv: "true", wantRun: false},
		{name: "production forced", environment: "production", forceEnv: "true", wantRun: true},
		{name: "development disabled", environment: "development", autoEnv: "false", wantRun: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTO_MIGRATE", tt.autoEnv)
			t.Setenv("FORCE_MIGRATION", tt.forceEnv)

			cfg := NewMigrationConfig(nil, tt.environment)
			assert.Equal(t, tt.wantRun, cfg.ShouldRunMigration())
		})
	}
}

func TestSchemaSignature(t *testing.T) {
	name1, content1 := schemaSignature([]interface{}{&sampleModel{}, &otherModel{}})
	name2, _ := schemaSignature([]interface{}{&otherModel{}, sampleModel{}})
	name3, _ := schemaSignature([]interface{}{&sampleModel{}})

	assert.Equal(t, name1, name2, "order and pointer-ness must not matter")
	assert.NotEqual(t, name1, name3)
	assert.Contains(t, content1, "sampleModel")
	assert.Contains(t, name1, "automigrate_")
}
