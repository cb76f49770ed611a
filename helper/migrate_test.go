package helper

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/config"
	"courtbook/migrations"
)

func TestGetDBName(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "courtbook", getDBName(cfg, "courtbook"))

	cfg.DB.Postgres.Prefix = "test_"
	assert.Equal(t, "test_courtbook", getDBName(cfg, "courtbook"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Postgres, migrations.PostgresDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, entry := range entries {
		name := entry.Name()

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestSettingsSeedMatchesTableName(t *testing.T) {
	body, err := fs.ReadFile(migrations.Postgres, migrations.PostgresDir+"/000004_create_app_settings.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "INSERT INTO app_settings")
	assert.Contains(t, string(body), `"code": "WELCOME10"`)
}
