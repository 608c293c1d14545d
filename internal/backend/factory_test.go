package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "./data/test.db",
	})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, "./data/test.db", cfg.SQLiteDBPath)

	_, err = FromAppConfig(&config.Config{DataBackend: "mongodb"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: PostgresBackend}.Validate())
	assert.NoError(t, Config{Type: SQLiteBackend, SQLiteDBPath: ":memory:"}.Validate())
	assert.NoError(t, Config{Type: PostgresBackend, PostgresURL: "postgres://localhost/x"}.Validate())
}

func TestCreateSQLiteStore(t *testing.T) {
	factory := NewFactory(nil)

	store, err := factory.CreateStore(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: ":memory:",
	})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetUserByUsername(context.Background(), "nobody")
	assert.Error(t, err)
}
