package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.False(t, cfg.Offline)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "letmein")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "letmein", cfg.Neo4j.Password)
	assert.Equal(t, "secret", cfg.JWTSecret)
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresCredentialsWhenOnline(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_URI")
}

func TestValidateOfflineNeedsNoCredentials(t *testing.T) {
	cfg := Default()
	cfg.Offline = true
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Offline = true
	cfg.Port = -1
	assert.Error(t, cfg.Validate())
}
