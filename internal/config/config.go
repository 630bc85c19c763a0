// Package config loads application settings from an optional yaml file
// with environment-variable overrides, following a .env file if one is
// present.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	// App settings
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	// Offline serves the embedded fixture dataset instead of Neo4j
	Offline bool `yaml:"offline"`

	// Neo4j connection
	Neo4j Neo4jConfig `yaml:"neo4j"`

	// Auth settings
	JWTSecret string `yaml:"jwt_secret"`
}

// Neo4jConfig holds the graph store connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:     3000,
		LogLevel: "info",
		Neo4j: Neo4jConfig{
			Database: "neo4j",
		},
	}
}

// Load reads configuration from the given file (optional) and the
// environment. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 3000)
	v.SetDefault("log_level", "info")
	v.SetDefault("offline", false)
	v.SetDefault("neo4j.database", "neo4j")

	// Environment bindings match the original deployment variables
	v.BindEnv("port", "APP_PORT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("offline", "NEOFLIX_OFFLINE")
	v.BindEnv("neo4j.uri", "NEO4J_URI")
	v.BindEnv("neo4j.username", "NEO4J_USERNAME")
	v.BindEnv("neo4j.password", "NEO4J_PASSWORD")
	v.BindEnv("neo4j.database", "NEO4J_DATABASE")
	v.BindEnv("jwt_secret", "JWT_SECRET")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	cfg.Port = v.GetInt("port")
	cfg.LogLevel = v.GetString("log_level")
	cfg.Offline = v.GetBool("offline")
	cfg.Neo4j.URI = v.GetString("neo4j.uri")
	cfg.Neo4j.Username = v.GetString("neo4j.username")
	cfg.Neo4j.Password = v.GetString("neo4j.password")
	cfg.Neo4j.Database = v.GetString("neo4j.database")
	cfg.JWTSecret = v.GetString("jwt_secret")

	return cfg, nil
}

// Validate checks that everything required for the selected mode is set.
// Offline mode needs no graph store credentials.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Offline {
		return nil
	}

	missing := []string{}
	if c.Neo4j.URI == "" {
		missing = append(missing, "NEO4J_URI")
	}
	if c.Neo4j.Username == "" {
		missing = append(missing, "NEO4J_USERNAME")
	}
	if c.Neo4j.Password == "" {
		missing = append(missing, "NEO4J_PASSWORD")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}
