package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory or a parent, so
// local development mirrors the deployed environment. A missing .env is
// not an error; the environment may already be populated.
func LoadEnv() error {
	path, ok := findEnvFile()
	if !ok {
		return nil
	}
	return godotenv.Load(path)
}

// findEnvFile searches for a .env file in the current and parent
// directories, up to five levels.
func findEnvFile() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	searchPath := cwd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(searchPath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}

		parent := filepath.Dir(searchPath)
		if parent == searchPath {
			break
		}
		searchPath = parent
	}
	return "", false
}
