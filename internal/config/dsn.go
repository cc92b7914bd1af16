package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveDSN resolves the store connection string based on its source.
// Supported sources: "config" (the dsn value) and "env" (the variable named
// by dsn_env). A sqlite store with no dsn uses revisions.db in the config
// directory.
func ResolveDSN(sc StoreConfig) (string, error) {
	switch sc.DSNSource {
	case "env":
		return resolveFromEnv(sc.DSNEnv)
	case "config", "":
		if sc.DSN != "" {
			return sc.DSN, nil
		}
		if sc.Driver != "sqlite" && sc.Driver != "" {
			return "", fmt.Errorf("dsn_source is 'config' but no dsn value provided for %s", sc.Driver)
		}
		dir, err := Dir()
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create config directory: %w", err)
		}
		return filepath.Join(dir, "revisions.db"), nil
	default:
		return "", fmt.Errorf("unknown dsn_source: %q", sc.DSNSource)
	}
}

func resolveFromEnv(envVar string) (string, error) {
	if envVar == "" {
		return "", fmt.Errorf("no environment variable name specified")
	}
	val := os.Getenv(envVar)
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return val, nil
}
