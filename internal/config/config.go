package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Token is the Discord bot credential. Required; mains exit
	// non-zero without it.
	Token string
	// AdminUserID is the DM destination for verified submissions.
	AdminUserID string

	PanelPort   string
	ArchivePath string

	SweepInterval time.Duration
}

// Load reads all configuration from environment variables.
// Token absence is checked by the caller so it can fail fast.
func Load() *Config {
	return &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		AdminUserID:   getEnv("ADMIN_USER_ID", "1308399783936921632"),
		PanelPort:     getEnv("PANEL_PORT", "3000"),
		ArchivePath:   getEnv("ARCHIVE_PATH", "scriptsubmit_data.db"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Minute
		}
	}
	return fallback
}
