package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL      = "DOCVAULT_SERVER_URL"
	EnvDatabasePath   = "DOCVAULT_DB_PATH"
	EnvDownloadDir    = "DOCVAULT_DOWNLOAD_DIR"
	EnvLogFile        = "DOCVAULT_LOG_FILE"
	EnvRequestTimeout = "DOCVAULT_REQUEST_TIMEOUT"
	EnvDebug          = "DOCVAULT_DEBUG"
)

// dotenvFiles are loaded, when present, before the environment is read.
// Variables already set in the environment win over the files.
var dotenvFiles = []string{".env"}

// parseEnv overlays Config with DOCVAULT_* environment variables.
// It panics on an unreadable .env file or a malformed value.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvDownloadDir); ok && v != "" {
		cfg.DownloadDir = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRequestTimeout, err))
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvDebug, err))
		}
		cfg.Debug = b
	}
}

// parseTimeout accepts a Go duration ("30s") or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative timeout %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %s", s)
	}
	return d, nil
}
