package config

import "time"

const DefaultServerURL = "https://apis.allsoft.co/api/documentManagement"

// Config holds runtime settings for the DocVault client.
//
// Fields:
//   - ServerURL: base URL of the document-management API.
//   - DatabasePath: SQLite file that keeps the session between runs.
//   - DownloadDir: where downloaded documents are written.
//   - LogFile: rotated JSON log file; empty means warnings go to stderr.
//   - RequestTimeout: per-request HTTP timeout; zero means none.
//   - Debug: log at debug level.
type Config struct {
	ServerURL      string
	DatabasePath   string
	DownloadDir    string
	LogFile        string
	RequestTimeout time.Duration
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.DatabasePath = "docvault.db"
	c.DownloadDir = "downloads"
	c.LogFile = ""
	c.RequestTimeout = 0
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), the config file and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
