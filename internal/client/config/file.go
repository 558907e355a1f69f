package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docvault/internal/flagx"
	"github.com/dmitrijs2005/docvault/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding the config file. Absent
// keys leave the corresponding Config field untouched. The timeout relies on
// timex.Duration, so it may be a string like "30s" or integer nanoseconds.
type FileConfig struct {
	ServerURL      string          `json:"server_url" yaml:"server_url"`
	DatabasePath   string          `json:"database_path" yaml:"database_path"`
	DownloadDir    string          `json:"download_dir" yaml:"download_dir"`
	LogFile        *string         `json:"log_file" yaml:"log_file"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	Debug          *bool           `json:"debug" yaml:"debug"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are decoded as YAML, anything else
// as JSON. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.DownloadDir != "" {
		cfg.DownloadDir = fc.DownloadDir
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
}
