// Package config loads runtime configuration for the DocVault client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables DOCVAULT_SERVER_URL, DOCVAULT_DB_PATH,
//     DOCVAULT_DOWNLOAD_DIR, DOCVAULT_LOG_FILE, DOCVAULT_REQUEST_TIMEOUT and
//     DOCVAULT_DEBUG, optionally read from a .env file in the working
//     directory.
//  3. Optional JSON or YAML file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the document API
//	-d string   path of the local SQLite database
//	-o string   download directory
//	-l string   log file
//	-t int      request timeout (seconds)
//	-v          debug logging
//
// # File schema
//
// The timeout uses timex.Duration, so it can be a string like "30s" or an
// integer number of nanoseconds:
//
//	{
//	  "server_url": "https://apis.allsoft.co/api/documentManagement",
//	  "database_path": "docvault.db",
//	  "download_dir": "downloads",
//	  "log_file": "docvault.log",
//	  "request_timeout": "30s",
//	  "debug": false
//	}
//
// Malformed input in any source panics at start-up.
package config
