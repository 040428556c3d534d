// Package config loads runtime configuration for the library CLIs.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory for the primary store
//	-q int      fallback store quota (KiB)
//	-s int      autosave interval (seconds)
//	-i int      integrity check interval (seconds)
//	-b int      backup max age (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "data_dir": "arc-crusade-data",
//	  "fallback_quota": 5242880,
//	  "autosave_interval": "30s",
//	  "integrity_interval": "2m",
//	  "backup_max_age": "10m",
//	  "verify_delay": "100ms"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
