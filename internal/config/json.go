package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/flagx"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DataDir           string         `json:"data_dir"`
	FallbackQuota     int64          `json:"fallback_quota"`
	AutosaveInterval  timex.Duration `json:"autosave_interval"`
	IntegrityInterval timex.Duration `json:"integrity_interval"`
	BackupMaxAge      timex.Duration `json:"backup_max_age"`
	VerifyDelay       timex.Duration `json:"verify_delay"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Zero values in the file leave the corresponding Config field alone, so a
// partial file only overrides what it names. Panics on read or unmarshal
// errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.FallbackQuota > 0 {
		cfg.FallbackQuota = jc.FallbackQuota
	}
	if jc.AutosaveInterval.Duration > 0 {
		cfg.AutosaveInterval = time.Duration(jc.AutosaveInterval.Duration)
	}
	if jc.IntegrityInterval.Duration > 0 {
		cfg.IntegrityInterval = time.Duration(jc.IntegrityInterval.Duration)
	}
	if jc.BackupMaxAge.Duration > 0 {
		cfg.BackupMaxAge = time.Duration(jc.BackupMaxAge.Duration)
	}
	if jc.VerifyDelay.Duration > 0 {
		cfg.VerifyDelay = time.Duration(jc.VerifyDelay.Duration)
	}
}
