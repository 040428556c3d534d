package config

import (
	"flag"
	"os"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory for the primary store
//	-q int      fallback store quota in KiB
//	-s int      autosave interval in seconds
//	-i int      integrity check interval in seconds
//	-b int      backup max age in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-q", "-s", "-i", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the primary store")
	quota := fs.Int64("q", cfg.FallbackQuota/1024, "fallback store quota (in KiB)")
	autosave := fs.Int("s", int(cfg.AutosaveInterval.Seconds()), "autosave interval (in seconds)")
	integrity := fs.Int("i", int(cfg.IntegrityInterval.Seconds()), "integrity check interval (in seconds)")
	backup := fs.Int("b", int(cfg.BackupMaxAge.Seconds()), "backup max age (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FallbackQuota = *quota * 1024
	cfg.AutosaveInterval = time.Duration(*autosave) * time.Second
	cfg.IntegrityInterval = time.Duration(*integrity) * time.Second
	cfg.BackupMaxAge = time.Duration(*backup) * time.Second
}
