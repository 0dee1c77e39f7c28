// maenggu is a terminal desktop pet. It wanders around the terminal, eats
// the snacks you earn by clicking it and falls asleep when ignored.
//
// Usage:
//
//	maenggu run                 - Run the pet in this terminal
//	maenggu serve               - Start SSH server, one pet per session
//	maenggu packs               - List sprite packs
//	maenggu snacks              - Show the snack ledger and recent sessions
//	maenggu replay <file>       - Re-simulate a recording headlessly
//	maenggu validate <dir>      - Check a sprite pack directory
//	maenggu import <save.json>  - Import a legacy save file
//	maenggu export              - Print the ledger as save.json
//	maenggu config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config YAML (default: ~/.maenggu/config.yaml)
//	--db <path>         - Snack database (default from config)
//	--seed <value>      - RNG seed for reproducible behaviour
//	--mood <name>       - Temperament preset: calm, normal, playful, sleepy
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/config"
	"github.com/vovakirdan/maenggu/internal/registry"
	"github.com/vovakirdan/maenggu/internal/snack"
	"github.com/vovakirdan/maenggu/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagMood     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maenggu",
	Short: "maenggu - a pet that lives in your terminal",
	Long: `maenggu is a small cat that idles, wanders and naps in your terminal.
Click it to earn snacks, feed it with them, and summon it to your cursor.

Available commands:
  run       - Run the pet in this terminal
  serve     - Start SSH server for remote pets
  packs     - List sprite packs
  snacks    - Show the snack ledger
  replay    - Re-simulate a recording
  validate  - Check a sprite pack
  import    - Import a legacy save.json
  export    - Print the ledger as save.json
  config    - Print the effective configuration

Examples:
  maenggu run
  maenggu run --pack mycat --listen :7777
  maenggu serve --ssh :2222
  maenggu replay ~/.maenggu/last.replay`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to snack database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagMood, "mood", "", "Temperament preset: calm, normal, playful, sleepy")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(snacksCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration, applies the global flags and
// registers user sprite packs.
func loadConfig(logger *log.Logger) (config.PetConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	mood, err := config.ParseMood(flagMood)
	if err != nil {
		return cfg, err
	}
	config.ApplyMood(&cfg, mood)

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}

	if cfg.Sprite.PacksDir != "" {
		n, errs := registry.RegisterDir(config.ExpandHome(cfg.Sprite.PacksDir))
		for _, e := range errs {
			logger.Warn("skipping sprite pack", "error", e)
		}
		if n > 0 {
			logger.Debug("registered user packs", "count", n, "dir", cfg.Sprite.PacksDir)
		}
	}
	return cfg, nil
}

// openLedger opens the database and loads the snack ledger.
func openLedger(cfg config.PetConfig) (*storage.Store, *snack.Ledger, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := snack.NewLedger(store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, ledger, nil
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
