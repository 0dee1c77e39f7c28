package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search path, --mood and --db are
applied. Save the output as ~/.maenggu/config.yaml to start customizing.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(newLogger(os.Stderr, "maenggu"))
	if err != nil {
		fatal("%v", err)
	}
	out, err := config.Marshal(cfg)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Print(string(out))
}
