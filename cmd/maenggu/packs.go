package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/registry"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List all available sprite packs",
	Long: `Shows the built-in sprite pack and every valid pack found in the
configured packs directory (one pack per subdirectory).`,
	Args: cobra.NoArgs,
	Run:  runPacks,
}

func runPacks(_ *cobra.Command, _ []string) {
	if _, err := loadConfig(newLogger(os.Stderr, "maenggu")); err != nil {
		fatal("%v", err)
	}

	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No sprite packs available.")
		return
	}

	fmt.Println("Available sprite packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")
	for _, p := range packs {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Source)
	}

	fmt.Println()
	fmt.Println("Run 'maenggu run --pack <id>' to use a pack.")
}
