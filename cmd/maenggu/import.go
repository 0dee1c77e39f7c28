package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/storage"
)

var flagForce bool

var importCmd = &cobra.Command{
	Use:   "import <save.json>",
	Short: "Import a legacy save file",
	Long: `Replace the snack ledger with the contents of a version 1 save.json:

  {"version":1,"snacks":3,"stats":{"totalClicks":10,"totalFeedings":7,
   "peakSnacks":5,"sessionPlaytime":120000}}

The import refuses to overwrite a non-empty ledger unless --force is given.`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the snack ledger as save.json",
	Args:  cobra.NoArgs,
	Run:   runExport,
}

func init() {
	importCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite a non-empty ledger")
}

func runImport(_ *cobra.Command, args []string) {
	cfg, err := loadConfig(newLogger(os.Stderr, "maenggu"))
	if err != nil {
		fatal("%v", err)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		fatal("%v", err)
	}
	data, err := storage.ParseSaveJSON(raw)
	if err != nil {
		fatal("%v", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	current, err := store.Load()
	if err != nil {
		store.Close()
		fatal("%v", err)
	}
	if !flagForce && (current.Snacks > 0 || current.Stats.TotalClicks > 0) {
		store.Close()
		fatal("ledger already has %d snacks and %d clicks; use --force to overwrite", current.Snacks, current.Stats.TotalClicks)
	}

	if err := store.ImportSave(data); err != nil {
		store.Close()
		fatal("%v", err)
	}
	fmt.Printf("Imported %d snacks (%d clicks, %d feedings).\n", data.Snacks, data.Stats.TotalClicks, data.Stats.TotalFeedings)
}

func runExport(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(newLogger(os.Stderr, "maenggu"))
	if err != nil {
		fatal("%v", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	data, err := store.Load()
	if err != nil {
		store.Close()
		fatal("%v", err)
	}
	out, err := storage.MarshalSaveJSON(data)
	if err != nil {
		store.Close()
		fatal("%v", err)
	}
	fmt.Println(string(out))
}
