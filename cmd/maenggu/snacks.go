package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var flagSessions int

var snacksCmd = &cobra.Command{
	Use:   "snacks",
	Short: "Show the snack ledger",
	Long: `Display the snack balance, lifetime statistics and the most recent
sessions.

Examples:
  maenggu snacks
  maenggu snacks --sessions 20`,
	Args: cobra.NoArgs,
	Run:  runSnacks,
}

func init() {
	snacksCmd.Flags().IntVar(&flagSessions, "sessions", 10, "Number of recent sessions to show")
}

func runSnacks(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(newLogger(os.Stderr, "maenggu"))
	if err != nil {
		fatal("%v", err)
	}

	store, ledger, err := openLedger(cfg)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	stats := ledger.Stats()
	fmt.Printf("Snacks: %d\n", ledger.Snacks())
	fmt.Println()
	fmt.Printf("  %-16s %d\n", "Total clicks", stats.TotalClicks)
	fmt.Printf("  %-16s %d\n", "Total feedings", stats.TotalFeedings)
	fmt.Printf("  %-16s %d\n", "Peak snacks", stats.PeakSnacks)
	fmt.Printf("  %-16s %s\n", "Playtime", (time.Duration(stats.SessionPlaytimeMs) * time.Millisecond).Round(time.Second))
	fmt.Println()

	sessions, err := store.RecentSessions(flagSessions)
	if err != nil {
		store.Close()
		fatal("%v", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Println("Recent sessions:")
	fmt.Printf("  %-16s  %-8s  %-12s  %-10s  %6s  %8s\n", "Date", "Host", "User", "Duration", "Clicks", "Feedings")
	fmt.Printf("  %-16s  %-8s  %-12s  %-10s  %6s  %8s\n", "----", "----", "----", "--------", "------", "--------")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-8s  %-12s  %-10s  %6d  %8d\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Host, s.User,
			s.Duration.Round(time.Second), s.Clicks, s.Feedings)
	}
}
