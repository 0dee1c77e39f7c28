package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/config"
	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/registry"
	"github.com/vovakirdan/maenggu/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded session",
	Long: `Replay a file written by 'maenggu run --record' without a terminal UI
and print where the pet ended up.

The recording stores the seed, every tick's elapsed time, the window size
and the input events, so the replay reproduces the session exactly.

Examples:
  maenggu replay ~/.maenggu/last.replay`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "maenggu")
	if _, err := loadConfig(logger); err != nil {
		fatal("%v", err)
	}

	r, err := replay.Open(config.ExpandHome(args[0]))
	if err != nil {
		fatal("%v", err)
	}
	defer r.Close()

	h := r.Header
	var frames pet.FrameSource
	if pack, packErr := registry.Create(h.Pack); packErr == nil {
		frames = pack
	} else {
		logger.Warn("pack not available, using default frame timings", "pack", h.Pack)
	}

	sum, err := replay.Run(r, frames)
	if err != nil {
		r.Close()
		fatal("%v", err)
	}

	final := sum.Final
	fmt.Printf("Replay - seed %d, pack %s, %gx%g px\n", h.Seed, h.Pack, h.Width, h.Height)
	fmt.Println()
	fmt.Printf("  %-16s %d\n", "Ticks", sum.Ticks)
	fmt.Printf("  %-16s %d\n", "Snacks earned", sum.SnacksEarned)
	fmt.Printf("  %-16s %d\n", "Floating texts", sum.FloatingTexts)
	fmt.Printf("  %-16s %s (frame %d)\n", "Final state", final.Anim.State, final.Anim.FrameIndex)
	fmt.Printf("  %-16s (%.1f, %.1f) facing %s\n", "Final position", final.Movement.Position.X, final.Movement.Position.Y, final.Movement.Facing)
	fmt.Println()

	fmt.Println("Ticks per state:")
	for _, st := range pet.AnimStates {
		if n := sum.StateTicks[st]; n > 0 {
			fmt.Printf("  %-6s %d\n", st, n)
		}
	}
}
