package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/sprite"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a sprite pack directory",
	Long: `Load a sprite pack the same way 'run' does and report problems:
schema errors in sprite.json, missing required states, a bad fallback or
missing frame files.

Examples:
  maenggu validate ~/.maenggu/packs/mycat`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	pack, err := sprite.Load(args[0])
	if err != nil {
		fatal("%v", err)
	}

	w, h := pack.Size()
	fmt.Printf("%s (version %d): OK\n", pack.Name(), pack.Manifest.Version)
	fmt.Printf("  frame size %d cells x %d rows, fallback %q\n", w, h, pack.Manifest.Fallback)
	fmt.Println()
	for _, st := range pet.AnimStates {
		spec := pack.Frames(st)
		note := ""
		if _, ok := pack.Manifest.States[string(st)]; !ok {
			note = " (fallback)"
		}
		fmt.Printf("  %-6s %d frames, %gms, loop=%v%s\n", st, spec.FrameCount, spec.FrameDurationMs, spec.Loop, note)
	}
}
