package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/maenggu/internal/config"
	"github.com/vovakirdan/maenggu/internal/platform/tui"
	"github.com/vovakirdan/maenggu/internal/registry"
	"github.com/vovakirdan/maenggu/internal/transport/ws"
)

var (
	flagPack     string
	flagListen   string
	flagRecord   string
	flagHeadless bool
	flagCols     int
	flagRows     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pet in this terminal",
	Long: `Start the pet in the current terminal.

Controls:
  Click the pet  - Earn a snack
  F              - Feed a snack
  S              - Summon the pet to the mouse
  ?              - Toggle help
  Q/Ctrl+C       - Quit

With --listen the pet also accepts websocket commands:
  {"type":"summon","x":100,"y":50}  {"type":"click","x":0,"y":0}
  {"type":"feed"}                   {"type":"state"}

Examples:
  maenggu run
  maenggu run --pack mycat
  maenggu run --listen :7777
  maenggu run --record ~/.maenggu/last.replay
  maenggu run --headless --listen :7777 --cols 160 --rows 45`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagPack, "pack", "", "Sprite pack (default from config)")
	runCmd.Flags().StringVar(&flagListen, "listen", "", "Websocket control address (host:port)")
	runCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to a replay file")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a terminal UI")
	runCmd.Flags().IntVar(&flagCols, "cols", 0, "Terminal columns (default: detected)")
	runCmd.Flags().IntVar(&flagRows, "rows", 0, "Terminal rows (default: detected)")
}

func runRun(_ *cobra.Command, _ []string) {
	logger, closeLog := runLogger()
	err := runPet(logger)
	closeLog()
	if err != nil {
		fatal("%v", err)
	}
}

// runPet runs the pet until it quits. Everything it opens is closed before
// it returns.
func runPet(logger *log.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagPack != "" {
		cfg.Sprite.Pack = flagPack
	}
	if !registry.Exists(cfg.Sprite.Pack) {
		return fmt.Errorf("unknown sprite pack %q (run 'maenggu packs' to see available packs)", cfg.Sprite.Pack)
	}
	pack, err := registry.Create(cfg.Sprite.Pack)
	if err != nil {
		return err
	}

	store, ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Terminal size, overridable for headless runs
	cols, rows := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}
	if flagCols > 0 {
		cols = flagCols
	}
	if flagRows > 0 {
		rows = flagRows
	}

	sess, err := tui.NewSession(tui.SessionOptions{
		Config:     cfg,
		Pack:       pack,
		Ledger:     ledger,
		Seed:       flagSeed,
		Cols:       cols,
		Rows:       rows,
		RecordPath: flagRecord,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("pet started", "pack", pack.Name(), "seed", sess.Seed(), "snacks", ledger.Snacks())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var httpSrv *http.Server
	if flagListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/", ws.NewServer(sess.Loop, ledger, logger).Handler())
		httpSrv = &http.Server{Addr: flagListen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("websocket control listening", "address", flagListen)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket server error", "error", err)
			}
		}()
	}

	var runErr error
	if flagHeadless {
		if flagListen == "" {
			logger.Warn("headless without --listen: the pet can only wander")
		}
		runErr = sess.Loop.Run(ctx, cfg.Runtime(sess.Seed()).TickInterval())
		if errors.Is(runErr, context.Canceled) {
			runErr = nil
		}
	} else {
		runErr = tui.Run(sess, cfg.Timing.TickRate)
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = httpSrv.Shutdown(shutdownCtx)
		cancel()
	}
	if err := sess.Close(); err != nil {
		logger.Warn("cannot finish session", "error", err)
	}

	user := os.Getenv("USER")
	tui.RecordSession(store, ledger, logger, "terminal", user, sess)
	logger.Info("pet stopped", "ticks", sess.Loop.Ticks(), "earned", sess.Effects.Earned(), "snacks", ledger.Snacks())
	return runErr
}

// runLogger logs to a file while the terminal UI owns the screen, and to
// stderr when headless.
func runLogger() (*log.Logger, func()) {
	if flagHeadless {
		return newLogger(os.Stderr, "maenggu"), func() {}
	}

	dir := config.Dir()
	if dir == "" || os.MkdirAll(dir, 0o755) != nil {
		return newLogger(io.Discard, "maenggu"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "maenggu.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "maenggu"), func() {}
	}
	return newLogger(f, "maenggu"), func() { f.Close() }
}
