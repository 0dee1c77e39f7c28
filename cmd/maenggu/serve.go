package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maenggu/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maenggu SSH server",
	Long: `Start an SSH server where every connection gets its own pet.

Pets are independent, but all of them share the server's snack ledger:
snacks earned in one session can be fed in another.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maenggu/host_key

Examples:
  maenggu serve                           # Listen on :23234 with auto-generated key
  maenggu serve --ssh :2222               # Listen on port 2222
  maenggu serve --host-key ./my_host_key  # Use specific host key
  maenggu serve --db ./shared.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "maenggu-ssh")

	cfg, err := loadConfig(logger)
	if err != nil {
		fatal("%v", err)
	}

	store, ledger, err := openLedger(cfg)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(sshCfg, cfg, store, ledger, logger)
	if err != nil {
		store.Close()
		fatal("creating server: %v", err)
	}

	logger.Info("connect with ssh", "address", server.Addr(), "snacks", ledger.Snacks())
	if err := server.ListenAndServe(); err != nil {
		store.Close()
		fatal("server: %v", err)
	}
}
