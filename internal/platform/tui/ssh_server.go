package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/maenggu/internal/config"
	"github.com/vovakirdan/maenggu/internal/registry"
	"github.com/vovakirdan/maenggu/internal/snack"
	"github.com/vovakirdan/maenggu/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.maenggu/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one pet per SSH session. All pets share the snack ledger.
type SSHServer struct {
	config SSHServerConfig
	pet    config.PetConfig
	server *ssh.Server
	store  *storage.Store // optional; session history is skipped without it
	ledger *snack.Ledger
	logger *log.Logger
}

type sessionKey struct{}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, petCfg config.PetConfig, store *storage.Store, ledger *snack.Ledger, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "maenggu-ssh",
		})
	}
	if !registry.Exists(petCfg.Sprite.Pack) {
		return nil, fmt.Errorf("unknown sprite pack %q", petCfg.Sprite.Pack)
	}

	srv := &SSHServer{
		config: cfg,
		pet:    petCfg,
		store:  store,
		ledger: ledger,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.Dir(), "host_key")
	}
	hostKeyPath = config.ExpandHome(hostKeyPath)

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a pet for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	pack, err := registry.Create(s.pet.Sprite.Pack)
	if err != nil {
		s.logger.Error("cannot load sprite pack", "pack", s.pet.Sprite.Pack, "error", err)
		return nil, nil
	}

	sess, err := NewSession(SessionOptions{
		Config: s.pet,
		Pack:   pack,
		Ledger: s.ledger,
		Cols:   pty.Window.Width,
		Rows:   pty.Window.Height,
		Logger: s.logger.WithPrefix(sshSession.User()),
	})
	if err != nil {
		s.logger.Error("cannot start pet", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	sshSession.Context().SetValue(sessionKey{}, sess)

	return NewModel(sess, s.pet.Timing.TickRate), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// sessionMiddleware logs SSH sessions and records them once they end.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)

		if sess, ok := sshSession.Context().Value(sessionKey{}).(*Session); ok {
			s.finish(sshSession.User(), sess)
		}
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// finish stops a pet and records its session.
func (s *SSHServer) finish(user string, sess *Session) {
	if err := sess.Close(); err != nil {
		s.logger.Warn("cannot close session", "user", user, "error", err)
	}
	RecordSession(s.store, s.ledger, s.logger, "ssh", user, sess)
}

// RecordSession adds a finished session to the history and the playtime
// counter. Failures are logged; the session is over either way.
func RecordSession(store *storage.Store, ledger *snack.Ledger, logger *log.Logger, hostName, user string, sess *Session) {
	elapsed := sess.Elapsed()
	if ledger != nil {
		if err := ledger.AddPlaytime(elapsed); err != nil {
			logger.Warn("cannot record playtime", "error", err)
		}
	}
	if store == nil {
		return
	}
	_, err := store.SaveSession(storage.SessionEntry{
		Host:     hostName,
		User:     user,
		Duration: elapsed,
		Clicks:   sess.Effects.Earned(),
		Feedings: sess.Loop.Fed(),
	})
	if err != nil {
		logger.Warn("cannot record session", "error", err)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
