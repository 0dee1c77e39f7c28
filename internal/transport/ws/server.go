// Package ws exposes a running pet over a websocket so other programs can
// summon, click and feed it.
package ws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/protocol"
	"github.com/vovakirdan/maenggu/internal/snack"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 120 * time.Second
	outQueue     = 16
)

// Controller is the part of host.Loop the server drives.
type Controller interface {
	Push(ev pet.Event)
	Feed() (bool, error)
	State() pet.State
}

// Ledger is the part of snack.Ledger the server reads.
type Ledger interface {
	Snacks() int
	Subscribe(fn snack.Listener) (cancel func())
}

// Server upgrades HTTP requests to pet control sessions.
type Server struct {
	ctrl   Controller
	ledger Ledger
	log    *log.Logger

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns int
}

// NewServer creates a server bound to one pet and the shared ledger.
func NewServer(ctrl Controller, ledger Ledger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		ctrl:   ctrl,
		ledger: ledger,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Connections returns the number of open sessions.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Handler returns the websocket endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()

		s.track(1)
		defer s.track(-1)
		s.log.Info("client connected", "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, outQueue)
		send := func(v any) {
			b, err := json.Marshal(v)
			if err != nil {
				s.log.Error("encode failed", "error", err)
				return
			}
			select {
			case out <- b:
			default:
				s.log.Warn("client queue full, dropping message", "remote", r.RemoteAddr)
			}
		}

		// The snapshot and every later update are queued under snackMu in
		// ledger order.
		var snackMu sync.Mutex
		snackMu.Lock()
		unsubscribe := s.ledger.Subscribe(func(n int) {
			snackMu.Lock()
			defer snackMu.Unlock()
			send(protocol.SnackUpdateMsg{Type: protocol.TypeSnackUpdate, Snacks: n})
		})
		defer unsubscribe()

		snacks := s.ledger.Snacks()
		send(protocol.HelloMsg{Type: protocol.TypeHello, Version: protocol.Version, Snacks: snacks})
		send(protocol.SnackUpdateMsg{Type: protocol.TypeSnackUpdate, Snacks: snacks})
		snackMu.Unlock()

		// Writer goroutine.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			s.handle(msg, send)
		}

		cancel()
		<-done
		s.log.Info("client disconnected", "remote", r.RemoteAddr)
	}
}

// handle applies one client command.
func (s *Server) handle(msg []byte, send func(any)) {
	cmd, err := protocol.DecodeCommand(msg)
	if err != nil {
		send(protocol.NewError(protocol.ErrBadRequest, err.Error()))
		return
	}

	switch cmd.Type {
	case protocol.CmdFeed:
		ok, err := s.ctrl.Feed()
		if err != nil {
			send(protocol.NewError(protocol.ErrInternal, "feed failed"))
			return
		}
		snacks := s.ledger.Snacks()
		send(protocol.FedMsg{Type: protocol.TypeFed, OK: ok, Snacks: snacks})
		if !ok {
			send(protocol.NewError(protocol.ErrNoSnacks, "no snacks left"))
		}
	case protocol.CmdState:
		send(protocol.NewStateMsg(s.ctrl.State()))
	default:
		if ev, ok := cmd.Event(); ok {
			s.ctrl.Push(ev)
		}
	}
}

func (s *Server) track(delta int) {
	s.mu.Lock()
	s.conns += delta
	s.mu.Unlock()
}
