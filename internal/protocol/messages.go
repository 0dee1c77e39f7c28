package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
)

// Command types (client -> pet).
const (
	CmdSummon = "summon"
	CmdFeed   = "feed"
	CmdClick  = "click"
	CmdState  = "state"
)

// Notification types (pet -> client).
const (
	TypeHello       = "hello"
	TypeSnackUpdate = "snack_update"
	TypeState       = "state"
	TypeFed         = "fed"
	TypeError       = "error"
)

// Error codes.
const (
	ErrBadRequest = "E_BAD_REQUEST"
	ErrNoSnacks   = "E_NO_SNACKS"
	ErrInternal   = "E_INTERNAL"
)

// Command is a decoded client request.
type Command struct {
	Type string   `json:"type"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
}

// DecodeCommand parses and validates a client command.
func DecodeCommand(b []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(b, &c); err != nil {
		return Command{}, fmt.Errorf("protocol: bad command: %w", err)
	}

	switch c.Type {
	case CmdSummon, CmdClick:
		if c.X == nil || c.Y == nil {
			return Command{}, fmt.Errorf("protocol: %s needs x and y", c.Type)
		}
		if !finite(*c.X, *c.Y) {
			return Command{}, fmt.Errorf("protocol: %s coordinates are not finite", c.Type)
		}
	case CmdFeed, CmdState:
	case "":
		return Command{}, fmt.Errorf("protocol: missing command type")
	default:
		return Command{}, fmt.Errorf("protocol: unknown command %q", c.Type)
	}
	return c, nil
}

// Event converts summon and click commands to simulation events.
func (c Command) Event() (pet.Event, bool) {
	switch c.Type {
	case CmdSummon:
		return pet.Summon{X: *c.X, Y: *c.Y}, true
	case CmdClick:
		return pet.Click{Position: core.Position{X: *c.X, Y: *c.Y}}, true
	default:
		return nil, false
	}
}

// HelloMsg greets a new client.
type HelloMsg struct {
	Type    string `json:"type"`
	Version string `json:"protocol_version"`
	Snacks  int    `json:"snacks"`
}

// SnackUpdateMsg carries the ledger balance after a change.
type SnackUpdateMsg struct {
	Type   string `json:"type"`
	Snacks int    `json:"snacks"`
}

// FedMsg answers a feed command.
type FedMsg struct {
	Type   string `json:"type"`
	OK     bool   `json:"ok"`
	Snacks int    `json:"snacks"`
}

// StateMsg is a snapshot of the pet.
type StateMsg struct {
	Type   string  `json:"type"`
	Anim   string  `json:"anim"`
	Frame  int     `json:"frame"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing string  `json:"facing"`
	Target *Point  `json:"target,omitempty"`
}

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ErrorMsg reports a rejected command.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewStateMsg snapshots s.
func NewStateMsg(s pet.State) StateMsg {
	msg := StateMsg{
		Type:   TypeState,
		Anim:   string(s.Anim.State),
		Frame:  s.Anim.FrameIndex,
		X:      s.Movement.Position.X,
		Y:      s.Movement.Position.Y,
		Facing: string(s.Movement.Facing),
	}
	if t := s.Movement.Target; t != nil {
		msg.Target = &Point{X: t.Position.X, Y: t.Position.Y}
	}
	return msg
}

// NewError builds an error notification.
func NewError(code, message string) ErrorMsg {
	return ErrorMsg{Type: TypeError, Code: code, Message: message}
}
