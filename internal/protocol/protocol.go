// Package protocol defines the JSON forms shared by the control endpoint and
// replay recordings: simulation events, client commands and outbound
// notifications.
package protocol

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
)

const Version = "1"

// Event types, as recorded in replays.
const (
	EventClick       = "click"
	EventFeedSuccess = "feed-success"
	EventFeedFail    = "feed-fail"
	EventSummon      = "summon"
)

// EventJSON is the wire form of a pet.Event.
type EventJSON struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// EncodeEvent converts ev to its wire form.
func EncodeEvent(ev pet.Event) EventJSON {
	switch e := ev.(type) {
	case pet.Click:
		return EventJSON{Type: EventClick, X: e.Position.X, Y: e.Position.Y}
	case pet.FeedSuccess:
		return EventJSON{Type: EventFeedSuccess}
	case pet.FeedFail:
		return EventJSON{Type: EventFeedFail}
	case pet.Summon:
		return EventJSON{Type: EventSummon, X: e.X, Y: e.Y}
	default:
		panic(fmt.Sprintf("protocol: unhandled event %T", ev))
	}
}

// DecodeEvent converts a wire event back to a pet.Event.
func DecodeEvent(e EventJSON) (pet.Event, error) {
	switch e.Type {
	case EventClick:
		if !finite(e.X, e.Y) {
			return nil, fmt.Errorf("protocol: click position is not finite")
		}
		return pet.Click{Position: core.Position{X: e.X, Y: e.Y}}, nil
	case EventFeedSuccess:
		return pet.FeedSuccess{}, nil
	case EventFeedFail:
		return pet.FeedFail{}, nil
	case EventSummon:
		if !finite(e.X, e.Y) {
			return nil, fmt.Errorf("protocol: summon target is not finite")
		}
		return pet.Summon{X: e.X, Y: e.Y}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown event type %q", e.Type)
	}
}

// EncodeEvents converts a batch, preserving order.
func EncodeEvents(events []pet.Event) []EventJSON {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventJSON, len(events))
	for i, ev := range events {
		out[i] = EncodeEvent(ev)
	}
	return out
}

// DecodeEvents converts a batch, failing on the first bad event.
func DecodeEvents(in []EventJSON) ([]pet.Event, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]pet.Event, len(in))
	for i, e := range in {
		ev, err := DecodeEvent(e)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out[i] = ev
	}
	return out, nil
}

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

// DecodeBase reads only the type field.
func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
