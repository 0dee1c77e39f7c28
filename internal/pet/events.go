package pet

import "github.com/vovakirdan/maenggu/internal/core"

// Event is a discrete host-to-core occurrence. The set is closed: only the
// types in this file implement it.
type Event interface {
	isEvent()
}

// Click is a primary-button press on the pet, at the pointer position.
type Click struct {
	Position core.Position
}

// FeedSuccess reports that the host already spent a snack to feed the pet.
type FeedSuccess struct{}

// FeedFail reports a feed attempt with no snacks left. It changes nothing.
type FeedFail struct{}

// Summon asks the pet to run to a point in movement-target coordinates.
type Summon struct {
	X, Y float64
}

func (Click) isEvent()       {}
func (FeedSuccess) isEvent() {}
func (FeedFail) isEvent()    {}
func (Summon) isEvent()      {}

// Action is a side effect the host must perform. The core never performs
// actions itself.
type Action interface {
	isAction()
}

// AddSnack asks the host to increment the snack ledger by one.
type AddSnack struct{}

// ShowFloatingText asks the host to show a transient text effect.
type ShowFloatingText struct {
	Text     string
	Position core.Position
}

func (AddSnack) isAction()         {}
func (ShowFloatingText) isAction() {}
