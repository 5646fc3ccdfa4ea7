// Package events defines the discriminated input event types the host
// delivers to the widget tree. The host drives one event at a time; widgets
// report whether they consumed it so the host can stop propagation.
package events

// PointerPhase identifies the kind of a pointer event.
type PointerPhase int

const (
	// PointerDown is a button press.
	PointerDown PointerPhase = iota
	// PointerUp is a button release.
	PointerUp
	// PointerMove is a position change with no button transition.
	PointerMove
	// PointerScroll is a wheel or trackpad scroll.
	PointerScroll
)

// String returns a human-readable representation of the pointer phase.
func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	case PointerScroll:
		return "scroll"
	}
	return "unknown"
}

// PointerButton identifies which button a press/release refers to.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// PointerEvent is a pointer press, release, move or scroll in screen space.
type PointerEvent struct {
	Phase  PointerPhase
	X      float64
	Y      float64
	Button PointerButton

	// ScrollX and ScrollY carry the wheel delta for PointerScroll events,
	// in notches (positive scrolls content down/right).
	ScrollX float64
	ScrollY float64
}

// Translated returns a copy of the event offset by (dx, dy). Containers use
// this to map events into scrolled content space before hit-testing.
func (e PointerEvent) Translated(dx, dy float64) PointerEvent {
	e.X += dx
	e.Y += dy
	return e
}

// KeyPhase identifies press versus release.
type KeyPhase int

const (
	KeyPhaseDown KeyPhase = iota
	KeyPhaseUp
)

// Key identifies a non-printable key. Printable input arrives through
// KeyEvent.Char instead.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeySpace
	KeyTab
	KeyEscape
)

// KeyEvent is a keyboard press or release with modifier state.
type KeyEvent struct {
	Phase KeyPhase
	Key   Key

	// Char is the printable character produced by the key, or zero for
	// non-printable keys.
	Char rune

	Shift bool
	Ctrl  bool
	Alt   bool
}
