// Package widgets implements the interactive widget set: a pressable button,
// an editable text field and a scrollable layout container. Widgets are
// retained between frames; the host delivers input events, advances time with
// Update, and paints against a Renderer once per frame.
//
// All widgets are single-threaded. The host drives one event at a time and
// one update at a time; nothing here is safe for concurrent use.
package widgets

import (
	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
)

// Kind tags the concrete type behind a Widget.
type Kind int

const (
	KindButton Kind = iota
	KindTextInput
	KindPanel
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindTextInput:
		return "text_input"
	case KindPanel:
		return "panel"
	}
	return "unknown"
}

// Widget is the uniform surface the host and containers program against.
// Event handlers return whether the event was consumed so the caller can
// stop propagation.
type Widget interface {
	Kind() Kind
	Bounds() rendering.Rect
	SetBounds(bounds rendering.Rect)
	IsDirty() bool
	MarkDirty()
	ClearDirty()
	Focused() bool
	SetFocused(focused bool)

	HandlePointerEvent(ev events.PointerEvent) bool
	HandleKeyEvent(ev events.KeyEvent) bool

	// Update advances time-driven state by dt seconds.
	Update(dt float64)

	// Paint draws the widget into its current bounds. Renderer errors
	// propagate unchanged.
	Paint(r rendering.Renderer, style *theme.Style) error
}

// Base carries the identity and per-frame bookkeeping every concrete widget
// embeds: a kind tag, current bounds, a repaint flag and a focus flag. The
// base is exclusively owned by its embedding widget.
type Base struct {
	kind    Kind
	bounds  rendering.Rect
	dirty   bool
	focused bool
}

func newBase(kind Kind) Base {
	return Base{kind: kind, dirty: true}
}

// Kind returns the concrete widget kind.
func (b *Base) Kind() Kind { return b.kind }

// Bounds returns the widget's current screen-space rectangle.
func (b *Base) Bounds() rendering.Rect { return b.bounds }

// SetBounds replaces the widget's rectangle and marks it dirty.
func (b *Base) SetBounds(bounds rendering.Rect) {
	if b.bounds == bounds {
		return
	}
	b.bounds = bounds
	b.dirty = true
}

// IsDirty reports whether the widget needs repainting.
func (b *Base) IsDirty() bool { return b.dirty }

// MarkDirty flags the widget for repaint. The host clears the flag after
// acting on it.
func (b *Base) MarkDirty() { b.dirty = true }

// ClearDirty resets the repaint flag.
func (b *Base) ClearDirty() { b.dirty = false }

// Focused reports whether the widget holds keyboard focus.
func (b *Base) Focused() bool { return b.focused }

// SetFocused grants or revokes keyboard focus. Keeping at most one focused
// widget per tree is the host's responsibility.
func (b *Base) SetFocused(focused bool) {
	if b.focused == focused {
		return
	}
	b.focused = focused
	b.dirty = true
}
