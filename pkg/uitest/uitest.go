// Package uitest provides a recording renderer and event constructors for
// exercising widgets in tests without a real drawing backend.
package uitest

import (
	"fmt"

	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
)

// Op records one renderer call.
type Op struct {
	Kind  string
	Rect  rendering.Rect
	Color rendering.Color
	Text  string
	Name  string

	X        float64
	Y        float64
	Width    float64
	FontSize float64
}

// RecordingRenderer captures every draw call for later assertions. Text
// measurement runs through a fixed-width measurer so geometry in tests is
// predictable.
type RecordingRenderer struct {
	Ops []Op

	// Measurer backs MeasureText. Nil selects an 8px-per-character fixed
	// measurer.
	Measurer rendering.TextMeasurer

	// FailOn makes the named op kind return an error, for exercising
	// renderer-error propagation.
	FailOn string

	clipDepth    int
	maxClipDepth int
	popUnderflow bool
}

// NewRecordingRenderer creates an empty recorder.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

func (r *RecordingRenderer) record(op Op) error {
	r.Ops = append(r.Ops, op)
	if r.FailOn != "" && r.FailOn == op.Kind {
		return fmt.Errorf("uitest: forced failure on %s", op.Kind)
	}
	return nil
}

// Reset clears the recorded ops and clip bookkeeping.
func (r *RecordingRenderer) Reset() {
	r.Ops = r.Ops[:0]
	r.clipDepth = 0
	r.maxClipDepth = 0
	r.popUnderflow = false
}

// OpsOfKind returns the recorded ops with the given kind, in order.
func (r *RecordingRenderer) OpsOfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// ClipBalanced reports whether every clip push was matched by exactly one
// pop and no pop ran on an empty stack.
func (r *RecordingRenderer) ClipBalanced() bool {
	return r.clipDepth == 0 && !r.popUnderflow
}

// MaxClipDepth returns the deepest clip nesting observed.
func (r *RecordingRenderer) MaxClipDepth() int { return r.maxClipDepth }

func (r *RecordingRenderer) FillRect(rect rendering.Rect, color rendering.Color) error {
	return r.record(Op{Kind: "fillRect", Rect: rect, Color: color})
}

func (r *RecordingRenderer) DrawRectBorder(rect rendering.Rect, color rendering.Color, width float64) error {
	return r.record(Op{Kind: "drawRectBorder", Rect: rect, Color: color, Width: width})
}

func (r *RecordingRenderer) DrawText(text string, x, y float64, color rendering.Color, fontSize float64) error {
	return r.record(Op{Kind: "drawText", Text: text, X: x, Y: y, Color: color, FontSize: fontSize})
}

func (r *RecordingRenderer) MeasureText(text string, fontSize float64) rendering.Size {
	m := r.Measurer
	if m == nil {
		m = rendering.FixedMeasurer{}
	}
	return rendering.Size{Width: m.Advance(text, fontSize), Height: fontSize}
}

func (r *RecordingRenderer) DrawImage(name string, rect rendering.Rect) error {
	return r.record(Op{Kind: "drawImage", Name: name, Rect: rect})
}

func (r *RecordingRenderer) DrawIcon(name string, rect rendering.Rect, color rendering.Color) error {
	return r.record(Op{Kind: "drawIcon", Name: name, Rect: rect, Color: color})
}

func (r *RecordingRenderer) PushClipRect(rect rendering.Rect) {
	r.Ops = append(r.Ops, Op{Kind: "pushClipRect", Rect: rect})
	r.clipDepth++
	if r.clipDepth > r.maxClipDepth {
		r.maxClipDepth = r.clipDepth
	}
}

func (r *RecordingRenderer) PopClipRect() {
	r.Ops = append(r.Ops, Op{Kind: "popClipRect"})
	r.clipDepth--
	if r.clipDepth < 0 {
		r.popUnderflow = true
	}
}

// PointerMove builds a pointer move at (x, y).
func PointerMove(x, y float64) events.PointerEvent {
	return events.PointerEvent{Phase: events.PointerMove, X: x, Y: y}
}

// PointerDown builds a left-button press at (x, y).
func PointerDown(x, y float64) events.PointerEvent {
	return events.PointerEvent{Phase: events.PointerDown, X: x, Y: y, Button: events.ButtonLeft}
}

// PointerUp builds a left-button release at (x, y).
func PointerUp(x, y float64) events.PointerEvent {
	return events.PointerEvent{Phase: events.PointerUp, X: x, Y: y, Button: events.ButtonLeft}
}

// Scroll builds a wheel event at (x, y) with the given notch deltas.
func Scroll(x, y, dx, dy float64) events.PointerEvent {
	return events.PointerEvent{Phase: events.PointerScroll, X: x, Y: y, ScrollX: dx, ScrollY: dy}
}

// KeyPress builds a key-down event.
func KeyPress(key events.Key) events.KeyEvent {
	return events.KeyEvent{Phase: events.KeyPhaseDown, Key: key}
}

// KeyPressShift builds a shift-modified key-down event.
func KeyPressShift(key events.Key) events.KeyEvent {
	return events.KeyEvent{Phase: events.KeyPhaseDown, Key: key, Shift: true}
}

// CharPress builds a key-down event carrying a printable character.
func CharPress(ch rune) events.KeyEvent {
	return events.KeyEvent{Phase: events.KeyPhaseDown, Char: ch}
}
