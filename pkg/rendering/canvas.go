package rendering

// IconPosition places a widget's icon relative to its label.
type IconPosition int

const (
	IconLeft IconPosition = iota
	IconRight
	IconTop
	IconBottom
)

// String returns a human-readable representation of the icon position.
func (p IconPosition) String() string {
	switch p {
	case IconLeft:
		return "left"
	case IconRight:
		return "right"
	case IconTop:
		return "top"
	case IconBottom:
		return "bottom"
	}
	return "unknown"
}

// Renderer is the drawing backend the widget layer paints against. The
// engine never owns a backend; the host supplies one per frame.
//
// Drawing methods may fail (for example when the underlying context has
// been lost); such errors propagate unchanged to the caller of a widget's
// Paint method. PushClipRect/PopClipRect must nest correctly: every push
// is balanced by exactly one pop on all paint paths.
type Renderer interface {
	// FillRect fills the rectangle with a solid color.
	FillRect(rect Rect, color Color) error

	// DrawRectBorder strokes the rectangle's outline.
	DrawRectBorder(rect Rect, color Color, width float64) error

	// DrawText draws a single run of text with its top-left corner at (x, y).
	DrawText(text string, x, y float64, color Color, fontSize float64) error

	// MeasureText returns the extent the backend would give DrawText.
	MeasureText(text string, fontSize float64) Size

	// DrawImage draws the named image resource scaled into rect.
	DrawImage(name string, rect Rect) error

	// DrawIcon draws the named icon glyph tinted with color inside rect.
	DrawIcon(name string, rect Rect, color Color) error

	// PushClipRect restricts subsequent drawing to rect until the matching
	// PopClipRect.
	PushClipRect(rect Rect)

	// PopClipRect removes the most recently pushed clip region.
	PopClipRect()
}
