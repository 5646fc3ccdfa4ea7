package widgets

import (
	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
)

// caretBlinkPeriod is how long the caret stays in each visibility phase.
const caretBlinkPeriod = 0.5

const caretWidth = 1.0

// TextInputProps configures a text input.
type TextInputProps struct {
	Placeholder string

	// MaxLength bounds the buffer size in bytes. Zero means unbounded.
	// Inserts that would exceed it are dropped without error.
	MaxLength int

	ReadOnly  bool
	Multiline bool

	// Password masks the painted text; the buffer itself is untouched.
	Password bool

	Validation ValidationType
	Validator  Validator

	Format    FormatType
	Formatter Formatter
}

// TextInput is an editable text field with cursor, selection, validation
// and formatting. The buffer is byte-addressed: cursor and selection are
// byte offsets, always within [0, len(buffer)].
type TextInput struct {
	Base
	props TextInputProps

	buffer []byte
	cursor int

	// selStart/selEnd are kept normalized (start <= end). anchor is the
	// fixed end of a shift- or drag-extended selection and is distinct
	// from the cursor.
	selStart int
	selEnd   int
	anchor   int

	selecting bool

	// scrollX shifts the painted text left so the caret stays inside the
	// visible width when the text overflows.
	scrollX float64

	blinkTimer   float64
	caretVisible bool

	// Validation is skipped when the buffer matches the last validated
	// snapshot byte for byte.
	lastValidated string
	lastResult    ValidationResult
	validated     bool

	measurer  rendering.TextMeasurer
	lastStyle *theme.Style

	changeListeners []func(text string)
	submitListeners []func(text string)
}

// NewTextInput creates a text input from props. The measurer maps text to
// pixel offsets for caret placement and click-to-position; nil selects the
// bundled font face.
func NewTextInput(props TextInputProps, measurer rendering.TextMeasurer) *TextInput {
	if measurer == nil {
		measurer = rendering.DefaultFaceMeasurer()
	}
	return &TextInput{
		Base:         newBase(KindTextInput),
		props:        props,
		measurer:     measurer,
		caretVisible: true,
	}
}

// SetProps replaces the input's configuration and re-runs the change
// pipeline so formatting and validation reflect the new rules.
func (t *TextInput) SetProps(props TextInputProps) {
	t.props = props
	t.validated = false
	t.afterMutation()
}

// Props returns the current configuration.
func (t *TextInput) Props() TextInputProps { return t.props }

// Text returns the buffer contents.
func (t *TextInput) Text() string { return string(t.buffer) }

// CursorPosition returns the byte offset of the caret.
func (t *TextInput) CursorPosition() int { return t.cursor }

// Selection returns the normalized selection range. An empty selection has
// start == end == cursor.
func (t *TextInput) Selection() (start, end int) { return t.selStart, t.selEnd }

// HasSelection reports whether a non-empty selection exists.
func (t *TextInput) HasSelection() bool { return t.selStart != t.selEnd }

// IsValid reports the cached validation outcome for the current text.
func (t *TextInput) IsValid() bool {
	return t.Validate().Valid
}

// Validate returns the validation result for the current text, reusing the
// cached outcome when the text has not changed since the last run.
func (t *TextInput) Validate() ValidationResult {
	text := string(t.buffer)
	if !t.validated || text != t.lastValidated {
		t.lastResult = validateText(t.props.Validation, t.props.Validator, text)
		t.lastValidated = text
		t.validated = true
	}
	return t.lastResult
}

// OnChange registers a listener invoked with the text after every mutation.
func (t *TextInput) OnChange(fn func(text string)) {
	t.changeListeners = append(t.changeListeners, fn)
}

// OnSubmit registers a listener invoked with the text when enter is pressed
// on a single-line input.
func (t *TextInput) OnSubmit(fn func(text string)) {
	t.submitListeners = append(t.submitListeners, fn)
}

// SetText replaces the buffer wholesale, puts the cursor at the end and
// collapses the selection. No-op when read-only.
func (t *TextInput) SetText(s string) {
	if t.props.ReadOnly {
		return
	}
	t.buffer = []byte(s)
	t.cursor = len(t.buffer)
	t.collapseSelection()
	t.afterMutation()
}

// InsertText splices s at the cursor, replacing any active selection. The
// insert is dropped without error when it would push the buffer past
// MaxLength; the buffer is untouched in that case.
func (t *TextInput) InsertText(s string) {
	if t.props.ReadOnly || s == "" {
		return
	}
	selLen := t.selEnd - t.selStart
	if t.props.MaxLength > 0 && len(t.buffer)-selLen+len(s) > t.props.MaxLength {
		return
	}
	if selLen > 0 {
		t.removeRange(t.selStart, t.selEnd)
	}
	t.buffer = append(t.buffer[:t.cursor], append([]byte(s), t.buffer[t.cursor:]...)...)
	t.cursor += len(s)
	t.collapseSelection()
	t.afterMutation()
}

// DeleteSelection removes the selected range. No-op when the selection is
// empty or the input is read-only.
func (t *TextInput) DeleteSelection() {
	if t.props.ReadOnly || t.selStart == t.selEnd {
		return
	}
	t.removeRange(t.selStart, t.selEnd)
	t.collapseSelection()
	t.afterMutation()
}

// Backspace removes the selection, or the byte before the cursor.
func (t *TextInput) Backspace() {
	if t.props.ReadOnly {
		return
	}
	if t.selStart != t.selEnd {
		t.DeleteSelection()
		return
	}
	if t.cursor == 0 {
		return
	}
	t.removeRange(t.cursor-1, t.cursor)
	t.collapseSelection()
	t.afterMutation()
}

// Delete removes the selection, or the byte at the cursor.
func (t *TextInput) Delete() {
	if t.props.ReadOnly {
		return
	}
	if t.selStart != t.selEnd {
		t.DeleteSelection()
		return
	}
	if t.cursor >= len(t.buffer) {
		return
	}
	t.removeRange(t.cursor, t.cursor+1)
	t.collapseSelection()
	t.afterMutation()
}

// removeRange deletes buffer[start:end) and moves the cursor to start.
// Callers fix up the selection and run the change pipeline.
func (t *TextInput) removeRange(start, end int) {
	t.buffer = append(t.buffer[:start], t.buffer[end:]...)
	t.cursor = start
}

// MoveCursor places the caret at pos, clamped to the buffer. With extend
// the selection grows from its anchor; without it the selection collapses.
func (t *TextInput) MoveCursor(pos int, extend bool) {
	pos = clampOffset(pos, len(t.buffer))
	if extend {
		if t.selStart == t.selEnd {
			t.anchor = t.cursor
		}
		t.cursor = pos
		t.selStart, t.selEnd = minMax(t.anchor, t.cursor)
	} else {
		t.cursor = pos
		t.collapseSelection()
	}
	t.resetBlink()
	t.MarkDirty()
}

// SelectAll selects the whole buffer and puts the caret at the end.
func (t *TextInput) SelectAll() {
	t.anchor = 0
	t.cursor = len(t.buffer)
	t.selStart, t.selEnd = 0, len(t.buffer)
	t.MarkDirty()
}

func (t *TextInput) collapseSelection() {
	t.selStart = t.cursor
	t.selEnd = t.cursor
	t.anchor = t.cursor
}

// afterMutation is the change pipeline: format, validate, notify, reset the
// caret blink and mark dirty.
func (t *TextInput) afterMutation() {
	formatted := formatValue(t.props.Format, t.props.Formatter, string(t.buffer))
	if formatted != string(t.buffer) {
		t.buffer = []byte(formatted)
		t.cursor = clampOffset(t.cursor, len(t.buffer))
		t.selStart = clampOffset(t.selStart, len(t.buffer))
		t.selEnd = clampOffset(t.selEnd, len(t.buffer))
		t.anchor = clampOffset(t.anchor, len(t.buffer))
	}
	t.Validate()
	text := string(t.buffer)
	for _, fn := range t.changeListeners {
		fn(text)
	}
	t.ensureCursorVisible()
	t.resetBlink()
	t.MarkDirty()
}

func (t *TextInput) resetBlink() {
	t.blinkTimer = 0
	t.caretVisible = true
}

// HandleKeyEvent edits the buffer and moves the caret. Only key-down events
// act; all are consumed while the input holds focus so they do not leak to
// siblings.
func (t *TextInput) HandleKeyEvent(ev events.KeyEvent) bool {
	if !t.focused || ev.Phase != events.KeyPhaseDown {
		return false
	}
	switch ev.Key {
	case events.KeyLeft:
		t.MoveCursor(t.cursor-1, ev.Shift)
	case events.KeyRight:
		t.MoveCursor(t.cursor+1, ev.Shift)
	case events.KeyHome:
		t.MoveCursor(0, ev.Shift)
	case events.KeyEnd:
		t.MoveCursor(len(t.buffer), ev.Shift)
	case events.KeyBackspace:
		t.Backspace()
	case events.KeyDelete:
		t.Delete()
	case events.KeyEnter:
		if t.props.Multiline {
			t.InsertText("\n")
		} else {
			text := string(t.buffer)
			for _, fn := range t.submitListeners {
				fn(text)
			}
		}
	default:
		if ev.Char >= ' ' && !ev.Ctrl && !ev.Alt {
			t.InsertText(string(ev.Char))
		} else {
			return false
		}
	}
	return true
}

// HandlePointerEvent grants focus and positions the caret on a press inside
// the bounds, extends the selection while dragging, and revokes focus on a
// press outside.
func (t *TextInput) HandlePointerEvent(ev events.PointerEvent) bool {
	switch ev.Phase {
	case events.PointerDown:
		if ev.Button != events.ButtonLeft {
			return false
		}
		if t.bounds.Contains(ev.X, ev.Y) {
			t.SetFocused(true)
			t.MoveCursor(t.indexForPointer(ev.X), false)
			t.selecting = true
			return true
		}
		if t.focused {
			t.SetFocused(false)
			t.selecting = false
		}
		return false

	case events.PointerMove:
		if t.selecting {
			t.MoveCursor(t.indexForPointer(ev.X), true)
			return true
		}
		return false

	case events.PointerUp:
		if t.selecting {
			t.selecting = false
			return true
		}
	}
	return false
}

// indexForPointer maps a screen x coordinate to a byte offset through the
// inverse of the text measurer.
func (t *TextInput) indexForPointer(x float64) int {
	style := t.currentStyle()
	local := x - t.bounds.X - style.Padding.Left + t.scrollX
	return t.measurer.IndexForOffset(t.displayText(), style.FontSize, local)
}

// Update advances the caret blink while focused. The caret is solid, not
// blinking, while a selection exists.
func (t *TextInput) Update(dt float64) {
	if !t.focused {
		return
	}
	if t.HasSelection() {
		return
	}
	t.blinkTimer += dt
	for t.blinkTimer >= caretBlinkPeriod {
		t.blinkTimer -= caretBlinkPeriod
		t.caretVisible = !t.caretVisible
		t.MarkDirty()
	}
}

func (t *TextInput) currentStyle() *theme.Style {
	if t.lastStyle != nil {
		return t.lastStyle
	}
	return theme.Default()
}

// displayText is the text as painted: masked for password inputs.
func (t *TextInput) displayText() string {
	if !t.props.Password {
		return string(t.buffer)
	}
	masked := make([]byte, len(t.buffer))
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked)
}

// ensureCursorVisible adjusts the horizontal scroll so the caret stays in
// the visible text area.
func (t *TextInput) ensureCursorVisible() {
	style := t.currentStyle()
	visible := t.bounds.Width - style.Padding.Horizontal()
	if visible <= 0 {
		t.scrollX = 0
		return
	}
	display := t.displayText()
	caretX := t.measurer.Advance(display[:t.cursor], style.FontSize)
	if caretX-t.scrollX > visible-caretWidth {
		t.scrollX = caretX - visible + caretWidth
	}
	if caretX < t.scrollX {
		t.scrollX = caretX
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
}

// Paint draws the background, border, selection highlight, text or
// placeholder, and the caret. Text is clipped to the content area.
// Renderer errors propagate unchanged.
func (t *TextInput) Paint(r rendering.Renderer, style *theme.Style) error {
	if style == nil {
		style = theme.Default()
	}
	t.lastStyle = style
	t.ensureCursorVisible()

	if err := r.FillRect(t.bounds, style.BackgroundColor); err != nil {
		return err
	}
	borderColor := style.BorderColor
	if !t.Validate().Valid && len(t.buffer) > 0 {
		borderColor = rendering.ColorRed
	}
	if style.BorderWidth > 0 {
		if err := r.DrawRectBorder(t.bounds, borderColor, style.BorderWidth); err != nil {
			return err
		}
	}
	if t.focused {
		ring := t.bounds.Grow(focusRingInset)
		if err := r.DrawRectBorder(ring, style.BorderColor.Lighten(0.4), 1); err != nil {
			return err
		}
	}

	content := t.bounds.Shrink(style.Padding)
	r.PushClipRect(content)
	err := t.paintText(r, style, content)
	r.PopClipRect()
	return err
}

func (t *TextInput) paintText(r rendering.Renderer, style *theme.Style, content rendering.Rect) error {
	display := t.displayText()
	textX := content.X - t.scrollX
	textSize := r.MeasureText(display, style.FontSize)
	textY := content.Y + (content.Height-textSize.Height)/2

	if t.HasSelection() {
		startX := t.measurer.Advance(display[:t.selStart], style.FontSize)
		endX := t.measurer.Advance(display[:t.selEnd], style.FontSize)
		highlight := rendering.Rect{
			X:      textX + startX,
			Y:      content.Y,
			Width:  endX - startX,
			Height: content.Height,
		}
		if err := r.FillRect(highlight, style.BorderColor.WithAlpha(0.5)); err != nil {
			return err
		}
	}

	if display == "" && t.props.Placeholder != "" && !t.focused {
		placeholderColor := style.TextColor.WithAlpha(0.4)
		if err := r.DrawText(t.props.Placeholder, content.X, textY, placeholderColor, style.FontSize); err != nil {
			return err
		}
	} else if display != "" {
		if err := r.DrawText(display, textX, textY, style.TextColor, style.FontSize); err != nil {
			return err
		}
	}

	if t.focused && t.caretVisible && !t.HasSelection() {
		caretX := textX + t.measurer.Advance(display[:t.cursor], style.FontSize)
		caret := rendering.Rect{X: caretX, Y: content.Y, Width: caretWidth, Height: content.Height}
		if err := r.FillRect(caret, style.TextColor); err != nil {
			return err
		}
	}
	return nil
}

func clampOffset(pos, max int) int {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}

func minMax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
