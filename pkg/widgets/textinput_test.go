package widgets

import (
	"testing"

	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/uitest"
)

func newTestInput(props TextInputProps) *TextInput {
	in := NewTextInput(props, rendering.FixedMeasurer{})
	in.SetBounds(rendering.Rect{X: 0, Y: 0, Width: 200, Height: 30})
	return in
}

func TestTextInputSetText(t *testing.T) {
	in := newTestInput(TextInputProps{})

	in.SetText("hello")
	if in.Text() != "hello" {
		t.Errorf("Text = %q", in.Text())
	}
	if in.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want 5", in.CursorPosition())
	}
	if in.HasSelection() {
		t.Error("SetText left a selection")
	}
}

func TestTextInputSetTextIdempotent(t *testing.T) {
	in := newTestInput(TextInputProps{Validation: ValidationText})

	in.SetText("same")
	first := in.Validate()
	cursor := in.CursorPosition()

	in.SetText("same")
	if in.Text() != "same" || in.CursorPosition() != cursor {
		t.Errorf("second SetText changed buffer/cursor: %q %d", in.Text(), in.CursorPosition())
	}
	if in.Validate() != first {
		t.Error("validation result differs between identical SetText calls")
	}
	if in.CursorPosition() != len("same") {
		t.Errorf("cursor = %d, want %d", in.CursorPosition(), len("same"))
	}
}

func TestTextInputInsertDeleteRoundTrip(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("Hello")
	cursor := in.CursorPosition()

	in.InsertText(" World")
	if in.Text() != "Hello World" || in.CursorPosition() != 11 {
		t.Fatalf("after insert: %q cursor %d", in.Text(), in.CursorPosition())
	}

	// Select exactly the inserted span and delete it.
	in.MoveCursor(5, false)
	in.MoveCursor(11, true)
	in.DeleteSelection()

	if in.Text() != "Hello" {
		t.Errorf("Text = %q, want %q", in.Text(), "Hello")
	}
	if in.CursorPosition() != cursor {
		t.Errorf("cursor = %d, want %d", in.CursorPosition(), cursor)
	}
}

func TestTextInputInsertReplacesSelection(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("abcdef")
	in.MoveCursor(1, false)
	in.MoveCursor(5, true)

	in.InsertText("X")
	if in.Text() != "aXf" {
		t.Errorf("Text = %q, want %q", in.Text(), "aXf")
	}
	if in.CursorPosition() != 2 {
		t.Errorf("cursor = %d, want 2", in.CursorPosition())
	}
}

func TestTextInputMaxLength(t *testing.T) {
	in := newTestInput(TextInputProps{MaxLength: 5})
	in.SetText("abc")

	in.InsertText("de")
	if in.Text() != "abcde" {
		t.Fatalf("Text = %q", in.Text())
	}

	// Overflowing inserts are dropped without error and without touching
	// the buffer or cursor.
	in.InsertText("f")
	if in.Text() != "abcde" || in.CursorPosition() != 5 {
		t.Errorf("overflow mutated state: %q cursor %d", in.Text(), in.CursorPosition())
	}

	// Replacing a selection counts the removed bytes against the limit.
	in.MoveCursor(0, false)
	in.MoveCursor(5, true)
	in.InsertText("12345")
	if in.Text() != "12345" {
		t.Errorf("selection replace rejected: %q", in.Text())
	}
}

func TestTextInputBackspaceDelete(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("abc")

	in.Backspace()
	if in.Text() != "ab" || in.CursorPosition() != 2 {
		t.Errorf("after backspace: %q cursor %d", in.Text(), in.CursorPosition())
	}

	in.MoveCursor(0, false)
	in.Backspace() // no-op at position 0
	if in.Text() != "ab" {
		t.Errorf("backspace at 0 mutated: %q", in.Text())
	}

	in.Delete()
	if in.Text() != "b" || in.CursorPosition() != 0 {
		t.Errorf("after delete: %q cursor %d", in.Text(), in.CursorPosition())
	}

	in.MoveCursor(1, false)
	in.Delete() // no-op at end
	if in.Text() != "b" {
		t.Errorf("delete at end mutated: %q", in.Text())
	}
}

func TestTextInputCursorBounds(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("abc")

	// Moves past either end clamp instead of erroring.
	in.MoveCursor(100, false)
	if in.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", in.CursorPosition())
	}
	in.MoveCursor(-100, false)
	if in.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", in.CursorPosition())
	}

	start, end := in.Selection()
	if start > end {
		t.Errorf("selection not normalized: %d > %d", start, end)
	}
}

func TestTextInputArrowKeys(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("Hello World")
	in.SetFocused(true)
	in.MoveCursor(5, false)

	// Plain left-arrow moves to 4 and collapses the selection there.
	in.HandleKeyEvent(uitest.KeyPress(events.KeyLeft))
	if in.CursorPosition() != 4 {
		t.Errorf("cursor = %d, want 4", in.CursorPosition())
	}
	if start, end := in.Selection(); start != 4 || end != 4 {
		t.Errorf("selection = [%d,%d), want collapsed at 4", start, end)
	}

	in.HandleKeyEvent(uitest.KeyPress(events.KeyRight))
	if in.CursorPosition() != 5 {
		t.Errorf("cursor = %d, want 5", in.CursorPosition())
	}

	in.HandleKeyEvent(uitest.KeyPress(events.KeyHome))
	if in.CursorPosition() != 0 {
		t.Errorf("Home cursor = %d", in.CursorPosition())
	}
	in.HandleKeyEvent(uitest.KeyPress(events.KeyEnd))
	if in.CursorPosition() != 11 {
		t.Errorf("End cursor = %d", in.CursorPosition())
	}
}

func TestTextInputShiftSelection(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("Hello")
	in.SetFocused(true)
	in.MoveCursor(2, false)

	// The anchor stays at 2 while the cursor end moves.
	in.HandleKeyEvent(uitest.KeyPressShift(events.KeyRight))
	in.HandleKeyEvent(uitest.KeyPressShift(events.KeyRight))
	if start, end := in.Selection(); start != 2 || end != 4 {
		t.Errorf("selection = [%d,%d), want [2,4)", start, end)
	}

	// Crossing back over the anchor flips the range, still anchored at 2.
	for i := 0; i < 3; i++ {
		in.HandleKeyEvent(uitest.KeyPressShift(events.KeyLeft))
	}
	if start, end := in.Selection(); start != 1 || end != 2 {
		t.Errorf("selection = [%d,%d), want [1,2)", start, end)
	}

	// An unshifted move collapses to the new cursor.
	in.HandleKeyEvent(uitest.KeyPress(events.KeyRight))
	if in.HasSelection() {
		t.Error("unshifted move kept the selection")
	}
}

func TestTextInputCharInput(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetFocused(true)

	for _, ch := range "hi!" {
		in.HandleKeyEvent(uitest.CharPress(ch))
	}
	if in.Text() != "hi!" {
		t.Errorf("Text = %q", in.Text())
	}

	// Control characters and modified chords are ignored.
	in.HandleKeyEvent(events.KeyEvent{Phase: events.KeyPhaseDown, Char: 0x1B})
	in.HandleKeyEvent(events.KeyEvent{Phase: events.KeyPhaseDown, Char: 'c', Ctrl: true})
	if in.Text() != "hi!" {
		t.Errorf("non-printable input mutated: %q", in.Text())
	}

	// Unfocused inputs ignore keys entirely.
	in.SetFocused(false)
	in.HandleKeyEvent(uitest.CharPress('x'))
	if in.Text() != "hi!" {
		t.Errorf("unfocused input mutated: %q", in.Text())
	}
}

func TestTextInputEnter(t *testing.T) {
	var submitted []string
	in := newTestInput(TextInputProps{})
	in.OnSubmit(func(s string) { submitted = append(submitted, s) })
	in.SetText("done")
	in.SetFocused(true)

	in.HandleKeyEvent(uitest.KeyPress(events.KeyEnter))
	if in.Text() != "done" {
		t.Errorf("single-line enter mutated: %q", in.Text())
	}
	if len(submitted) != 1 || submitted[0] != "done" {
		t.Errorf("submitted = %v", submitted)
	}

	multi := newTestInput(TextInputProps{Multiline: true})
	multi.SetText("a")
	multi.SetFocused(true)
	multi.HandleKeyEvent(uitest.KeyPress(events.KeyEnter))
	if multi.Text() != "a\n" {
		t.Errorf("multiline enter = %q", multi.Text())
	}
}

func TestTextInputReadOnly(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("locked")
	props := in.Props()
	props.ReadOnly = true
	in.SetProps(props)
	in.SetFocused(true)

	in.InsertText("x")
	in.Backspace()
	in.Delete()
	in.SetText("replaced")
	in.HandleKeyEvent(uitest.CharPress('y'))

	if in.Text() != "locked" {
		t.Errorf("read-only buffer mutated: %q", in.Text())
	}

	// The caret still moves in a read-only field.
	in.HandleKeyEvent(uitest.KeyPress(events.KeyHome))
	if in.CursorPosition() != 0 {
		t.Errorf("cursor = %d", in.CursorPosition())
	}
}

func TestTextInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		props TextInputProps
		text  string
		valid bool
	}{
		{"none accepts anything", TextInputProps{}, "", true},
		{"text rejects empty", TextInputProps{Validation: ValidationText}, "", false},
		{"text accepts non-empty", TextInputProps{Validation: ValidationText}, "x", true},
		{"email rejects plain word", TextInputProps{Validation: ValidationEmail}, "invalid", false},
		{"email accepts address", TextInputProps{Validation: ValidationEmail}, "test@example.com", true},
		{"number rejects words", TextInputProps{Validation: ValidationNumber}, "abc", false},
		{"number accepts float", TextInputProps{Validation: ValidationNumber}, "-12.5", true},
		{"password rejects short", TextInputProps{Validation: ValidationPassword}, "seven77", false},
		{"password accepts eight", TextInputProps{Validation: ValidationPassword}, "eight888", true},
		{"url rejects bare host", TextInputProps{Validation: ValidationURL}, "example.com", false},
		{"url accepts https", TextInputProps{Validation: ValidationURL}, "https://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInput(tt.props)
			in.SetText(tt.text)
			if got := in.IsValid(); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.text, got, tt.valid)
			}
		})
	}
}

func TestTextInputCustomValidation(t *testing.T) {
	in := newTestInput(TextInputProps{
		Validation: ValidationCustom,
		Validator: func(s string) ValidationResult {
			if s == "magic" {
				return ValidationResult{Valid: true}
			}
			return ValidationResult{Valid: false, Message: "not magic"}
		},
	})
	in.SetText("nope")
	if in.IsValid() {
		t.Error("custom validator not consulted")
	}
	in.SetText("magic")
	if !in.IsValid() {
		t.Error("custom validator rejected valid text")
	}

	// Custom type with no validator defaults to valid.
	loose := newTestInput(TextInputProps{Validation: ValidationCustom})
	loose.SetText("anything")
	if !loose.IsValid() {
		t.Error("missing custom validator did not default to valid")
	}
}

func TestTextInputValidationCache(t *testing.T) {
	calls := 0
	in := newTestInput(TextInputProps{
		Validation: ValidationCustom,
		Validator: func(s string) ValidationResult {
			calls++
			return ValidationResult{Valid: true}
		},
	})
	in.SetText("stable")
	base := calls

	// Re-validating unchanged text reuses the cached result.
	in.Validate()
	in.Validate()
	if calls != base {
		t.Errorf("validator ran %d extra times on unchanged text", calls-base)
	}

	in.InsertText("!")
	if calls == base {
		t.Error("validator did not run after a mutation")
	}
}

func TestTextInputFormatting(t *testing.T) {
	tests := []struct {
		name  string
		props TextInputProps
		text  string
		want  string
	}{
		{"uppercase", TextInputProps{Format: FormatUppercase}, "hello", "HELLO"},
		{"lowercase", TextInputProps{Format: FormatLowercase}, "HeLLo", "hello"},
		{"capitalize words", TextInputProps{Format: FormatCapitalize}, "hello world", "Hello World"},
		{"custom", TextInputProps{
			Format:    FormatCustom,
			Formatter: func(s string) string { return s + "!" },
		}, "hey", "hey!"},
		{"none passes through", TextInputProps{}, "AsIs", "AsIs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInput(tt.props)
			in.SetText(tt.text)
			if in.Text() != tt.want {
				t.Errorf("Text = %q, want %q", in.Text(), tt.want)
			}
		})
	}
}

func TestTextInputChangeListeners(t *testing.T) {
	in := newTestInput(TextInputProps{})
	var seen []string
	in.OnChange(func(s string) { seen = append(seen, s) })
	in.OnChange(func(s string) { seen = append(seen, s+"#2") })

	in.SetText("a")
	in.InsertText("b")

	want := []string{"a", "a#2", "ab", "ab#2"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestTextInputPointerFocus(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("Hello")

	// Press inside grants focus and places the caret from the x offset:
	// padding is 8 and the fixed measurer advances 8 per character, so
	// x=28 is 20 pixels into the text, nearest boundary 3 characters in.
	if !in.HandlePointerEvent(uitest.PointerDown(28, 15)) {
		t.Fatal("press inside not consumed")
	}
	if !in.Focused() {
		t.Error("press inside did not focus")
	}
	if in.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", in.CursorPosition())
	}
	in.HandlePointerEvent(uitest.PointerUp(28, 15))

	// Press outside revokes focus.
	in.HandlePointerEvent(uitest.PointerDown(500, 500))
	if in.Focused() {
		t.Error("press outside kept focus")
	}
}

func TestTextInputDragSelection(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("Hello")

	in.HandlePointerEvent(uitest.PointerDown(8, 15))  // caret at 0
	in.HandlePointerEvent(uitest.PointerMove(32, 15)) // drag to 3
	in.HandlePointerEvent(uitest.PointerUp(32, 15))

	if start, end := in.Selection(); start != 0 || end != 3 {
		t.Errorf("selection = [%d,%d), want [0,3)", start, end)
	}
}

func TestTextInputCaretBlink(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("abc")
	in.SetFocused(true)

	if !in.caretVisible {
		t.Fatal("caret not visible after focus")
	}
	in.Update(0.5)
	if in.caretVisible {
		t.Error("caret did not blink off after half a second")
	}
	in.Update(0.5)
	if !in.caretVisible {
		t.Error("caret did not blink back on")
	}

	// Any edit resets the caret to visible.
	in.Update(0.5)
	in.InsertText("x")
	if !in.caretVisible {
		t.Error("edit did not reset the blink phase")
	}

	// A selection suspends blinking.
	in.MoveCursor(0, false)
	in.MoveCursor(2, true)
	in.Update(0.5)
	if !in.caretVisible {
		t.Error("blink advanced while a selection exists")
	}
}

func TestTextInputScrollKeepsCaretVisible(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetBounds(rendering.Rect{X: 0, Y: 0, Width: 56, Height: 30})
	// Visible text width is 56 - 16 padding = 40 pixels; five 8px
	// characters fit exactly.
	in.SetText("abcdefghij")

	if in.scrollX <= 0 {
		t.Errorf("scrollX = %v, want positive after overflow", in.scrollX)
	}

	in.MoveCursor(0, false)
	in.ensureCursorVisible()
	if in.scrollX != 0 {
		t.Errorf("scrollX = %v, want 0 with caret at start", in.scrollX)
	}
}

func TestTextInputPaint(t *testing.T) {
	in := newTestInput(TextInputProps{Placeholder: "type here"})
	r := uitest.NewRecordingRenderer()

	// Empty and unfocused paints the placeholder.
	if err := in.Paint(r, theme.Default()); err != nil {
		t.Fatal(err)
	}
	texts := r.OpsOfKind("drawText")
	if len(texts) != 1 || texts[0].Text != "type here" {
		t.Errorf("placeholder ops = %v", texts)
	}
	if !r.ClipBalanced() {
		t.Error("clip push/pop unbalanced")
	}

	// Focused with a selection paints a highlight and no caret.
	r.Reset()
	in.SetText("hello")
	in.SetFocused(true)
	in.MoveCursor(1, false)
	in.MoveCursor(4, true)
	if err := in.Paint(r, theme.Default()); err != nil {
		t.Fatal(err)
	}
	fills := r.OpsOfKind("fillRect")
	// Background plus the selection highlight, no caret bar.
	if len(fills) != 2 {
		t.Errorf("fillRect ops = %d, want 2", len(fills))
	}
	if !r.ClipBalanced() {
		t.Error("clip push/pop unbalanced")
	}
}

func TestTextInputPaintMasksPassword(t *testing.T) {
	in := newTestInput(TextInputProps{Password: true})
	in.SetText("secret")

	r := uitest.NewRecordingRenderer()
	if err := in.Paint(r, theme.Default()); err != nil {
		t.Fatal(err)
	}
	texts := r.OpsOfKind("drawText")
	if len(texts) != 1 || texts[0].Text != "******" {
		t.Errorf("masked text ops = %v", texts)
	}
	if in.Text() != "secret" {
		t.Error("masking touched the buffer")
	}
}

func TestTextInputPaintClipBalancedOnError(t *testing.T) {
	in := newTestInput(TextInputProps{})
	in.SetText("abc")

	r := uitest.NewRecordingRenderer()
	r.FailOn = "drawText"
	if err := in.Paint(r, theme.Default()); err == nil {
		t.Fatal("renderer error was swallowed")
	}
	if !r.ClipBalanced() {
		t.Error("clip unbalanced after an error exit")
	}
}
