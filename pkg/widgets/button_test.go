package widgets

import (
	"testing"

	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/uitest"
)

func newTestButton() *Button {
	b := NewButton(DefaultButtonProps("OK"))
	b.SetBounds(rendering.Rect{X: 0, Y: 0, Width: 100, Height: 30})
	return b
}

func TestButtonHover(t *testing.T) {
	b := newTestButton()

	b.HandlePointerEvent(uitest.PointerMove(10, 10))
	if !b.Hovered() || b.State() != StateHover {
		t.Errorf("after move inside: hovered=%v state=%v", b.Hovered(), b.State())
	}

	b.HandlePointerEvent(uitest.PointerMove(200, 200))
	if b.Hovered() || b.State() != StateNormal {
		t.Errorf("after move outside: hovered=%v state=%v", b.Hovered(), b.State())
	}
}

func TestButtonHoverListener(t *testing.T) {
	b := newTestButton()
	var calls []bool
	b.OnHover(func(h bool) { calls = append(calls, h) })

	b.HandlePointerEvent(uitest.PointerMove(10, 10))
	b.HandlePointerEvent(uitest.PointerMove(15, 15)) // still inside, no transition
	b.HandlePointerEvent(uitest.PointerMove(200, 200))

	want := []bool{true, false}
	if len(calls) != len(want) {
		t.Fatalf("hover calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("hover calls = %v, want %v", calls, want)
		}
	}
}

func TestButtonClick(t *testing.T) {
	b := newTestButton()
	clicks := 0
	b.OnClick(func() { clicks++ })

	if !b.HandlePointerEvent(uitest.PointerDown(10, 10)) {
		t.Error("press inside was not consumed")
	}
	if b.State() != StateActive {
		t.Errorf("state during press = %v, want active", b.State())
	}
	if !b.HandlePointerEvent(uitest.PointerUp(10, 10)) {
		t.Error("release was not consumed")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	b := newTestButton()
	clicks := 0
	b.OnClick(func() { clicks++ })

	b.HandlePointerEvent(uitest.PointerDown(10, 10))
	// Dragging off the button before releasing cancels the click but still
	// consumes the release.
	if !b.HandlePointerEvent(uitest.PointerUp(200, 200)) {
		t.Error("release while pressed was not consumed")
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if b.Pressed() {
		t.Error("still pressed after release")
	}
}

func TestButtonPressOutsideIgnored(t *testing.T) {
	b := newTestButton()
	if b.HandlePointerEvent(uitest.PointerDown(200, 200)) {
		t.Error("press outside was consumed")
	}
	if b.Pressed() {
		t.Error("press outside set the pressed flag")
	}
	// A stray release with no press in flight is not consumed.
	if b.HandlePointerEvent(uitest.PointerUp(10, 10)) {
		t.Error("stray release was consumed")
	}
}

func TestButtonDisabled(t *testing.T) {
	b := newTestButton()
	b.HandlePointerEvent(uitest.PointerDown(10, 10))
	b.HandlePointerEvent(uitest.PointerMove(10, 10))

	props := b.Props()
	props.Enabled = false
	b.SetProps(props)

	// Disabling wins over any prior hover or press state, immediately.
	if b.State() != StateDisabled {
		t.Errorf("state = %v, want disabled", b.State())
	}
	if b.Hovered() || b.Pressed() {
		t.Error("disable did not clear hover/press flags")
	}

	clicks := 0
	b.OnClick(func() { clicks++ })
	b.HandlePointerEvent(uitest.PointerDown(10, 10))
	b.HandlePointerEvent(uitest.PointerUp(10, 10))
	b.HandlePointerEvent(uitest.PointerMove(10, 10))
	if clicks != 0 || b.Hovered() || b.State() != StateDisabled {
		t.Error("disabled button reacted to pointer input")
	}
}

func TestButtonKeyActivation(t *testing.T) {
	b := newTestButton()
	clicks := 0
	b.OnClick(func() { clicks++ })

	// Keys are ignored without focus.
	if b.HandleKeyEvent(uitest.KeyPress(events.KeySpace)) {
		t.Error("unfocused button consumed a key")
	}

	b.SetFocused(true)
	if !b.HandleKeyEvent(uitest.KeyPress(events.KeyEnter)) {
		t.Error("key-down not consumed")
	}
	if b.State() != StateActive {
		t.Errorf("state = %v, want active", b.State())
	}
	up := events.KeyEvent{Phase: events.KeyPhaseUp, Key: events.KeyEnter}
	if !b.HandleKeyEvent(up) {
		t.Error("key-up not consumed")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestButtonTargetProgress(t *testing.T) {
	b := newTestButton()

	tests := []struct {
		name  string
		setup func()
		want  float64
	}{
		{"normal", func() {}, 0},
		{"hover", func() { b.HandlePointerEvent(uitest.PointerMove(10, 10)) }, 0.5},
		{"active", func() { b.HandlePointerEvent(uitest.PointerDown(10, 10)) }, 1},
		{"disabled", func() {
			p := b.Props()
			p.Enabled = false
			b.SetProps(p)
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			if b.targetProgress != tt.want {
				t.Errorf("target = %v, want %v", b.targetProgress, tt.want)
			}
		})
	}
}

func TestButtonUpdateRelaxesProgress(t *testing.T) {
	b := newTestButton()
	b.HandlePointerEvent(uitest.PointerDown(10, 10))

	prev := b.Progress()
	for i := 0; i < 300; i++ {
		b.Update(1.0 / 60)
		if b.Progress() < prev {
			t.Fatal("progress moved away from its target")
		}
		prev = b.Progress()
	}
	if b.Progress() != 1 {
		t.Errorf("progress = %v, want settled at 1", b.Progress())
	}
}

func TestButtonPaint(t *testing.T) {
	b := newTestButton()
	r := uitest.NewRecordingRenderer()

	if err := b.Paint(r, theme.Default()); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}
	if fills := r.OpsOfKind("fillRect"); len(fills) != 1 {
		t.Errorf("fillRect ops = %d, want 1", len(fills))
	}
	texts := r.OpsOfKind("drawText")
	if len(texts) != 1 || texts[0].Text != "OK" {
		t.Errorf("drawText ops = %v", texts)
	}

	// A focused button gains a focus ring border.
	r.Reset()
	b.SetFocused(true)
	if err := b.Paint(r, theme.Default()); err != nil {
		t.Fatal(err)
	}
	if borders := r.OpsOfKind("drawRectBorder"); len(borders) != 2 {
		t.Errorf("border ops = %d, want 2", len(borders))
	}
}

func TestButtonPaintIcon(t *testing.T) {
	props := DefaultButtonProps("Save")
	props.Icon = "disk"
	props.IconPosition = rendering.IconLeft
	b := NewButton(props)
	b.SetBounds(rendering.Rect{X: 0, Y: 0, Width: 120, Height: 40})

	r := uitest.NewRecordingRenderer()
	if err := b.Paint(r, theme.Default()); err != nil {
		t.Fatal(err)
	}
	icons := r.OpsOfKind("drawIcon")
	if len(icons) != 1 || icons[0].Name != "disk" {
		t.Fatalf("drawIcon ops = %v", icons)
	}
	texts := r.OpsOfKind("drawText")
	if len(texts) != 1 {
		t.Fatalf("drawText ops = %d", len(texts))
	}
	// With the icon on the left the label starts after it.
	if texts[0].X <= icons[0].Rect.X {
		t.Errorf("label at %v, icon at %v", texts[0].X, icons[0].Rect.X)
	}
}

func TestButtonPaintPropagatesRendererError(t *testing.T) {
	b := newTestButton()
	r := uitest.NewRecordingRenderer()
	r.FailOn = "fillRect"

	if err := b.Paint(r, theme.Default()); err == nil {
		t.Error("renderer error was swallowed")
	}
}
