// Command example drives a small widget tree through a few simulated frames
// and logs the draw calls, showing how a host wires the toolkit: build a
// theme, register widgets in a store, deliver events, update, then paint.
package main

import (
	"fmt"
	"log"

	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/focus"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/widgets"
)

const themeYAML = `
name: midnight
button:
  background: "#1E88E5"
  text: "#FFFFFF"
  border: "#1565C0"
  border_width: 1
  padding: [12, 6]
  font_size: 14
text_input:
  background: "#202124"
  text: "#E8EAED"
  border: "#5F6368"
  padding: [8, 4]
panel:
  background: "#2B2D30"
  border: "#3C3F41"
`

// logRenderer prints every draw call instead of rasterizing.
type logRenderer struct {
	measurer rendering.TextMeasurer
}

func (r *logRenderer) FillRect(rect rendering.Rect, color rendering.Color) error {
	fmt.Printf("  fillRect %+v #%08X\n", rect, uint32(color))
	return nil
}

func (r *logRenderer) DrawRectBorder(rect rendering.Rect, color rendering.Color, width float64) error {
	fmt.Printf("  drawRectBorder %+v #%08X w=%v\n", rect, uint32(color), width)
	return nil
}

func (r *logRenderer) DrawText(text string, x, y float64, color rendering.Color, fontSize float64) error {
	fmt.Printf("  drawText %q at (%.1f, %.1f) size=%v\n", text, x, y, fontSize)
	return nil
}

func (r *logRenderer) MeasureText(text string, fontSize float64) rendering.Size {
	return rendering.Size{Width: r.measurer.Advance(text, fontSize), Height: fontSize}
}

func (r *logRenderer) DrawImage(name string, rect rendering.Rect) error {
	fmt.Printf("  drawImage %q %+v\n", name, rect)
	return nil
}

func (r *logRenderer) DrawIcon(name string, rect rendering.Rect, color rendering.Color) error {
	fmt.Printf("  drawIcon %q %+v\n", name, rect)
	return nil
}

func (r *logRenderer) PushClipRect(rect rendering.Rect) {
	fmt.Printf("  pushClipRect %+v\n", rect)
}

func (r *logRenderer) PopClipRect() {
	fmt.Println("  popClipRect")
}

func main() {
	th, err := theme.Parse([]byte(themeYAML))
	if err != nil {
		log.Fatalf("theme: %v", err)
	}

	store := widgets.NewStore()

	save := widgets.NewButton(widgets.DefaultButtonProps("Save"))
	save.OnClick(func() { fmt.Println("event: save clicked") })
	save.OnHover(func(h bool) { fmt.Printf("event: save hover=%v\n", h) })

	email := widgets.NewTextInput(widgets.TextInputProps{
		Placeholder: "you@example.com",
		Validation:  widgets.ValidationEmail,
	}, rendering.DefaultFaceMeasurer())
	email.OnChange(func(s string) {
		fmt.Printf("event: email changed to %q valid=%v\n", s, email.IsValid())
	})
	email.OnSubmit(func(s string) { fmt.Printf("event: submitted %q\n", s) })

	root := widgets.NewPanel(store, widgets.PanelProps{
		Layout:      widgets.LayoutVertical,
		Gap:         8,
		Padding:     rendering.EdgeInsetsAll(12),
		Scrollable:  true,
		ClipContent: true,
		Theme:       th,
	})
	root.SetBounds(rendering.Rect{X: 0, Y: 0, Width: 320, Height: 240})
	root.AddChild(store.Add(email))
	root.AddChild(store.Add(save))

	// Tab order for keyboard navigation.
	chain := focus.NewChain()
	chain.Add(email)
	chain.Add(save)

	// Children need bounds before the first events arrive.
	root.Layout()

	renderer := &logRenderer{measurer: rendering.DefaultFaceMeasurer()}

	// A scripted input sequence: type an address, hover and click the
	// button, then run a few frames of update and paint.
	frames := [][]any{
		{
			events.PointerEvent{Phase: events.PointerDown, X: 60, Y: 25, Button: events.ButtonLeft},
			events.PointerEvent{Phase: events.PointerUp, X: 60, Y: 25, Button: events.ButtonLeft},
		},
		{
			events.KeyEvent{Phase: events.KeyPhaseDown, Char: 'a'},
			events.KeyEvent{Phase: events.KeyPhaseDown, Char: '@'},
			events.KeyEvent{Phase: events.KeyPhaseDown, Char: 'b'},
			events.KeyEvent{Phase: events.KeyPhaseDown, Char: '.'},
			events.KeyEvent{Phase: events.KeyPhaseDown, Char: 'c'},
		},
		{events.PointerEvent{Phase: events.PointerMove, X: 60, Y: 60}},
		{
			events.PointerEvent{Phase: events.PointerDown, X: 60, Y: 60, Button: events.ButtonLeft},
			events.PointerEvent{Phase: events.PointerUp, X: 60, Y: 60, Button: events.ButtonLeft},
		},
		{
			// Tab twice to reach the button, then activate it by keyboard.
			events.KeyEvent{Phase: events.KeyPhaseDown, Key: events.KeyTab},
			events.KeyEvent{Phase: events.KeyPhaseDown, Key: events.KeyTab},
			events.KeyEvent{Phase: events.KeyPhaseDown, Key: events.KeySpace},
			events.KeyEvent{Phase: events.KeyPhaseUp, Key: events.KeySpace},
		},
	}

	const dt = 1.0 / 60
	for i, inputs := range frames {
		fmt.Printf("frame %d\n", i)
		for _, in := range inputs {
			switch ev := in.(type) {
			case events.PointerEvent:
				root.HandlePointerEvent(ev)
			case events.KeyEvent:
				if ev.Phase == events.KeyPhaseDown && ev.Key == events.KeyTab {
					if ev.Shift {
						chain.MoveFocus(-1)
					} else {
						chain.MoveFocus(1)
					}
					continue
				}
				root.HandleKeyEvent(ev)
			}
		}
		root.Update(dt)
		if root.IsDirty() {
			if err := root.Paint(renderer, th.Panel); err != nil {
				log.Fatalf("paint: %v", err)
			}
			root.ClearDirty()
		}
	}
	fmt.Printf("final: email=%q valid=%v\n", email.Text(), email.IsValid())
}
