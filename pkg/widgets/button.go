package widgets

import (
	"github.com/go-ember/ember/pkg/animation"
	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
)

// ButtonState is the derived interactive state of a button. It is a pure
// function of (enabled, pressed, hovered) with precedence
// disabled > active > hover > normal.
type ButtonState int

const (
	StateNormal ButtonState = iota
	StateHover
	StateActive
	StateDisabled
)

// String returns a human-readable representation of the state.
func (s ButtonState) String() string {
	switch s {
	case StateHover:
		return "hover"
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	}
	return "normal"
}

const (
	buttonIconSize    = 16.0
	buttonIconSpacing = 4.0
	focusRingInset    = 2.0

	// defaultAnimationRate makes a full state transition settle in roughly
	// a third of a second at 60 fps.
	defaultAnimationRate = 10.0
)

// ButtonProps configures a button. Replace the whole struct with SetProps;
// fields are not meant to be mutated in place.
type ButtonProps struct {
	Label        string
	Icon         string
	IconPosition rendering.IconPosition
	Enabled      bool

	// AnimationRate controls how fast the visual progress relaxes toward
	// its per-state target. Zero selects the default rate.
	AnimationRate float64
}

// DefaultButtonProps returns an enabled button with the given label.
func DefaultButtonProps(label string) ButtonProps {
	return ButtonProps{Label: label, Enabled: true}
}

// Button is a pressable, hoverable, focusable control. Pointer and key
// events drive a small state machine; a smoothed progress value in [0,1]
// interpolates the painted color between the base and state-adjusted style.
type Button struct {
	Base
	props ButtonProps

	hovered bool
	pressed bool
	state   ButtonState

	targetProgress    float64
	animationProgress float64

	clickListeners []func()
	hoverListeners []func(hovered bool)
}

// NewButton creates a button from props.
func NewButton(props ButtonProps) *Button {
	b := &Button{Base: newBase(KindButton), props: props}
	b.recomputeState()
	b.animationProgress = b.targetProgress
	return b
}

// SetProps replaces the button's configuration. Disabling clears hover and
// press immediately.
func (b *Button) SetProps(props ButtonProps) {
	b.props = props
	if !props.Enabled {
		b.hovered = false
		b.pressed = false
	}
	b.recomputeState()
	b.MarkDirty()
}

// Props returns the current configuration.
func (b *Button) Props() ButtonProps { return b.props }

// State returns the derived interactive state.
func (b *Button) State() ButtonState { return b.state }

// Hovered reports whether the pointer is inside the button's bounds.
func (b *Button) Hovered() bool { return b.hovered }

// Pressed reports whether a press is in flight.
func (b *Button) Pressed() bool { return b.pressed }

// Progress returns the smoothed visual progress in [0,1].
func (b *Button) Progress() float64 { return b.animationProgress }

// OnClick registers a click listener. Listeners fire in registration order
// when a press completes inside the bounds, or on an activate key while
// focused.
func (b *Button) OnClick(fn func()) {
	b.clickListeners = append(b.clickListeners, fn)
}

// OnHover registers a hover listener, invoked with the new hover state on
// every transition.
func (b *Button) OnHover(fn func(hovered bool)) {
	b.hoverListeners = append(b.hoverListeners, fn)
}

// recomputeState derives state and target progress from the raw flags.
func (b *Button) recomputeState() {
	switch {
	case !b.props.Enabled:
		b.state = StateDisabled
		b.targetProgress = 0
	case b.pressed:
		b.state = StateActive
		b.targetProgress = 1
	case b.hovered:
		b.state = StateHover
		b.targetProgress = 0.5
	default:
		b.state = StateNormal
		b.targetProgress = 0
	}
}

func (b *Button) setHovered(hovered bool) {
	if b.hovered == hovered {
		return
	}
	b.hovered = hovered
	for _, fn := range b.hoverListeners {
		fn(hovered)
	}
	b.recomputeState()
	b.MarkDirty()
}

func (b *Button) fireClick() {
	for _, fn := range b.clickListeners {
		fn()
	}
}

// HandlePointerEvent updates hover and press state. Presses inside the
// bounds and the matching releases are consumed; moves are observed but
// never consumed so siblings can track their own hover state.
func (b *Button) HandlePointerEvent(ev events.PointerEvent) bool {
	switch ev.Phase {
	case events.PointerMove:
		b.setHovered(b.props.Enabled && b.bounds.Contains(ev.X, ev.Y))
		return false

	case events.PointerDown:
		if ev.Button != events.ButtonLeft {
			return false
		}
		if b.props.Enabled && b.bounds.Contains(ev.X, ev.Y) {
			b.pressed = true
			b.recomputeState()
			b.MarkDirty()
			return true
		}
		return false

	case events.PointerUp:
		if ev.Button != events.ButtonLeft || !b.pressed {
			return false
		}
		b.pressed = false
		b.recomputeState()
		b.MarkDirty()
		if b.bounds.Contains(ev.X, ev.Y) {
			b.fireClick()
		}
		return true
	}
	return false
}

// HandleKeyEvent activates the button on space or enter while focused.
func (b *Button) HandleKeyEvent(ev events.KeyEvent) bool {
	if !b.focused || !b.props.Enabled {
		return false
	}
	if ev.Key != events.KeySpace && ev.Key != events.KeyEnter {
		return false
	}
	switch ev.Phase {
	case events.KeyPhaseDown:
		b.pressed = true
		b.recomputeState()
		b.MarkDirty()
		return true
	case events.KeyPhaseUp:
		if !b.pressed {
			return false
		}
		b.pressed = false
		b.recomputeState()
		b.MarkDirty()
		b.fireClick()
		return true
	}
	return false
}

// Update relaxes the visual progress toward its target.
func (b *Button) Update(dt float64) {
	next, _ := animation.Approach(b.animationProgress, b.targetProgress, b.animationRate(), dt)
	if next != b.animationProgress {
		b.animationProgress = next
		b.MarkDirty()
	}
}

func (b *Button) animationRate() float64 {
	if b.props.AnimationRate > 0 {
		return b.props.AnimationRate
	}
	return defaultAnimationRate
}

// stateColor returns the fully state-adjusted background color.
func (b *Button) stateColor(base rendering.Color) rendering.Color {
	switch b.state {
	case StateHover:
		return base.Lighten(0.2)
	case StateActive:
		return base.Darken(0.2)
	case StateDisabled:
		return base.Grayscale()
	}
	return base
}

// Paint draws the background interpolated by the animation progress, the
// border, a focus ring while focused, and the icon/label content centered
// in the bounds. Renderer errors propagate unchanged.
func (b *Button) Paint(r rendering.Renderer, style *theme.Style) error {
	if style == nil {
		style = theme.Default()
	}

	bg := style.BackgroundColor
	if b.state == StateDisabled {
		bg = bg.Grayscale()
	} else {
		bg = bg.Lerp(b.stateColor(bg), b.animationProgress)
	}
	if err := r.FillRect(b.bounds, bg); err != nil {
		return err
	}
	if style.BorderWidth > 0 {
		if err := r.DrawRectBorder(b.bounds, style.BorderColor, style.BorderWidth); err != nil {
			return err
		}
	}
	if b.focused {
		ring := b.bounds.Grow(focusRingInset)
		if err := r.DrawRectBorder(ring, style.BorderColor.Lighten(0.4), 1); err != nil {
			return err
		}
	}
	return b.paintContent(r, style)
}

// paintContent lays out the optional icon and label, centered as a unit.
func (b *Button) paintContent(r rendering.Renderer, style *theme.Style) error {
	textColor := style.TextColor
	if b.state == StateDisabled {
		textColor = textColor.Grayscale()
	}

	label := b.props.Label
	textSize := rendering.Size{}
	if label != "" {
		textSize = r.MeasureText(label, style.FontSize)
	}
	hasIcon := b.props.Icon != ""

	// Content extent with the icon attached on its configured side.
	contentW, contentH := textSize.Width, textSize.Height
	horizontal := b.props.IconPosition == rendering.IconLeft || b.props.IconPosition == rendering.IconRight
	if hasIcon {
		if horizontal {
			contentW += buttonIconSize
			if label != "" {
				contentW += buttonIconSpacing
			}
			if buttonIconSize > contentH {
				contentH = buttonIconSize
			}
		} else {
			contentH += buttonIconSize
			if label != "" {
				contentH += buttonIconSpacing
			}
			if buttonIconSize > contentW {
				contentW = buttonIconSize
			}
		}
	}

	originX := b.bounds.X + (b.bounds.Width-contentW)/2
	originY := b.bounds.Y + (b.bounds.Height-contentH)/2

	textX, textY := originX, originY+(contentH-textSize.Height)/2
	var iconRect rendering.Rect
	if hasIcon {
		switch b.props.IconPosition {
		case rendering.IconLeft:
			iconRect = rendering.Rect{X: originX, Y: originY + (contentH-buttonIconSize)/2, Width: buttonIconSize, Height: buttonIconSize}
			textX = iconRect.Right() + buttonIconSpacing
		case rendering.IconRight:
			textX = originX
			iconRect = rendering.Rect{X: originX + textSize.Width + buttonIconSpacing, Y: originY + (contentH-buttonIconSize)/2, Width: buttonIconSize, Height: buttonIconSize}
		case rendering.IconTop:
			iconRect = rendering.Rect{X: originX + (contentW-buttonIconSize)/2, Y: originY, Width: buttonIconSize, Height: buttonIconSize}
			textX = originX + (contentW-textSize.Width)/2
			textY = iconRect.Bottom() + buttonIconSpacing
		case rendering.IconBottom:
			textX = originX + (contentW-textSize.Width)/2
			textY = originY
			iconRect = rendering.Rect{X: originX + (contentW-buttonIconSize)/2, Y: originY + textSize.Height + buttonIconSpacing, Width: buttonIconSize, Height: buttonIconSize}
		}
		if err := r.DrawIcon(b.props.Icon, iconRect, textColor); err != nil {
			return err
		}
	}
	if label != "" {
		if err := r.DrawText(label, textX, textY, textColor, style.FontSize); err != nil {
			return err
		}
	}
	return nil
}
