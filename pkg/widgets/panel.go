package widgets

import (
	"math"

	"github.com/go-ember/ember/pkg/events"
	"github.com/go-ember/ember/pkg/rendering"
	"github.com/go-ember/ember/pkg/theme"
)

// LayoutStrategy selects how a panel positions its children inside its
// content rectangle.
type LayoutStrategy int

const (
	// LayoutNone leaves children at whatever bounds they already carry.
	LayoutNone LayoutStrategy = iota
	// LayoutVertical stacks children top to bottom at full content width.
	LayoutVertical
	// LayoutHorizontal stacks children left to right at full content height.
	LayoutHorizontal
	// LayoutGrid places children into a fixed number of equal-width columns.
	LayoutGrid
	// LayoutAbsolute uses each child's explicit rectangle override.
	LayoutAbsolute
	// LayoutFlex distributes main-axis space by flex grow weight.
	LayoutFlex
)

// FlexDirection is the main axis of the flex strategy.
type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexColumn
)

const (
	// defaultChildExtent is the fallback main-axis size for children the
	// measure hook declines to size.
	defaultChildExtent = 30.0

	defaultScrollStep  = 20.0
	scrollbarThickness = 6.0
	minScrollbarExtent = 16.0
)

// ChildInfo associates a child handle with its layout metadata. The panel
// owns the association, never the child widget itself.
type ChildInfo struct {
	Handle Handle

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  float64

	Column  int
	Row     int
	ColSpan int
	RowSpan int

	// Absolute overrides the child's rectangle under LayoutAbsolute,
	// relative to the content origin.
	Absolute *rendering.Rect

	Margin rendering.EdgeInsets
}

// MeasureChildFunc reports a child's preferred size given the space the
// strategy can offer. Strategies fall back to defaultChildExtent on the
// unconstrained axis when the hook is nil.
type MeasureChildFunc func(w Widget, available rendering.Size) rendering.Size

// LayoutCache holds the output of the last layout pass. ChildBounds is
// index-aligned with the child list and content-space; ContentSize feeds the
// scroll range.
type LayoutCache struct {
	ChildBounds []rendering.Rect
	ContentSize rendering.Size
}

// PanelProps configures a panel.
type PanelProps struct {
	Layout    LayoutStrategy
	Direction FlexDirection

	// Columns is the grid column count. Values below 1 are clamped to 1.
	Columns int

	// Gap is the spacing between adjacent children, in pixels.
	Gap float64

	// Padding insets the content rectangle from the panel bounds.
	Padding rendering.EdgeInsets

	Scrollable  bool
	ClipContent bool

	// ScrollStep is the pixel distance per wheel notch. Zero selects the
	// default step.
	ScrollStep float64

	// Theme selects per-kind styles for children. Nil paints children with
	// the panel's own style.
	Theme *theme.Theme
}

// Panel is a scrollable, clipping container that lays out child widgets
// referenced through a Store. Layout runs only when the needs-layout gate is
// set by a structural or property change, never per frame.
type Panel struct {
	Base
	props PanelProps
	store *Store

	children    []ChildInfo
	cache       LayoutCache
	needsLayout bool

	scrollX float64
	scrollY float64

	dragging  bool
	lastDragX float64
	lastDragY float64

	measure MeasureChildFunc

	scrollListeners []func(x, y float64)
}

// NewPanel creates a panel whose children live in store.
func NewPanel(store *Store, props PanelProps) *Panel {
	return &Panel{
		Base:        newBase(KindPanel),
		props:       props,
		store:       store,
		needsLayout: true,
	}
}

// SetProps replaces the panel's configuration and invalidates the layout.
func (p *Panel) SetProps(props PanelProps) {
	p.props = props
	p.invalidateLayout()
}

// Props returns the current configuration.
func (p *Panel) Props() PanelProps { return p.props }

// SetMeasureFunc installs the child measurement hook used by the vertical,
// horizontal, grid and flex strategies.
func (p *Panel) SetMeasureFunc(fn MeasureChildFunc) {
	p.measure = fn
	p.invalidateLayout()
}

// SetBounds resizes the panel and invalidates the layout.
func (p *Panel) SetBounds(bounds rendering.Rect) {
	if p.bounds == bounds {
		return
	}
	p.Base.SetBounds(bounds)
	p.needsLayout = true
}

// AddChild appends a child with zero-value layout metadata.
func (p *Panel) AddChild(h Handle) {
	p.AddChildWithLayout(ChildInfo{Handle: h})
}

// AddChildWithLayout appends a child with explicit layout metadata.
func (p *Panel) AddChildWithLayout(info ChildInfo) {
	p.children = append(p.children, info)
	p.invalidateLayout()
}

// RemoveChild removes the first child with the given handle, preserving the
// order of the rest. Reports whether a child was removed.
func (p *Panel) RemoveChild(h Handle) bool {
	for i, c := range p.children {
		if c.Handle == h {
			p.children = append(p.children[:i], p.children[i+1:]...)
			p.invalidateLayout()
			return true
		}
	}
	return false
}

// ClearChildren empties the child list, keeping its capacity.
func (p *Panel) ClearChildren() {
	p.children = p.children[:0]
	p.invalidateLayout()
}

// ChildCount returns the number of registered children.
func (p *Panel) ChildCount() int { return len(p.children) }

// SetChildLayout replaces the layout metadata of the first child with the
// given handle. Reports whether the child was found.
func (p *Panel) SetChildLayout(h Handle, info ChildInfo) bool {
	for i := range p.children {
		if p.children[i].Handle == h {
			info.Handle = h
			p.children[i] = info
			p.invalidateLayout()
			return true
		}
	}
	return false
}

// NeedsLayout reports whether the next layout pass will recompute geometry.
func (p *Panel) NeedsLayout() bool { return p.needsLayout }

// Cache returns the layout output of the last pass. Stale while NeedsLayout
// is true.
func (p *Panel) Cache() LayoutCache { return p.cache }

// ContentSize returns the aggregate size of the laid-out children.
func (p *Panel) ContentSize() rendering.Size { return p.cache.ContentSize }

func (p *Panel) invalidateLayout() {
	p.needsLayout = true
	p.MarkDirty()
}

// contentRect is the panel bounds shrunk by padding.
func (p *Panel) contentRect() rendering.Rect {
	return p.bounds.Shrink(p.props.Padding)
}

// Layout recomputes child geometry if the needs-layout gate is set,
// populating the cache and pushing bounds onto each child. Children whose
// handles no longer resolve keep a zero rectangle so the cache stays
// index-aligned with the child list.
func (p *Panel) Layout() {
	if !p.needsLayout {
		return
	}
	content := p.contentRect()
	if cap(p.cache.ChildBounds) < len(p.children) {
		p.cache.ChildBounds = make([]rendering.Rect, len(p.children))
	} else {
		p.cache.ChildBounds = p.cache.ChildBounds[:len(p.children)]
		for i := range p.cache.ChildBounds {
			p.cache.ChildBounds[i] = rendering.Rect{}
		}
	}

	switch p.props.Layout {
	case LayoutVertical:
		p.layoutStacked(content, true)
	case LayoutHorizontal:
		p.layoutStacked(content, false)
	case LayoutGrid:
		p.layoutGrid(content)
	case LayoutAbsolute:
		p.layoutAbsolute(content)
	case LayoutFlex:
		p.layoutFlex(content)
	default:
		p.layoutNone(content)
	}

	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		w.SetBounds(p.cache.ChildBounds[i])
	}

	p.needsLayout = false
	p.clampScroll()
	p.MarkDirty()
}

func (p *Panel) measureChild(w Widget, available rendering.Size) rendering.Size {
	if p.measure != nil {
		size := p.measure(w, available)
		if size.Width > 0 || size.Height > 0 {
			return size
		}
	}
	width := available.Width
	if width <= 0 {
		width = defaultChildExtent
	}
	height := available.Height
	if height <= 0 {
		height = defaultChildExtent
	}
	return rendering.Size{Width: width, Height: height}
}

// layoutNone keeps child bounds as they are; the content size becomes the
// bounding box enclosing them, relative to the content origin.
func (p *Panel) layoutNone(content rendering.Rect) {
	maxRight, maxBottom := 0.0, 0.0
	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		b := w.Bounds()
		p.cache.ChildBounds[i] = b
		if r := b.Right() - content.X; r > maxRight {
			maxRight = r
		}
		if bt := b.Bottom() - content.Y; bt > maxBottom {
			maxBottom = bt
		}
	}
	p.cache.ContentSize = rendering.Size{Width: maxRight, Height: maxBottom}
}

// layoutStacked is the shared vertical/horizontal strategy: children advance
// along the main axis and span the full cross axis minus their own margins.
func (p *Panel) layoutStacked(content rendering.Rect, vertical bool) {
	cursor := 0.0
	placed := false
	crossMax := 0.0
	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		if placed {
			cursor += p.props.Gap
		}
		var rect rendering.Rect
		if vertical {
			width := content.Width - c.Margin.Horizontal()
			if width < 0 {
				width = 0
			}
			height := p.measureChild(w, rendering.Size{Width: width}).Height
			rect = rendering.Rect{
				X:      content.X + c.Margin.Left,
				Y:      content.Y + cursor + c.Margin.Top,
				Width:  width,
				Height: height,
			}
			cursor += c.Margin.Vertical() + height
			if extent := width + c.Margin.Horizontal(); extent > crossMax {
				crossMax = extent
			}
		} else {
			height := content.Height - c.Margin.Vertical()
			if height < 0 {
				height = 0
			}
			width := p.measureChild(w, rendering.Size{Height: height}).Width
			rect = rendering.Rect{
				X:      content.X + cursor + c.Margin.Left,
				Y:      content.Y + c.Margin.Top,
				Width:  width,
				Height: height,
			}
			cursor += c.Margin.Horizontal() + width
			if extent := height + c.Margin.Vertical(); extent > crossMax {
				crossMax = extent
			}
		}
		p.cache.ChildBounds[i] = rect
		placed = true
	}
	if vertical {
		p.cache.ContentSize = rendering.Size{Width: crossMax, Height: cursor}
	} else {
		p.cache.ContentSize = rendering.Size{Width: cursor, Height: crossMax}
	}
}

// layoutGrid places child i into cell (i mod columns, i div columns). Cell
// widths divide the content width evenly; row heights come from the tallest
// measured child in each row.
func (p *Panel) layoutGrid(content rendering.Rect) {
	cols := p.props.Columns
	if cols < 1 {
		cols = 1
	}
	n := len(p.children)
	if n == 0 {
		p.cache.ContentSize = rendering.Size{}
		return
	}
	rows := (n + cols - 1) / cols
	cellWidth := (content.Width - p.props.Gap*float64(cols-1)) / float64(cols)
	if cellWidth < 0 {
		cellWidth = 0
	}

	rowHeights := make([]float64, rows)
	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		row := i / cols
		h := p.measureChild(w, rendering.Size{Width: cellWidth}).Height + c.Margin.Vertical()
		if h > rowHeights[row] {
			rowHeights[row] = h
		}
	}

	rowY := make([]float64, rows)
	y := 0.0
	for r := 0; r < rows; r++ {
		rowY[r] = y
		y += rowHeights[r] + p.props.Gap
	}

	for i, c := range p.children {
		if _, err := p.store.Get(c.Handle); err != nil {
			continue
		}
		col := i % cols
		row := i / cols
		span := c.ColSpan
		if span < 1 {
			span = 1
		}
		if col+span > cols {
			span = cols - col
		}
		width := cellWidth*float64(span) + p.props.Gap*float64(span-1) - c.Margin.Horizontal()
		if width < 0 {
			width = 0
		}
		height := rowHeights[row] - c.Margin.Vertical()
		if height < 0 {
			height = 0
		}
		p.cache.ChildBounds[i] = rendering.Rect{
			X:      content.X + float64(col)*(cellWidth+p.props.Gap) + c.Margin.Left,
			Y:      content.Y + rowY[row] + c.Margin.Top,
			Width:  width,
			Height: height,
		}
	}

	totalHeight := 0.0
	for _, h := range rowHeights {
		totalHeight += h
	}
	totalHeight += p.props.Gap * float64(rows-1)
	p.cache.ContentSize = rendering.Size{Width: content.Width, Height: totalHeight}
}

// layoutAbsolute applies each child's override rectangle offset by the
// content origin; children without one keep their current bounds.
func (p *Panel) layoutAbsolute(content rendering.Rect) {
	maxRight, maxBottom := 0.0, 0.0
	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		var rect rendering.Rect
		if c.Absolute != nil {
			rect = c.Absolute.Translate(content.X, content.Y)
		} else {
			rect = w.Bounds()
		}
		p.cache.ChildBounds[i] = rect
		if r := rect.Right() - content.X; r > maxRight {
			maxRight = r
		}
		if b := rect.Bottom() - content.Y; b > maxBottom {
			maxBottom = b
		}
	}
	p.cache.ContentSize = rendering.Size{Width: maxRight, Height: maxBottom}
}

// layoutFlex distributes the main axis: fixed children take their basis (or
// measured size), growable children split the remaining space by grow
// weight. The cross axis stretches to the content extent minus margins.
func (p *Panel) layoutFlex(content rendering.Rect) {
	row := p.props.Direction == FlexRow
	main := content.Width
	if !row {
		main = content.Height
	}

	type flexEntry struct {
		index  int
		widget Widget
		info   ChildInfo
		size   float64
	}
	entries := make([]flexEntry, 0, len(p.children))
	totalFixed := 0.0
	totalGrow := 0.0
	for i, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		e := flexEntry{index: i, widget: w, info: c}
		if c.FlexGrow > 0 {
			totalGrow += c.FlexGrow
		} else {
			if c.FlexBasis > 0 {
				e.size = c.FlexBasis
			} else if row {
				e.size = p.measureChild(w, rendering.Size{Height: content.Height}).Width
			} else {
				e.size = p.measureChild(w, rendering.Size{Width: content.Width}).Height
			}
			totalFixed += e.size
		}
		entries = append(entries, e)
	}

	margins := 0.0
	for _, e := range entries {
		if row {
			margins += e.info.Margin.Horizontal()
		} else {
			margins += e.info.Margin.Vertical()
		}
	}
	gaps := 0.0
	if len(entries) > 1 {
		gaps = p.props.Gap * float64(len(entries)-1)
	}

	available := main - totalFixed - margins - gaps
	if available < 0 {
		available = 0
	}
	flexUnit := 0.0
	if totalGrow > 0 {
		flexUnit = available / totalGrow
	}

	cursor := 0.0
	crossMax := 0.0
	for j := range entries {
		e := &entries[j]
		if e.info.FlexGrow > 0 {
			e.size = e.info.FlexGrow * flexUnit
		}
		if j > 0 {
			cursor += p.props.Gap
		}
		var rect rendering.Rect
		if row {
			height := content.Height - e.info.Margin.Vertical()
			if height < 0 {
				height = 0
			}
			rect = rendering.Rect{
				X:      content.X + cursor + e.info.Margin.Left,
				Y:      content.Y + e.info.Margin.Top,
				Width:  e.size,
				Height: height,
			}
			cursor += e.info.Margin.Horizontal() + e.size
			if extent := height + e.info.Margin.Vertical(); extent > crossMax {
				crossMax = extent
			}
		} else {
			width := content.Width - e.info.Margin.Horizontal()
			if width < 0 {
				width = 0
			}
			rect = rendering.Rect{
				X:      content.X + e.info.Margin.Left,
				Y:      content.Y + cursor + e.info.Margin.Top,
				Width:  width,
				Height: e.size,
			}
			cursor += e.info.Margin.Vertical() + e.size
			if extent := width + e.info.Margin.Horizontal(); extent > crossMax {
				crossMax = extent
			}
		}
		p.cache.ChildBounds[e.index] = rect
	}

	if row {
		p.cache.ContentSize = rendering.Size{Width: cursor, Height: crossMax}
	} else {
		p.cache.ContentSize = rendering.Size{Width: crossMax, Height: cursor}
	}
}

// ScrollPosition returns the current scroll offsets.
func (p *Panel) ScrollPosition() (x, y float64) { return p.scrollX, p.scrollY }

// SetScrollPosition moves the viewport. The position is clamped per axis to
// [0, max(0, content - viewport)] whatever the requested value.
func (p *Panel) SetScrollPosition(x, y float64) {
	maxX, maxY := p.maxScroll()
	x = clampFloat(x, 0, maxX)
	y = clampFloat(y, 0, maxY)
	if x == p.scrollX && y == p.scrollY {
		return
	}
	p.scrollX = x
	p.scrollY = y
	p.MarkDirty()
	for _, fn := range p.scrollListeners {
		fn(x, y)
	}
}

// OnScroll registers a listener invoked with the new offsets after every
// scroll change.
func (p *Panel) OnScroll(fn func(x, y float64)) {
	p.scrollListeners = append(p.scrollListeners, fn)
}

func (p *Panel) maxScroll() (x, y float64) {
	viewport := p.contentRect()
	x = math.Max(0, p.cache.ContentSize.Width-viewport.Width)
	y = math.Max(0, p.cache.ContentSize.Height-viewport.Height)
	return x, y
}

func (p *Panel) clampScroll() {
	p.SetScrollPosition(p.scrollX, p.scrollY)
}

func (p *Panel) scrollStep() float64 {
	if p.props.ScrollStep > 0 {
		return p.props.ScrollStep
	}
	return defaultScrollStep
}

// HandlePointerEvent dispatches into children first, translating the event
// by the scroll offset so hit testing happens in content space, then falls
// back to the panel's own scroll gestures.
func (p *Panel) HandlePointerEvent(ev events.PointerEvent) bool {
	inside := p.bounds.Contains(ev.X, ev.Y)
	childEv := ev.Translated(p.scrollX, p.scrollY)

	switch ev.Phase {
	case events.PointerDown:
		if inside && p.dispatchToChildren(childEv, true) {
			return true
		}
		if inside && p.props.Scrollable {
			p.dragging = true
			p.lastDragX = ev.X
			p.lastDragY = ev.Y
			return true
		}
		// Presses outside still reach children so focused inputs can
		// release focus.
		if !inside {
			p.dispatchToChildren(childEv, false)
		}
		return false

	case events.PointerMove:
		handled := p.dispatchToChildren(childEv, false)
		if p.dragging {
			p.SetScrollPosition(
				p.scrollX-(ev.X-p.lastDragX),
				p.scrollY-(ev.Y-p.lastDragY),
			)
			p.lastDragX = ev.X
			p.lastDragY = ev.Y
			return true
		}
		return handled

	case events.PointerUp:
		handled := p.dispatchToChildren(childEv, false)
		if p.dragging {
			p.dragging = false
			return true
		}
		return handled

	case events.PointerScroll:
		if inside && p.dispatchToChildren(childEv, true) {
			return true
		}
		if inside && p.props.Scrollable {
			p.SetScrollPosition(
				p.scrollX+ev.ScrollX*p.scrollStep(),
				p.scrollY+ev.ScrollY*p.scrollStep(),
			)
			return true
		}
		return false
	}
	return false
}

// dispatchToChildren forwards ev to each resolvable child. With firstWins
// the walk stops at the first consumer; otherwise every child observes the
// event, which keeps hover and press-release state coherent across siblings.
func (p *Panel) dispatchToChildren(ev events.PointerEvent, firstWins bool) bool {
	handled := false
	for _, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		if w.HandlePointerEvent(ev) {
			handled = true
			if firstWins {
				return true
			}
		}
	}
	return handled
}

// HandleKeyEvent forwards the key to children until one consumes it. Only
// widgets holding focus act on keys, so the walk reaches the focused
// descendant through any nesting.
func (p *Panel) HandleKeyEvent(ev events.KeyEvent) bool {
	for _, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		if w.HandleKeyEvent(ev) {
			return true
		}
	}
	return false
}

// Update advances time for every child.
func (p *Panel) Update(dt float64) {
	for _, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		w.Update(dt)
		if w.IsDirty() {
			p.MarkDirty()
		}
	}
}

// Paint runs a pending layout pass, draws the panel chrome, then the
// children offset by the scroll position under an optional clip, then the
// scrollbar thumbs outside the clip. The clip push and pop are balanced on
// every exit path. Renderer errors propagate unchanged.
func (p *Panel) Paint(r rendering.Renderer, style *theme.Style) error {
	if style == nil {
		style = theme.Default()
	}
	p.Layout()

	if err := r.FillRect(p.bounds, style.BackgroundColor); err != nil {
		return err
	}
	if style.BorderWidth > 0 {
		if err := r.DrawRectBorder(p.bounds, style.BorderColor, style.BorderWidth); err != nil {
			return err
		}
	}

	content := p.contentRect()
	if p.props.ClipContent {
		r.PushClipRect(content)
	}
	err := p.paintChildren(r, style)
	if p.props.ClipContent {
		r.PopClipRect()
	}
	if err != nil {
		return err
	}
	return p.paintScrollbars(r, style, content)
}

// paintChildren draws each child at its cached rectangle shifted by the
// scroll offset. Bounds are restored afterward so layout stays in content
// space.
func (p *Panel) paintChildren(r rendering.Renderer, style *theme.Style) error {
	for _, c := range p.children {
		w, err := p.store.Get(c.Handle)
		if err != nil {
			continue
		}
		saved := w.Bounds()
		w.SetBounds(saved.Translate(-p.scrollX, -p.scrollY))
		paintErr := w.Paint(r, p.childStyle(w, style))
		w.SetBounds(saved)
		if paintErr != nil {
			return paintErr
		}
		w.ClearDirty()
	}
	return nil
}

// childStyle picks the themed style for a child's kind, or falls back to the
// panel's own style.
func (p *Panel) childStyle(w Widget, fallback *theme.Style) *theme.Style {
	t := p.props.Theme
	if t == nil {
		return fallback
	}
	switch w.Kind() {
	case KindButton:
		if t.Button != nil {
			return t.Button
		}
	case KindTextInput:
		if t.TextInput != nil {
			return t.TextInput
		}
	case KindPanel:
		if t.Panel != nil {
			return t.Panel
		}
	}
	return fallback
}

// paintScrollbars draws thumb rectangles sized by the viewport-to-content
// ratio and placed by the scroll fraction. Nothing is drawn on an axis
// whose content fits the viewport.
func (p *Panel) paintScrollbars(r rendering.Renderer, style *theme.Style, viewport rendering.Rect) error {
	if !p.props.Scrollable {
		return nil
	}
	maxX, maxY := p.maxScroll()
	thumbColor := style.BorderColor.Lighten(0.3)

	if maxY > 0 && p.cache.ContentSize.Height > 0 {
		ratio := viewport.Height / p.cache.ContentSize.Height
		thumbH := math.Max(minScrollbarExtent, viewport.Height*ratio)
		track := viewport.Height - thumbH
		thumbY := viewport.Y + track*(p.scrollY/maxY)
		thumb := rendering.Rect{
			X:      p.bounds.Right() - scrollbarThickness,
			Y:      thumbY,
			Width:  scrollbarThickness,
			Height: thumbH,
		}
		if err := r.FillRect(thumb, thumbColor); err != nil {
			return err
		}
	}
	if maxX > 0 && p.cache.ContentSize.Width > 0 {
		ratio := viewport.Width / p.cache.ContentSize.Width
		thumbW := math.Max(minScrollbarExtent, viewport.Width*ratio)
		track := viewport.Width - thumbW
		thumbX := viewport.X + track*(p.scrollX/maxX)
		thumb := rendering.Rect{
			X:      thumbX,
			Y:      p.bounds.Bottom() - scrollbarThickness,
			Width:  thumbW,
			Height: scrollbarThickness,
		}
		if err := r.FillRect(thumb, thumbColor); err != nil {
			return err
		}
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
