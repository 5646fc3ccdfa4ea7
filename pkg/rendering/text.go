package rendering

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer maps text to horizontal pixel extents. The text-edit widget
// uses it to place the caret, span the selection highlight, and keep the
// cursor visible when text overflows; the container layer uses it through
// Renderer.MeasureText for intrinsic sizing.
type TextMeasurer interface {
	// Advance returns the width in pixels of the full text run.
	Advance(text string, fontSize float64) float64

	// IndexForOffset returns the byte index whose caret position is nearest
	// to the horizontal offset x, clamped to [0, len(text)]. This is the
	// inverse of Advance over prefixes and drives click-to-position.
	IndexForOffset(text string, fontSize, x float64) int
}

// FixedMeasurer approximates every character as PixelsPerChar pixels wide,
// scaled by font size. It is a stand-in for hosts without a font stack;
// production hosts should supply a FaceMeasurer or their own measurer.
type FixedMeasurer struct {
	// PixelsPerChar is the advance at ReferenceSize. Defaults to 8.
	PixelsPerChar float64
	// ReferenceSize is the font size PixelsPerChar is calibrated for.
	// Zero means the advance does not scale with font size.
	ReferenceSize float64
}

func (m FixedMeasurer) perChar(fontSize float64) float64 {
	w := m.PixelsPerChar
	if w == 0 {
		w = 8
	}
	if m.ReferenceSize > 0 && fontSize > 0 {
		w *= fontSize / m.ReferenceSize
	}
	return w
}

// Advance returns len(text) times the per-character width.
func (m FixedMeasurer) Advance(text string, fontSize float64) float64 {
	return float64(len(text)) * m.perChar(fontSize)
}

// IndexForOffset returns the nearest caret index for x.
func (m FixedMeasurer) IndexForOffset(text string, fontSize, x float64) int {
	w := m.perChar(fontSize)
	if x <= 0 || w <= 0 {
		return 0
	}
	idx := int(x/w + 0.5)
	if idx > len(text) {
		idx = len(text)
	}
	return idx
}

// FaceMeasurer measures text against a real font face. Advances are
// computed at the face's native size and scaled linearly to the requested
// font size, which is exact for the bitmap faces in golang.org/x/image and
// a close approximation for scalable faces rendered at FaceSize.
type FaceMeasurer struct {
	// Face is the font face used for measurement.
	Face font.Face
	// FaceSize is the pixel size Face is rendered at.
	FaceSize float64
}

// NewFaceMeasurer creates a measurer backed by the given face.
func NewFaceMeasurer(face font.Face, faceSize float64) *FaceMeasurer {
	return &FaceMeasurer{Face: face, FaceSize: faceSize}
}

// DefaultFaceMeasurer returns a measurer over the bundled basicfont face.
func DefaultFaceMeasurer() *FaceMeasurer {
	return NewFaceMeasurer(basicfont.Face7x13, 13)
}

func (m *FaceMeasurer) scale(fontSize float64) float64 {
	if m.FaceSize <= 0 || fontSize <= 0 {
		return 1
	}
	return fontSize / m.FaceSize
}

// Advance returns the measured width of text at the given font size.
func (m *FaceMeasurer) Advance(text string, fontSize float64) float64 {
	if m.Face == nil || text == "" {
		return 0
	}
	adv := font.MeasureString(m.Face, text)
	return fixedToPixels(adv) * m.scale(fontSize)
}

// IndexForOffset walks prefix advances and returns the caret index whose
// position is nearest to x.
func (m *FaceMeasurer) IndexForOffset(text string, fontSize, x float64) int {
	if x <= 0 || text == "" {
		return 0
	}
	prev := 0.0
	for i := 1; i <= len(text); i++ {
		w := m.Advance(text[:i], fontSize)
		if x < w {
			if x-prev < w-x {
				return i - 1
			}
			return i
		}
		prev = w
	}
	return len(text)
}

// fixedToPixels converts a 26.6 fixed-point value to float64 pixels.
func fixedToPixels(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
