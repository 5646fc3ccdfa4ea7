// Package theme supplies the style data widgets consume during layout and
// paint. A Style is read-only from the widget layer's point of view; hosts
// build one in code or load a Theme from YAML.
package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/rendering"
)

// Style holds the visual fields consumed during layout and paint.
type Style struct {
	BackgroundColor rendering.Color
	TextColor       rendering.Color
	BorderColor     rendering.Color
	BorderWidth     float64
	Padding         rendering.EdgeInsets
	FontSize        float64
}

// Default returns the fallback style applied when a widget has none.
func Default() *Style {
	return &Style{
		BackgroundColor: rendering.RGB(0x3A, 0x3D, 0x41),
		TextColor:       rendering.ColorWhite,
		BorderColor:     rendering.RGB(0x5A, 0x5D, 0x61),
		BorderWidth:     1,
		Padding:         rendering.EdgeInsetsSymmetric(8, 4),
		FontSize:        14,
	}
}

// Theme is a named set of per-widget styles, loadable from YAML.
type Theme struct {
	Name      string `yaml:"name"`
	Button    *Style `yaml:"-"`
	TextInput *Style `yaml:"-"`
	Panel     *Style `yaml:"-"`
}

// styleDoc is the YAML shape of a Style. Colors are hex strings
// ("#RRGGBB" or "#AARRGGBB"); missing fields keep the default value.
type styleDoc struct {
	Background  string    `yaml:"background"`
	Text        string    `yaml:"text"`
	Border      string    `yaml:"border"`
	BorderWidth *float64  `yaml:"border_width"`
	Padding     []float64 `yaml:"padding"`
	FontSize    *float64  `yaml:"font_size"`
}

type themeDoc struct {
	Name      string    `yaml:"name"`
	Button    *styleDoc `yaml:"button"`
	TextInput *styleDoc `yaml:"text_input"`
	Panel     *styleDoc `yaml:"panel"`
}

// Parse decodes a theme from YAML. Widgets without a section fall back to
// Default(); fields missing inside a section keep the default value.
func Parse(data []byte) (*Theme, error) {
	var doc themeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Report(&errors.UIError{
			Op:   "theme.Parse",
			Kind: errors.KindConfig,
			Err:  err,
		})
	}
	t := &Theme{Name: doc.Name}
	var err error
	if t.Button, err = applyDoc(doc.Button); err != nil {
		return nil, errors.Report(&errors.UIError{Op: "theme.Parse", Kind: errors.KindConfig, Err: err})
	}
	if t.TextInput, err = applyDoc(doc.TextInput); err != nil {
		return nil, errors.Report(&errors.UIError{Op: "theme.Parse", Kind: errors.KindConfig, Err: err})
	}
	if t.Panel, err = applyDoc(doc.Panel); err != nil {
		return nil, errors.Report(&errors.UIError{Op: "theme.Parse", Kind: errors.KindConfig, Err: err})
	}
	return t, nil
}

// Load reads and parses a theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Report(&errors.UIError{
			Op:   "theme.Load",
			Kind: errors.KindConfig,
			Err:  err,
		})
	}
	return Parse(data)
}

// applyDoc overlays a styleDoc on the default style.
func applyDoc(doc *styleDoc) (*Style, error) {
	s := Default()
	if doc == nil {
		return s, nil
	}
	if doc.Background != "" {
		c, err := parseColor(doc.Background)
		if err != nil {
			return nil, err
		}
		s.BackgroundColor = c
	}
	if doc.Text != "" {
		c, err := parseColor(doc.Text)
		if err != nil {
			return nil, err
		}
		s.TextColor = c
	}
	if doc.Border != "" {
		c, err := parseColor(doc.Border)
		if err != nil {
			return nil, err
		}
		s.BorderColor = c
	}
	if doc.BorderWidth != nil {
		s.BorderWidth = *doc.BorderWidth
	}
	if doc.FontSize != nil {
		s.FontSize = *doc.FontSize
	}
	switch len(doc.Padding) {
	case 0:
	case 1:
		s.Padding = rendering.EdgeInsetsAll(doc.Padding[0])
	case 2:
		s.Padding = rendering.EdgeInsetsSymmetric(doc.Padding[0], doc.Padding[1])
	case 4:
		s.Padding = rendering.EdgeInsets{
			Left: doc.Padding[0], Top: doc.Padding[1],
			Right: doc.Padding[2], Bottom: doc.Padding[3],
		}
	default:
		return nil, fmt.Errorf("padding wants 1, 2 or 4 values, got %d", len(doc.Padding))
	}
	return s, nil
}

// parseColor decodes "#RRGGBB" or "#AARRGGBB" into an ARGB color.
func parseColor(s string) (rendering.Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	var v uint32
	for _, ch := range []byte(hex) {
		var d uint32
		switch {
		case ch >= '0' && ch <= '9':
			d = uint32(ch - '0')
		case ch >= 'a' && ch <= 'f':
			d = uint32(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			d = uint32(ch-'A') + 10
		default:
			return 0, fmt.Errorf("color %q has invalid hex digit %q", s, ch)
		}
		v = v<<4 | d
	}
	switch len(hex) {
	case 6:
		return rendering.Color(0xFF000000 | v), nil
	case 8:
		return rendering.Color(v), nil
	}
	return 0, fmt.Errorf("color %q wants 6 or 8 hex digits", s)
}
