// Package fonts provides the embedded fonts used to measure and draw labels.
//
// The Go font family ships with golang.org/x/image, so the same glyph
// metrics are available to the measurer, the PNG rasteriser and (through
// an embedded @font-face) the SVG output without any system fonts.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style selects one of the four embedded faces.
type Style struct {
	Bold   bool
	Italic bool
}

// TTF returns the raw TrueType data for s.
func TTF(s Style) []byte {
	switch {
	case s.Bold && s.Italic:
		return gobolditalic.TTF
	case s.Bold:
		return gobold.TTF
	case s.Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

var (
	parsedMu sync.Mutex
	parsed   = map[Style]*opentype.Font{}
)

// Font returns the parsed font for s. Parsing happens once per style.
func Font(s Style) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if f, ok := parsed[s]; ok {
		return f, nil
	}
	f, err := opentype.Parse(TTF(s))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	parsed[s] = f
	return f, nil
}

// Face returns a new face for s at size points and the given dpi.
// Faces are not safe for concurrent use; callers keep one per goroutine.
func Face(s Style, size, dpi float64) (font.Face, error) {
	f, err := Font(s)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// Cache for base64-encoded fonts (computed once per style).
var (
	b64Mu sync.Mutex
	b64   = map[Style]string{}
)

// Base64 returns the TTF data for s as a base64 string for inline
// @font-face rules.
func Base64(s Style) string {
	b64Mu.Lock()
	defer b64Mu.Unlock()

	if v, ok := b64[s]; ok {
		return v
	}
	v := base64.StdEncoding.EncodeToString(TTF(s))
	b64[s] = v
	return v
}

// FontFamily is the CSS font-family name under which the embedded fonts
// are declared.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for renderers that ignore @font-face.
const FallbackFontFamily = `'Go', 'DejaVu Sans', 'Helvetica Neue', Arial, sans-serif`
