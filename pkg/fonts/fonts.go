// Package fonts provides the label font and text measurement.
//
// Labels are set in Go Bold, which ships with golang.org/x/image, so PDF,
// SVG and PNG output measure and draw text with the same metrics on every
// machine. Sizes are in points; measurement runs at 72 DPI so one pixel is
// one point.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/seatplan/pkg/geometry"
)

// Family is the font family name used in SVG output.
const Family = "Go"

// FallbackFamily lists CSS fallbacks for viewers without the embedded font.
const FallbackFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// BoldTTF returns the Go Bold TrueType data.
func BoldTTF() []byte {
	return gobold.TTF
}

var (
	boldOnce sync.Once
	bold     *opentype.Font
	boldErr  error

	// faces are not safe for concurrent use; mu guards both the cache and
	// every measurement made with a cached face.
	mu    sync.Mutex
	faces = map[float64]font.Face{}
)

func parsed() (*opentype.Font, error) {
	boldOnce.Do(func() {
		bold, boldErr = opentype.Parse(gobold.TTF)
	})
	return bold, boldErr
}

// NewFace returns a new Go Bold face at size points. The caller owns it.
func NewFace(size float64) (font.Face, error) {
	f, err := parsed()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func cachedFace(size float64) (font.Face, error) {
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := NewFace(size)
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

// Measure returns the advance width of text at size points, kerning
// included.
func Measure(text string, size float64) float64 {
	mu.Lock()
	defer mu.Unlock()
	face, err := cachedFace(size)
	if err != nil {
		// 0.6em per rune is close to Go Bold's average advance.
		return float64(len([]rune(text))) * size * 0.6
	}
	return fixedToFloat(measureWithKern(face, text))
}

// FitSize returns the largest whole point size in [geometry.FontMin,
// geometry.FontMax] at which text fits in maxWidth. Text that does not fit
// even at FontMin gets FontMin.
func FitSize(text string, maxWidth float64) int {
	size := geometry.FontMax
	for size > geometry.FontMin && Measure(text, float64(size)) > maxWidth {
		size--
	}
	return size
}

// LabelWidth is the width a label may occupy under a seat of the given
// size.
func LabelWidth(seat float64) float64 {
	return float64(int(seat * 0.95))
}

// ClampSize limits a cached label size to the drawable range.
func ClampSize(size int) int {
	return max(geometry.FontMin, min(geometry.FontMax, size))
}

func measureWithKern(face font.Face, s string) fixed.Int26_6 {
	var advance fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			advance += face.Kern(prev, r)
		}
		if a, ok := face.GlyphAdvance(r); ok {
			advance += a
		}
		prev = r
	}
	return advance
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
