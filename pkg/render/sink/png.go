package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/seatplan/pkg/fonts"
	"github.com/matzehuels/seatplan/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the document. One point maps to scale pixels.
func RenderPNG(doc render.Document, opts ...PNGOption) ([]byte, error) {
	dc, err := draw(doc, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws the document into an image.
func Rasterize(doc render.Document, opts ...PNGOption) (image.Image, error) {
	dc, err := draw(doc, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func draw(doc render.Document, opts []PNGOption) (*gg.Context, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w := int(doc.Page.W*r.scale + 0.5)
	h := int(doc.Page.H*r.scale + 0.5)
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	s := &pngSurface{dc: dc, doc: doc, scale: r.scale}
	if err := doc.Draw(s); err != nil {
		return nil, err
	}
	return dc, nil
}

type pngSurface struct {
	dc    *gg.Context
	doc   render.Document
	scale float64
	size  float64
}

func (s *pngSurface) Rect(x, y, w, h float64, dashed bool) error {
	k := s.scale
	s.dc.DrawRectangle(x*k, s.doc.FlipY(y, h)*k, w*k, h*k)
	if dashed {
		s.dc.SetRGB255(153, 153, 153)
		s.dc.SetDash(2*k, 2*k)
	} else {
		s.dc.SetRGB(0, 0, 0)
		s.dc.SetDash()
	}
	s.dc.SetLineWidth(k)
	s.dc.Stroke()
	s.dc.SetDash()
	return nil
}

func (s *pngSurface) Image(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return nil
	}
	k := s.scale
	b := img.Bounds()
	s.dc.Push()
	s.dc.Translate(x*k, s.doc.FlipY(y, h)*k)
	s.dc.Scale(w*k/float64(b.Dx()), h*k/float64(b.Dy()))
	s.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	s.dc.Pop()
	return nil
}

func (s *pngSurface) Text(str string, cx, y, size float64) error {
	if size != s.size {
		face, err := fonts.NewFace(size * s.scale)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		s.dc.SetFontFace(face)
		s.size = size
	}
	s.dc.SetRGB(0, 0, 0)
	s.dc.DrawStringAnchored(str, cx*s.scale, (s.doc.Page.H-y)*s.scale, 0.5, 0)
	return nil
}

var _ render.Surface = (*pngSurface)(nil)
