package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/fonts"
	"github.com/matzehuels/seatplan/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	ids        bool
}

// WithBackground fills the page with a CSS color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithSlotIDs tags every placeholder and photo with id="slot-N" so the
// preview page can highlight seats.
func WithSlotIDs() SVGOption {
	return func(r *svgRenderer) { r.ids = true }
}

// RenderSVG renders the document as a standalone SVG.
func RenderSVG(doc render.Document, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2fpt" height="%.2fpt">`+"\n",
		doc.Page.W, doc.Page.H, doc.Page.W, doc.Page.H)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(doc.Title))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	s := &svgSurface{buf: &buf, doc: doc, ids: r.ids}
	for _, op := range doc.Ops {
		s.slot = op.Slot
		var err error
		switch op.Kind {
		case render.OpTitle, render.OpLabel:
			err = s.Text(op.Text, op.X, op.Y, op.FontSize)
		case render.OpBank, render.OpPlaceholder:
			err = s.Rect(op.X, op.Y, op.W, op.H, op.Dashed)
		case render.OpPhoto:
			err = s.Image(op.Image, op.X, op.Y, op.W, op.H)
		}
		if err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

type svgSurface struct {
	buf  *bytes.Buffer
	doc  render.Document
	ids  bool
	slot int
}

func (s *svgSurface) id() string {
	if !s.ids || s.slot < 0 {
		return ""
	}
	return fmt.Sprintf(` id="slot-%d"`, s.slot)
}

func (s *svgSurface) Rect(x, y, w, h float64, dashed bool) error {
	if dashed {
		fmt.Fprintf(s.buf, `  <rect%s class="seat" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#999" stroke-dasharray="2,2"/>`+"\n",
			s.id(), x, s.doc.FlipY(y, h), w, h)
		return nil
	}
	fmt.Fprintf(s.buf, `  <rect class="bank" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="black" stroke-width="1"/>`+"\n",
		x, s.doc.FlipY(y, h), w, h)
	return nil
}

func (s *svgSurface) Image(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return nil
	}
	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode photo: %w", err)
	}
	fmt.Fprintf(s.buf, `  <image%s class="photo" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		s.id(), x, s.doc.FlipY(y, h), w, h, base64.StdEncoding.EncodeToString(png.Bytes()))
	return nil
}

func (s *svgSurface) Text(str string, cx, y, size float64) error {
	fmt.Fprintf(s.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-weight="bold" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
		cx, s.doc.Page.H-y, html.EscapeString(fonts.FallbackFamily), size, html.EscapeString(str))
	return nil
}

var _ render.Surface = (*svgSurface)(nil)
