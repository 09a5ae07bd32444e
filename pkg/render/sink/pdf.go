package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/fonts"
	"github.com/matzehuels/seatplan/pkg/render"
)

const pdfFont = "GoBold"

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	producer string
	compress bool
}

// WithProducer sets the PDF producer field.
func WithProducer(p string) PDFOption {
	return func(r *pdfRenderer) { r.producer = p }
}

// WithoutCompression writes uncompressed content streams, which is handy
// when inspecting output by hand.
func WithoutCompression() PDFOption {
	return func(r *pdfRenderer) { r.compress = false }
}

// RenderPDF renders the document as a single-page PDF.
func RenderPDF(doc render.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{producer: buildinfo.UserAgent(), compress: true}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr:        "pt",
		OrientationStr: "P",
		Size:           fpdf.SizeType{Wd: doc.Page.W, Ht: doc.Page.H},
	})
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetProducer(r.producer, true)
	pdf.SetTitle(doc.Title, true)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fonts.BoldTTF())
	pdf.AddPage()
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(0, 0, 0)

	s := &pdfSurface{pdf: pdf, doc: doc}
	if err := doc.Draw(s); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfSurface converts print coordinates to fpdf's top-left origin.
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	doc    render.Document
	images int
}

func (s *pdfSurface) Rect(x, y, w, h float64, dashed bool) error {
	if dashed {
		s.pdf.SetDrawColor(153, 153, 153)
		s.pdf.SetDashPattern([]float64{2, 2}, 0)
	}
	s.pdf.Rect(x, s.doc.FlipY(y, h), w, h, "D")
	if dashed {
		s.pdf.SetDashPattern([]float64{}, 0)
		s.pdf.SetDrawColor(0, 0, 0)
	}
	return s.pdf.Error()
}

func (s *pdfSurface) Image(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode photo: %w", err)
	}
	s.images++
	name := fmt.Sprintf("photo-%d", s.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	s.pdf.ImageOptions(name, x, s.doc.FlipY(y, h), w, h, false, opts, 0, "")
	return s.pdf.Error()
}

func (s *pdfSurface) Text(str string, cx, y, size float64) error {
	s.pdf.SetFont(pdfFont, "B", size)
	w := s.pdf.GetStringWidth(str)
	s.pdf.Text(cx-w/2, s.doc.Page.H-y, str)
	return s.pdf.Error()
}

var _ render.Surface = (*pdfSurface)(nil)
