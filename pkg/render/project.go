package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/fonts"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/seating"
)

const (
	titleSize   = 20
	titleOffset = 36
	// labelDrop is the distance from the caption gap to the label baseline.
	labelDrop = 12

	defaultOversample = 2
)

// PlaceholderColor fills the photo of an entity whose image is missing.
var PlaceholderColor = color.NRGBA{R: 240, G: 240, B: 240, A: 255}

// Option configures projection.
type Option func(*projector)

type projector struct {
	class, room string
	oversample  int
	photos      bool
}

// WithTitle sets the class and room shown in the title line.
func WithTitle(class, room string) Option {
	return func(p *projector) { p.class, p.room = class, room }
}

// WithOversample sets the photo resampling factor (default 2).
func WithOversample(n int) Option {
	return func(p *projector) { p.oversample = max(1, n) }
}

// WithoutPhotos projects labels only; photo ops carry no image. Used by
// exports that only need placement.
func WithoutPhotos() Option {
	return func(p *projector) { p.photos = false }
}

// Title formats the page title.
func Title(class, room string) string {
	return fmt.Sprintf("Class %s — Room %s", class, room)
}

// Project maps the canonical geometry base and the placement of entities
// into a print-space document. Entities without a valid slot are not drawn.
func Project(base geometry.Geometry, entities []*seating.Entity, opts ...Option) Document {
	p := projector{oversample: defaultOversample, photos: true}
	for _, opt := range opts {
		opt(&p)
	}

	page := base.Page
	doc := Document{
		Page:     page,
		Title:    Title(p.class, p.room),
		SeatSize: base.SeatSize,
		Ops:      make([]Op, 0, 1+len(base.Banks)+2*len(base.Slots)),
	}
	doc.Ops = append(doc.Ops, Op{
		Kind:     OpTitle,
		X:        page.W / 2,
		Y:        page.H - titleOffset,
		Text:     doc.Title,
		FontSize: titleSize,
		Slot:     -1,
	})

	for _, b := range base.Banks {
		doc.Ops = append(doc.Ops, Op{
			Kind: OpBank,
			X:    b.X,
			Y:    page.H - b.Bottom(),
			W:    b.W,
			H:    b.H,
			Slot: -1,
		})
	}

	occupant := make(map[int]*seating.Entity, len(entities))
	for _, e := range entities {
		if e.Placed(len(base.Slots)) {
			occupant[e.Slot] = e
		}
	}

	for _, s := range base.Slots {
		if _, ok := occupant[s.Index]; ok {
			continue
		}
		doc.Ops = append(doc.Ops, Op{
			Kind:   OpPlaceholder,
			X:      s.X,
			Y:      page.H - s.Bottom(),
			W:      s.W,
			H:      s.H,
			Dashed: true,
			Slot:   s.Index,
		})
	}

	for _, s := range base.Slots {
		e, ok := occupant[s.Index]
		if !ok {
			continue
		}
		photo := Op{
			Kind:   OpPhoto,
			X:      s.X,
			Y:      page.H - s.Bottom(),
			W:      s.W,
			H:      s.H,
			Slot:   s.Index,
			Entity: e.ID.String(),
		}
		if p.photos {
			photo.Image = resample(e.Photo, int(s.W)*p.oversample)
		}
		doc.Ops = append(doc.Ops, photo, Op{
			Kind:     OpLabel,
			X:        s.CenterX(),
			Y:        page.H - (s.Bottom() + geometry.CaptionGap + labelDrop),
			Text:     e.Name,
			FontSize: float64(fonts.ClampSize(e.FontSize)),
			Slot:     s.Index,
			Entity:   e.ID.String(),
		})
	}
	return doc
}

// resample scales img to a side×side square with Lanczos filtering. A nil
// image becomes a flat placeholder.
func resample(img image.Image, side int) image.Image {
	side = max(1, side)
	if img == nil {
		return Placeholder(side)
	}
	return imaging.Resize(img, side, side, imaging.Lanczos)
}

// Placeholder returns a flat side×side placeholder photo.
func Placeholder(side int) *image.NRGBA {
	return imaging.New(max(1, side), max(1, side), PlaceholderColor)
}
