package sink

import (
	"encoding/json"

	"github.com/matzehuels/seatplan/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	layout string
	class  string
	room   string
}

// WithJSONLayout records the layout name.
func WithJSONLayout(name string) JSONOption { return func(r *jsonRenderer) { r.layout = name } }

// WithJSONClass records the class and room.
func WithJSONClass(class, room string) JSONOption {
	return func(r *jsonRenderer) { r.class, r.room = class, room }
}

type jsonOutput struct {
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Title    string     `json:"title"`
	Class    string     `json:"class,omitempty"`
	Room     string     `json:"room,omitempty"`
	Layout   string     `json:"layout,omitempty"`
	SeatSize int        `json:"seat_size"`
	Banks    []jsonRect `json:"banks"`
	Seats    []jsonSeat `json:"seats"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonSeat struct {
	Slot     int     `json:"slot"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Entity   string  `json:"entity,omitempty"`
	Name     string  `json:"name,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
}

// RenderJSON exports page size, banks and seats in print coordinates.
// Seats are ordered by slot index; occupied seats carry the entity's ID,
// name and label size.
func RenderJSON(doc render.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    doc.Page.W,
		Height:   doc.Page.H,
		Title:    doc.Title,
		Class:    r.class,
		Room:     r.room,
		Layout:   r.layout,
		SeatSize: doc.SeatSize,
		Banks:    []jsonRect{},
	}

	seats := map[int]*jsonSeat{}
	for _, op := range doc.Ops {
		switch op.Kind {
		case render.OpBank:
			out.Banks = append(out.Banks, jsonRect{X: op.X, Y: op.Y, Width: op.W, Height: op.H})
		case render.OpPlaceholder, render.OpPhoto:
			seats[op.Slot] = &jsonSeat{Slot: op.Slot, X: op.X, Y: op.Y, Width: op.W, Height: op.H, Entity: op.Entity}
		case render.OpLabel:
			if s, ok := seats[op.Slot]; ok {
				s.Name = op.Text
				s.FontSize = op.FontSize
			}
		}
	}
	out.Seats = make([]jsonSeat, 0, len(seats))
	for i := 0; len(out.Seats) < len(seats); i++ {
		if s, ok := seats[i]; ok {
			out.Seats = append(out.Seats, *s)
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
