package seating

import (
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/geometry"
)

// Unplaced is the slot value of an entity without a seat.
const Unplaced = -1

// Entity is a placeable person with a photo.
type Entity struct {
	ID   uuid.UUID
	Name string

	// Photo is the square thumbnail. It may be nil until loaded.
	Photo image.Image

	// Slot is the assigned slot index or Unplaced.
	Slot int

	// Source is the file the photo came from, if any.
	Source string
	// GridIndex is the cell index when Source is a multi-photo page.
	GridIndex *int
	// Asset is the thumbnail's file name inside a saved session container.
	Asset string

	// FontSize is the cached label size in points.
	FontSize int
}

// NewEntity returns an unplaced entity with a fresh ID.
func NewEntity(name string, photo image.Image) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Name:     name,
		Photo:    photo,
		Slot:     Unplaced,
		FontSize: geometry.FontMax,
	}
}

// Placed reports whether the entity occupies a slot below count.
func (e *Entity) Placed(count int) bool {
	return e.Slot >= 0 && e.Slot < count
}

// FromGrid reports whether the entity was cut from a multi-photo page.
func (e *Entity) FromGrid() bool {
	return e.Source != "" && e.GridIndex != nil
}

// DefaultName is the name given to the i-th (zero based) entity of an
// import when no name was supplied.
func DefaultName(i int) string {
	return fmt.Sprintf("student_%d", i+1)
}
