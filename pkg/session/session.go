// Package session saves and loads seat plans.
//
// A session is a UTF-8 JSON file holding the class, room, selected layout,
// the Custom layout and one record per entity, plus a sibling container
// "<base>_assets.zip" holding one PNG thumbnail per entity:
//
//	plan.json
//	plan_assets.zip
//	  0_Ada_Lovelace.png
//	  1_Grace_Hopper.png
//
// Entity IDs are not persisted; every load assigns fresh ones.
//
// Loading never fails because a thumbnail is missing. Entities whose image
// cannot be found or decoded come back with a nil Photo and their positions
// are reported, so callers can re-derive the photo from its source.
package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Session is the persisted state of a plan.
type Session struct {
	Class  string
	Room   string
	Layout string
	// Custom is the editable Custom layout, nil when not recorded or
	// invalid.
	Custom   layout.Config
	Entities []*seating.Entity
	// Warnings lists problems that did not stop the load, such as a saved
	// Custom layout that no longer validates.
	Warnings []error
}

// Student is the on-disk record of one entity.
type Student struct {
	Name        string  `json:"name"`
	Slot        *int    `json:"slot"`
	Source      *string `json:"source"`
	PDFIndex    *int    `json:"pdf_index"`
	FontSize    int     `json:"font_size"`
	ImgFilename string  `json:"img_filename"`
}

// File is the on-disk JSON document.
type File struct {
	Class        string           `json:"class"`
	Room         string           `json:"room"`
	Layout       string           `json:"layout"`
	CustomLayout *layout.Envelope `json:"custom_layout"`
	Students     []Student        `json:"students"`
}

// AssetsPath returns the asset container path for a session file:
// "plan.json" -> "plan_assets.zip".
func AssetsPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_assets.zip"
}

// AssetName returns the container file name of the i-th entity.
func AssetName(i int, name string) string {
	return fmt.Sprintf("%d_%s.png", i, SanitizeFilename(name))
}

// SanitizeFilename keeps ASCII letters, digits and "-_.()" and turns spaces
// into underscores. Everything else is dropped.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("-_.()", r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
