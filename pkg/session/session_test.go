package session

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/seating"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ada Lovelace", "Ada_Lovelace"},
		{"O'Brien", "OBrien"},
		{"Zoë (2)", "Zo_(2)"},
		{"a/b\\c", "abc"},
		{"x-y_z.1", "x-y_z.1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssetsPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plan.json", "plan_assets.zip"},
		{"/tmp/3A.json", "/tmp/3A_assets.zip"},
		{"noext", "noext_assets.zip"},
	}
	for _, tt := range tests {
		if got := AssetsPath(tt.in); got != tt.want {
			t.Errorf("AssetsPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssetName(t *testing.T) {
	if got := AssetName(3, "Ada Lovelace"); got != "3_Ada_Lovelace.png" {
		t.Errorf("AssetName() = %q", got)
	}
}

func solid(c uint8) image.Image {
	return imaging.New(20, 20, color.NRGBA{R: c, G: c, B: c, A: 255})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")

	idx := 4
	ada := seating.NewEntity("Ada Lovelace", solid(10))
	ada.Slot = 2
	ada.FontSize = 9
	ada.Source = "/photos/sheet.pdf"
	ada.GridIndex = &idx
	grace := seating.NewEntity("Grace", solid(200))
	loose := seating.NewEntity("Linus", nil)

	custom := layout.Irregular{Pattern: [][]int{{4}, {3, 3, 3}}, Orient: layout.Landscape}
	in := &Session{
		Class:    "3A",
		Room:     "T121",
		Layout:   layout.CustomName,
		Custom:   custom,
		Entities: []*seating.Entity{ada, grace, loose},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(AssetsPath(path)); err != nil {
		t.Fatalf("assets container missing: %v", err)
	}
	if ada.Asset != "0_Ada_Lovelace.png" {
		t.Errorf("Asset = %q after save", ada.Asset)
	}

	out, missing, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
	if out.Class != "3A" || out.Room != "T121" || out.Layout != layout.CustomName {
		t.Errorf("header = %q/%q/%q", out.Class, out.Room, out.Layout)
	}
	irr, ok := out.Custom.(layout.Irregular)
	if !ok {
		t.Fatalf("Custom = %T, want layout.Irregular", out.Custom)
	}
	if layout.FormatPattern(irr.Pattern) != "[4], [3, 3, 3]" || irr.Orientation() != layout.Landscape {
		t.Errorf("Custom = %+v", irr)
	}

	if len(out.Entities) != 3 {
		t.Fatalf("Entities = %d, want 3", len(out.Entities))
	}
	got := out.Entities[0]
	if got.Name != "Ada Lovelace" || got.Slot != 2 || got.FontSize != 9 {
		t.Errorf("entity 0 = %q slot %d font %d", got.Name, got.Slot, got.FontSize)
	}
	if got.Source != "/photos/sheet.pdf" || got.GridIndex == nil || *got.GridIndex != 4 {
		t.Errorf("entity 0 provenance = %q %v", got.Source, got.GridIndex)
	}
	if got.ID == ada.ID {
		t.Error("load should assign fresh IDs")
	}
	if got.Photo == nil || got.Photo.Bounds().Dx() != 20 {
		t.Fatalf("entity 0 photo not restored")
	}
	if r, _, _, _ := got.Photo.At(5, 5).RGBA(); r>>8 != 10 {
		t.Errorf("entity 0 photo red = %d, want 10", r>>8)
	}
	if out.Entities[1].Slot != seating.Unplaced {
		t.Errorf("entity 1 slot = %d, want unplaced", out.Entities[1].Slot)
	}
	// An entity saved without a photo gets a placeholder thumbnail.
	if out.Entities[2].Photo == nil {
		t.Error("entity 2 should have a placeholder photo")
	}
}

func TestLoadWithoutAssets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	doc := `{"class":"1B","room":"A1","layout":"Custom","custom_layout":null,
	"students":[{"name":"","slot":0,"source":null,"pdf_index":null,"font_size":0,"img_filename":"0_.png"},
	{"name":"Bo","slot":null,"source":"x.png","pdf_index":null,"font_size":8,"img_filename":"1_Bo.png"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, missing, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(missing) != 2 || missing[0] != 0 || missing[1] != 1 {
		t.Errorf("missing = %v, want [0 1]", missing)
	}
	if s.Custom != nil {
		t.Errorf("Custom = %v, want nil", s.Custom)
	}
	if s.Entities[0].Name != "student_1" {
		t.Errorf("fallback name = %q, want student_1", s.Entities[0].Name)
	}
	if s.Entities[0].FontSize != 12 {
		t.Errorf("default font = %d, want 12", s.Entities[0].FontSize)
	}
	if s.Entities[1].Source != "x.png" || s.Entities[1].GridIndex != nil {
		t.Errorf("entity 1 provenance = %q %v", s.Entities[1].Source, s.Entities[1].GridIndex)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = Load(bad)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("corrupt file error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadInvalidCustomLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	doc := `{"class": "3A", "room": "T117", "layout": "Custom",
		"custom_layout": {"regular": true, "rows": 0, "banks": 3, "seats": 2, "orientation": "portrait"},
		"students": [{"name": "Ada", "slot": 20, "source": null, "pdf_index": null, "font_size": 12, "img_filename": ""}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Custom != nil {
		t.Errorf("Custom = %v, want nil for an invalid layout", s.Custom)
	}
	if len(s.Warnings) != 1 || !errors.Is(s.Warnings[0], errors.ErrCodeInvalidLayout) {
		t.Errorf("Warnings = %v, want one INVALID_LAYOUT", s.Warnings)
	}
	if len(s.Entities) != 1 || s.Entities[0].Name != "Ada" {
		t.Errorf("entities not loaded alongside the warning: %v", s.Entities)
	}
}

func TestSaveFailureLeavesNoTemporaries(t *testing.T) {
	dir := t.TempDir()
	// The session path is a directory, so the final rename fails.
	path := filepath.Join(dir, "plan.json")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := &Session{Entities: []*seating.Entity{seating.NewEntity("Ada", solid(1))}}
	err := Save(path, s)
	if !errors.Is(err, errors.ErrCodePersistence) {
		t.Fatalf("Save() error = %v, want PERSISTENCE", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if name := e.Name(); name != "plan.json" && name != "plan_assets.zip" {
			t.Errorf("leftover file %q", name)
		}
	}
}
