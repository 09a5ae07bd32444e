package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/session"
)

type fakeRasterizer struct {
	page  image.Image
	err   error
	calls int
}

func (f *fakeRasterizer) FirstPage(context.Context, string, int) (image.Image, error) {
	f.calls++
	return f.page, f.err
}

func newTestRunner(t *testing.T) (*Runner, *fakeRasterizer, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "sheet.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	fake := &fakeRasterizer{page: imaging.New(1654, 2339, color.NRGBA{R: 128, G: 128, B: 128, A: 255})}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	return NewRunner(nil, nil, fake, logger), fake, src
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pdf", false},
		{"svg", false},
		{"png", false},
		{"json", false},
		{"csv", false},
		{"invalid", true},
		{"PDF", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", o.Formats)
	}
	if o.Scale != DefaultPNGScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultPNGScale)
	}

	bad := Options{Formats: []string{"svg", "gif"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestImportGrid(t *testing.T) {
	r, fake, src := newTestRunner(t)
	p := plan.New(nil)

	res, err := r.ImportGrid(context.Background(), p, src, 7, []string{"Ada", "Grace"})
	if err != nil {
		t.Fatalf("ImportGrid() error: %v", err)
	}
	if res.Added != 7 || fake.calls != 1 {
		t.Errorf("Added = %d calls = %d, want 7 and 1", res.Added, fake.calls)
	}
	es := p.Entities()
	if es[0].Name != "Ada" || es[6].Name != "student_7" {
		t.Errorf("names = %q ... %q", es[0].Name, es[6].Name)
	}
	if b := es[3].Photo.Bounds(); b.Dx() != 236 || b.Dy() != 236 {
		t.Errorf("photo = %v, want 236x236", b)
	}
	if len(p.Board().Assignment()) != 7 {
		t.Errorf("placed = %d, want 7", len(p.Board().Assignment()))
	}
}

func TestImportGridProgress(t *testing.T) {
	r, _, src := newTestRunner(t)
	var last, calls int
	r.OnPhoto = func(done, total int) {
		calls++
		if total != 3 {
			t.Errorf("OnPhoto total = %d, want 3", total)
		}
		last = done
	}

	if _, err := r.ImportGrid(context.Background(), plan.New(nil), src, 3, nil); err != nil {
		t.Fatal(err)
	}
	if calls != 3 || last != 3 {
		t.Errorf("OnPhoto calls = %d last = %d, want 3 and 3", calls, last)
	}
}

func TestImportGridAbortsOnUnreadableSource(t *testing.T) {
	r, fake, src := newTestRunner(t)
	fake.err = errors.New(errors.ErrCodeSourceUnreadable, "broken")
	p := plan.New(nil)

	_, err := r.ImportGrid(context.Background(), p, src, 3, nil)
	if !errors.Is(err, errors.ErrCodeSourceUnreadable) {
		t.Errorf("ImportGrid() error = %v, want SOURCE_UNREADABLE", err)
	}
	if p.Board().Len() != 0 {
		t.Errorf("entities = %d, want 0", p.Board().Len())
	}
}

func TestImportFolder(t *testing.T) {
	r, _, _ := newTestRunner(t)
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg"} {
		if err := imaging.Save(imaging.New(30, 40, color.White), filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "c.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := plan.New(nil)
	res, err := r.ImportFolder(context.Background(), p, dir, nil)
	if err != nil {
		t.Fatalf("ImportFolder() error: %v", err)
	}
	if res.Added != 2 || len(res.Skipped) != 1 {
		t.Errorf("Added = %d Skipped = %d, want 2 and 1", res.Added, len(res.Skipped))
	}
	if got := p.Entities()[0].Name; got != "a" {
		t.Errorf("first name = %q, want a", got)
	}
}

func TestOpenRecoversMissingPhotos(t *testing.T) {
	r, fake, src := newTestRunner(t)
	ctx := context.Background()
	p := plan.New(nil)
	p.Class, p.Room = "3A", "T121"
	if _, err := r.ImportGrid(ctx, p, src, 3, nil); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := r.Save(ctx, p, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := os.Remove(session.AssetsPath(path)); err != nil {
		t.Fatal(err)
	}

	// Add an entity whose source is gone.
	var f session.File
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	gone := filepath.Join(t.TempDir(), "gone.png")
	f.Students = append(f.Students, session.Student{Name: "Ghost", Source: &gone, FontSize: 12})
	data, _ = json.Marshal(f)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	fake.calls = 0
	q, res, err := r.Open(ctx, layout.NewRegistry(), path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if res.Entities != 4 || res.Recovered != 3 || res.Placeholders != 1 {
		t.Errorf("Open() = %+v, want 4 entities, 3 recovered, 1 placeholder", res)
	}
	if fake.calls != 3 {
		t.Errorf("rasterizer calls = %d, want 3 (null cache)", fake.calls)
	}
	if q.Class != "3A" {
		t.Errorf("Class = %q", q.Class)
	}
	for _, e := range q.Entities() {
		if e.Photo == nil {
			t.Errorf("%s has no photo", e.Name)
		}
	}
	ghost := q.Entities()[3]
	if ghost.Photo.Bounds().Dx() != q.Base().SeatSize {
		t.Errorf("placeholder side = %d, want seat size %d", ghost.Photo.Bounds().Dx(), q.Base().SeatSize)
	}
}

func TestOpenReportsInvalidCustomLayout(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx := context.Background()
	p := plan.New(nil)
	if err := p.SetCustom(layout.Regular{Rows: 2, Banks: 2, Seats: 2}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := r.Save(ctx, p, path); err != nil {
		t.Fatal(err)
	}

	// Break the saved layout by hand.
	var f session.File
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	f.CustomLayout.Rows = 0
	data, _ = json.Marshal(f)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	q, res, err := r.Open(ctx, layout.NewRegistry(), path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeInvalidLayout) {
		t.Errorf("Warnings = %v, want one INVALID_LAYOUT", res.Warnings)
	}
	if q.LayoutName() != layout.CustomName {
		t.Errorf("LayoutName() = %q, want %q", q.LayoutName(), layout.CustomName)
	}
}

func TestOpenMissingSession(t *testing.T) {
	r, _, _ := newTestRunner(t)
	_, _, err := r.Open(context.Background(), nil, filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Open() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderFormats(t *testing.T) {
	r, _, src := newTestRunner(t)
	ctx := context.Background()
	p := plan.New(nil)
	p.Class, p.Room = "3A", "T121"
	if _, err := r.ImportGrid(ctx, p, src, 2, []string{"Ada", "Grace"}); err != nil {
		t.Fatal(err)
	}

	res, err := r.Render(ctx, p, Options{Formats: []string{FormatJSON, FormatCSV, FormatSVG}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Stats.Seats != 30 || res.Stats.Placed != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if !strings.Contains(string(res.Artifacts[FormatCSV]), "1,Ada,") {
		t.Errorf("csv = %q", res.Artifacts[FormatCSV])
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "Class 3A — Room T121") {
		t.Error("svg should contain the title")
	}
	var out struct {
		Layout string `json:"layout"`
		Seats  []struct {
			Name string `json:"name"`
		} `json:"seats"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &out); err != nil {
		t.Fatal(err)
	}
	if out.Layout != p.LayoutName() || len(out.Seats) != 30 || out.Seats[1].Name != "Grace" {
		t.Errorf("json layout = %q seats = %d", out.Layout, len(out.Seats))
	}
}

func TestOutputPaths(t *testing.T) {
	p := plan.New(nil)
	p.Class, p.Room = "3A", "T121"

	paths := OutputPaths(p, "", []string{"pdf", "png"})
	if paths["pdf"] != "3A_T121.pdf" || paths["png"] != "3A_T121.png" {
		t.Errorf("default paths = %v", paths)
	}
	paths = OutputPaths(p, "out/plan.pdf", []string{"svg"})
	if paths["svg"] != "out/plan.svg" {
		t.Errorf("paths = %v", paths)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	res := &Result{Artifacts: map[string][]byte{"json": []byte("{}"), "csv": []byte("x")}}
	paths := map[string]string{"json": filepath.Join(dir, "a.json"), "csv": filepath.Join(dir, "a.csv")}

	written, err := WriteArtifacts(res, paths, []string{"csv", "json", "pdf"})
	if err != nil {
		t.Fatalf("WriteArtifacts() error: %v", err)
	}
	if len(written) != 2 || written[0] != paths["csv"] {
		t.Errorf("written = %v", written)
	}
}
