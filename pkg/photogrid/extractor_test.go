package photogrid

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
)

type fakeRasterizer struct {
	page  image.Image
	err   error
	calls int
}

func (f *fakeRasterizer) FirstPage(_ context.Context, _ string, _ int) (image.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sheet.pdf")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExtractAll(t *testing.T) {
	r := &fakeRasterizer{page: sheet(12)}
	x := NewExtractor(r, nil)
	src := writeSource(t, "%PDF-1.4 class 3A")

	imgs, err := x.ExtractAll(context.Background(), src, 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 12 {
		t.Fatalf("len = %d, want 12", len(imgs))
	}
	if r.calls != 1 {
		t.Errorf("rasterized %d times, want 1", r.calls)
	}
	for i, img := range imgs {
		b := img.Bounds()
		if got := img.At(b.Min.X+5, b.Min.Y+5); fmt.Sprint(got) != fmt.Sprint(cellColor(i)) {
			t.Errorf("photo %d color = %v, want %v", i, got, cellColor(i))
		}
	}
}

func TestExtractAllReportsEachPhoto(t *testing.T) {
	x := NewExtractor(&fakeRasterizer{page: sheet(4)}, nil)
	var steps []string
	x.OnPhoto = func(done, total int) { steps = append(steps, fmt.Sprintf("%d/%d", done, total)) }

	if _, err := x.ExtractAll(context.Background(), writeSource(t, "%PDF-1.4"), 4); err != nil {
		t.Fatal(err)
	}
	if got := fmt.Sprint(steps); got != "[1/4 2/4 3/4 4/4]" {
		t.Errorf("OnPhoto calls = %s, want [1/4 2/4 3/4 4/4]", got)
	}
}

func TestExtractAllSourceUnreadable(t *testing.T) {
	r := &fakeRasterizer{err: errors.New(errors.ErrCodeSourceUnreadable, "broken pdf")}
	x := NewExtractor(r, nil)

	imgs, err := x.ExtractAll(context.Background(), writeSource(t, "junk"), 5)
	if !errors.Is(err, errors.ErrCodeSourceUnreadable) {
		t.Errorf("error = %v, want SOURCE_UNREADABLE", err)
	}
	if imgs != nil {
		t.Errorf("got %d photos from an unreadable source", len(imgs))
	}

	_, err = x.ExtractAll(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), 5)
	if !errors.Is(err, errors.ErrCodeSourceUnreadable) {
		t.Errorf("missing file error = %v, want SOURCE_UNREADABLE", err)
	}
}

func TestExtractAllAbortsOnOffPageCell(t *testing.T) {
	r := &fakeRasterizer{page: image.NewNRGBA(image.Rect(0, 0, 1654, 600))}
	x := NewExtractor(r, nil)
	imgs, err := x.ExtractAll(context.Background(), writeSource(t, "short page"), 10)
	if err == nil || imgs != nil {
		t.Errorf("ExtractAll() = %d photos, %v; want abort", len(imgs), err)
	}
}

func TestRecoverUsesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := &fakeRasterizer{page: sheet(6)}
	x := NewExtractor(r, c)
	src := writeSource(t, "%PDF-1.4 class 4B")

	if _, err := x.ExtractAll(ctx, src, 6); err != nil {
		t.Fatal(err)
	}
	img, err := x.Recover(ctx, src, 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.calls != 1 {
		t.Errorf("Recover() rasterized again with a warm cache (calls = %d)", r.calls)
	}
	if b := img.Bounds(); b.Dx() != 236 {
		t.Errorf("recovered width = %d, want 236", b.Dx())
	}
}

func TestRecoverWithoutCache(t *testing.T) {
	r := &fakeRasterizer{page: sheet(6)}
	x := NewExtractor(r, nil)
	src := writeSource(t, "%PDF-1.4")

	a, err := x.Recover(context.Background(), src, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := x.Recover(context.Background(), src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.calls != 2 {
		t.Errorf("calls = %d, want 2", r.calls)
	}
	if a.Bounds() != b.Bounds() || a.At(100, 100) != b.At(100, 100) {
		t.Error("Recover() is not deterministic")
	}
}

func TestForPath(t *testing.T) {
	pdf := &fakeRasterizer{}
	if _, ok := ForPath("scan.PNG", pdf).(ImageFile); !ok {
		t.Error("ForPath(png) did not pick ImageFile")
	}
	if ForPath("sheet.pdf", pdf) != Rasterizer(pdf) {
		t.Error("ForPath(pdf) did not pick the PDF rasterizer")
	}
}
