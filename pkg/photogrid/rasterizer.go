package photogrid

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Rasterizer renders the first page of a document as a bitmap.
type Rasterizer interface {
	FirstPage(ctx context.Context, path string, dpi int) (image.Image, error)
}

// Pdftoppm rasterizes PDFs with poppler's pdftoppm.
type Pdftoppm struct {
	// Bin is the pdftoppm executable; empty means "pdftoppm" on PATH.
	Bin string
}

func (p Pdftoppm) bin() string {
	if p.Bin == "" {
		return "pdftoppm"
	}
	return p.Bin
}

// Available reports whether the pdftoppm binary can be found.
func (p Pdftoppm) Available() bool {
	_, err := exec.LookPath(p.bin())
	return err == nil
}

// FirstPage renders page 1 of the PDF at path to PNG in a temporary
// directory and decodes it. Every failure is SOURCE_UNREADABLE.
func (p Pdftoppm) FirstPage(ctx context.Context, path string, dpi int) (image.Image, error) {
	bin, err := exec.LookPath(p.bin())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err,
			"PDF import requires poppler. Install with:\n  macOS:  brew install poppler\n  Linux:  apt install poppler-utils")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "read %s", path)
	}

	dir, err := os.MkdirTemp("", "seatplan-raster-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	root := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, bin,
		"-png", "-r", strconv.Itoa(dpi), "-f", "1", "-l", "1", "-singlefile",
		path, root)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable,
			fmt.Errorf("%v: %s", err, bytes.TrimSpace(errBuf.Bytes())), "rasterize %s", filepath.Base(path))
	}

	img, err := imaging.Open(root + ".png")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "decode rasterized %s", filepath.Base(path))
	}
	return img, nil
}

var _ Rasterizer = Pdftoppm{}

// ImageFile is a Rasterizer for sources that already are bitmaps (a
// scanned sheet saved as PNG or JPEG). dpi is ignored.
type ImageFile struct{}

func (ImageFile) FirstPage(_ context.Context, path string, _ int) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "read %s", filepath.Base(path))
	}
	return img, nil
}

// ForPath picks a rasterizer by file extension: bitmaps are decoded
// directly, everything else goes through pdf.
func ForPath(path string, pdf Rasterizer) Rasterizer {
	switch filepath.Ext(path) {
	case ".png", ".PNG", ".jpg", ".JPG", ".jpeg", ".JPEG":
		return ImageFile{}
	}
	return pdf
}
