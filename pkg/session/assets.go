package session

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/render"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// placeholderSide is the size of the thumbnail written for an entity
// without a photo.
const placeholderSide = 130

// writeAssets writes one PNG per entity into a temporary zip in dir and
// returns its path.
func writeAssets(dir string, entities []*seating.Entity, students []Student) (path string, err error) {
	tmp, err := os.CreateTemp(dir, ".assets-*.zip")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	for i, e := range entities {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   students[i].ImgFilename,
			Method: zip.Deflate,
		})
		if err != nil {
			return "", err
		}
		var img image.Image = e.Photo
		if img == nil {
			img = render.Placeholder(placeholderSide)
		}
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	return tmp.Name(), nil
}

// expandAssets extracts the container at path into a temporary directory.
// The returned cleanup removes the directory and is always safe to call.
// Entries whose name is not a plain file name are skipped.
func expandAssets(path string) (dir string, cleanup func(), err error) {
	cleanup = func() {}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", cleanup, err
	}
	defer zr.Close()

	dir, err = os.MkdirTemp("", "seatplan-assets-*")
	if err != nil {
		return "", cleanup, errors.Wrap(errors.ErrCodePersistence, err, "create asset dir")
	}
	cleanup = func() { os.RemoveAll(dir) }

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || errors.ValidateAssetName(f.Name) != nil {
			continue
		}
		if err := extract(f, filepath.Join(dir, f.Name)); err != nil {
			return dir, cleanup, err
		}
	}
	return dir, cleanup, nil
}

func extract(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
