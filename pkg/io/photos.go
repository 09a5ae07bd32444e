package io

import (
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/photogrid"
	"github.com/matzehuels/seatplan/pkg/seating"
)

var photoExts = []string{".jpg", ".jpeg", ".png"}

// IsPhoto reports whether path has a supported photo extension.
func IsPhoto(path string) bool {
	return slices.Contains(photoExts, strings.ToLower(filepath.Ext(path)))
}

// ListPhotos returns the photo files of dir sorted by name.
func ListPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "photo folder %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "read %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsPhoto(e.Name()) {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	for i, f := range files {
		files[i] = filepath.Join(dir, f)
	}
	return files, nil
}

// LoadPhoto decodes the image at path and crops it to its centered square.
func LoadPhoto(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "decode %s", filepath.Base(path))
	}
	return photogrid.SquareCrop(img), nil
}

// ImportFolder creates one entity per decodable photo in dir. The i-th file
// takes names[i], or its file stem when the list is shorter. Undecodable
// files are returned in skipped.
func ImportFolder(dir string, names []string) (entities []*seating.Entity, skipped []error, err error) {
	files, err := ListPhotos(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "no jpg or png files in %s", dir)
	}

	for i, path := range files {
		img, err := LoadPhoto(path)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		e := seating.NewEntity(nameAt(names, i, stem), img)
		e.Source = path
		entities = append(entities, e)
	}
	return entities, skipped, nil
}

// GridEntities wraps photos cut from a multi-photo page at path.
func GridEntities(path string, photos []image.Image, names []string) []*seating.Entity {
	out := make([]*seating.Entity, len(photos))
	for i, img := range photos {
		idx := i
		e := seating.NewEntity(nameAt(names, i, seating.DefaultName(i)), img)
		e.Source = path
		e.GridIndex = &idx
		out[i] = e
	}
	return out
}
