package session

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Save writes s to path and its thumbnails to AssetsPath(path). Both files
// are written to temporaries in the target directory and renamed into
// place; on failure the temporaries are removed.
func Save(path string, s *Session) error {
	f := toFile(s)
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "encode session")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "create %s", dir)
	}

	zipTmp, err := writeAssets(dir, s.Entities, f.Students)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "write assets")
	}
	jsonTmp, err := writeTemp(dir, ".session-*.json", data)
	if err != nil {
		os.Remove(zipTmp)
		return errors.Wrap(errors.ErrCodePersistence, err, "write session")
	}

	if err := os.Rename(zipTmp, AssetsPath(path)); err != nil {
		os.Remove(zipTmp)
		os.Remove(jsonTmp)
		return errors.Wrap(errors.ErrCodePersistence, err, "write assets")
	}
	if err := os.Rename(jsonTmp, path); err != nil {
		os.Remove(jsonTmp)
		return errors.Wrap(errors.ErrCodePersistence, err, "write session")
	}
	for i, st := range f.Students {
		s.Entities[i].Asset = st.ImgFilename
	}
	return nil
}

func writeTemp(dir, pattern string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func toFile(s *Session) File {
	f := File{
		Class:    s.Class,
		Room:     s.Room,
		Layout:   s.Layout,
		Students: make([]Student, len(s.Entities)),
	}
	if s.Custom != nil {
		env := layout.ToEnvelope(s.Custom)
		f.CustomLayout = &env
	}
	for i, e := range s.Entities {
		st := Student{
			Name:        e.Name,
			PDFIndex:    e.GridIndex,
			FontSize:    e.FontSize,
			ImgFilename: AssetName(i, e.Name),
		}
		if e.Slot >= 0 {
			slot := e.Slot
			st.Slot = &slot
		}
		if e.Source != "" {
			src := e.Source
			st.Source = &src
		}
		f.Students[i] = st
	}
	return f
}

// Load reads a session. The second result lists the positions of entities
// whose thumbnail was missing or undecodable; their Photo is nil.
//
// A missing or corrupt asset container is not an error. A saved Custom
// layout that fails validation is left out of the result and reported in
// Session.Warnings.
func Load(path string) (*Session, []int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "session %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodePersistence, err, "read session")
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse session %s", path)
	}

	s := &Session{Class: f.Class, Room: f.Room, Layout: f.Layout}
	if f.CustomLayout != nil {
		cfg, err := f.CustomLayout.Config()
		if err != nil {
			s.Warnings = append(s.Warnings, errors.Wrap(errors.ErrCodeInvalidLayout, err, "saved custom layout ignored"))
		} else {
			s.Custom = cfg
		}
	}

	// Whatever could be extracted is used; the rest is recovered by the
	// caller.
	assets, cleanup, _ := expandAssets(AssetsPath(path))
	defer cleanup()

	var missing []int
	s.Entities = make([]*seating.Entity, len(f.Students))
	for i, st := range f.Students {
		e := fromStudent(i, st)
		if assets != "" && st.ImgFilename != "" {
			e.Photo = openAsset(assets, st.ImgFilename)
		}
		if e.Photo == nil {
			missing = append(missing, i)
		}
		s.Entities[i] = e
	}
	return s, missing, nil
}

func fromStudent(i int, st Student) *seating.Entity {
	name := st.Name
	if name == "" {
		name = seating.DefaultName(i)
	}
	e := seating.NewEntity(name, nil)
	if st.Slot != nil {
		e.Slot = *st.Slot
	}
	if st.Source != nil {
		e.Source = *st.Source
	}
	if st.PDFIndex != nil {
		idx := *st.PDFIndex
		e.GridIndex = &idx
	}
	e.FontSize = st.FontSize
	if e.FontSize == 0 {
		e.FontSize = geometry.FontMax
	}
	e.Asset = st.ImgFilename
	return e
}

func openAsset(dir, name string) image.Image {
	if errors.ValidateAssetName(name) != nil {
		return nil
	}
	img, err := imaging.Open(filepath.Join(dir, name))
	if err != nil {
		return nil
	}
	return img
}
