package photogrid

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/observability"
)

const cropKeyType = "crop"

// Extractor rasterizes sources and cuts photos from them, caching each
// encoded crop by (source content hash, grid, DPI, index).
type Extractor struct {
	Grid       Grid
	Rasterizer Rasterizer
	Cache      cache.Cache
	Keyer      cache.Keyer
	// OnPhoto, when set, is called after each photo ExtractAll cuts.
	OnPhoto func(done, total int)
}

// NewExtractor returns an extractor with DefaultGrid. A nil cache disables
// caching.
func NewExtractor(r Rasterizer, c cache.Cache) *Extractor {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Extractor{
		Grid:       DefaultGrid,
		Rasterizer: r,
		Cache:      c,
		Keyer:      cache.NewDefaultKeyer(),
	}
}

// ExtractAll cuts photos 0..n-1 from the first page of path. The page is
// rasterized once. Any failure aborts the whole import so that no partial
// set of photos is returned.
func (x *Extractor) ExtractAll(ctx context.Context, path string, n int) ([]image.Image, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "photo count must be > 0, got %d", n)
	}
	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "read %s", path)
	}
	page, err := x.Rasterizer.FirstPage(ctx, path, x.Grid.DPI)
	if err != nil {
		return nil, err
	}

	out := make([]image.Image, n)
	for i := range out {
		img, err := Extract(page, x.Grid, i)
		if err != nil {
			return nil, err
		}
		x.store(ctx, hash, i, img)
		out[i] = img
		if x.OnPhoto != nil {
			x.OnPhoto(i+1, n)
		}
	}
	return out, nil
}

// Recover re-derives photo i of path, from the cache when possible and by
// rasterizing the source otherwise.
func (x *Extractor) Recover(ctx context.Context, path string, i int) (image.Image, error) {
	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnreadable, err, "read %s", path)
	}
	if img, ok := x.load(ctx, hash, i); ok {
		return img, nil
	}
	page, err := x.Rasterizer.FirstPage(ctx, path, x.Grid.DPI)
	if err != nil {
		return nil, err
	}
	img, err := Extract(page, x.Grid, i)
	if err != nil {
		return nil, err
	}
	x.store(ctx, hash, i, img)
	return img, nil
}

func (x *Extractor) key(hash string, i int) string {
	return x.Keyer.CropKey(hash, cache.CropKeyOpts{DPI: x.Grid.DPI, Index: i, Grid: x.Grid.String()})
}

// load returns a cached crop. Cache errors and corrupt entries are misses.
func (x *Extractor) load(ctx context.Context, hash string, i int) (image.Image, bool) {
	data, hit, err := x.Cache.Get(ctx, x.key(hash, i))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cropKeyType)
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, cropKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cropKeyType)
	return img, true
}

// store caches a crop, ignoring failures.
func (x *Extractor) store(ctx context.Context, hash string, i int, img image.Image) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return
	}
	if err := x.Cache.Set(ctx, x.key(hash, i), buf.Bytes(), 0); err == nil {
		observability.Cache().OnCacheSet(ctx, cropKeyType, buf.Len())
	}
}
