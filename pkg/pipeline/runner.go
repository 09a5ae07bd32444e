package pipeline

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	photoio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/photogrid"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/render"
	"github.com/matzehuels/seatplan/pkg/seating"
	"github.com/matzehuels/seatplan/pkg/session"
)

// Import kinds reported to hooks.
const (
	KindFolder = "folder"
	KindGrid   = "grid"
)

// Runner executes workflows with a shared crop cache and rasterizer.
//
// The Runner holds no plan state. Multiple goroutines can use the same
// Runner on different plans.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Rasterizer photogrid.Rasterizer
	Grid       photogrid.Grid
	Logger     *log.Logger
	// OnPhoto receives extraction progress during ImportGrid.
	OnPhoto func(done, total int)
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If rasterizer is nil, pdftoppm from PATH is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, rasterizer photogrid.Rasterizer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if rasterizer == nil {
		rasterizer = photogrid.Pdftoppm{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Rasterizer: rasterizer,
		Grid:       photogrid.DefaultGrid,
		Logger:     logger,
	}
}

// extractor returns an extractor for source path. Image files are read
// directly; everything else goes through the rasterizer.
func (r *Runner) extractor(path string) *photogrid.Extractor {
	x := photogrid.NewExtractor(photogrid.ForPath(path, r.Rasterizer), r.Cache)
	x.Keyer = r.Keyer
	x.Grid = r.Grid
	x.OnPhoto = r.OnPhoto
	return x
}

// ImportFolder adds one entity per decodable photo in dir to p.
func (r *Runner) ImportFolder(ctx context.Context, p *plan.Plan, dir string, names []string) (ImportResult, error) {
	start := time.Now()
	observability.Plan().OnImportStart(ctx, KindFolder, dir)

	entities, skipped, err := photoio.ImportFolder(dir, names)
	res := ImportResult{Skipped: skipped, Duration: time.Since(start)}
	if err != nil {
		observability.Plan().OnImportComplete(ctx, KindFolder, dir, 0, res.Duration, err)
		return res, err
	}
	for _, s := range skipped {
		r.Logger.Warn("skipped photo", "error", errors.UserMessage(s))
	}

	p.Add(entities...)
	res.Added = len(entities)
	observability.Plan().OnImportComplete(ctx, KindFolder, dir, res.Added, res.Duration, nil)
	r.Logger.Info("imported photos", "dir", dir, "count", res.Added, "skipped", len(skipped), "duration", res.Duration)
	return res, nil
}

// ImportGrid cuts n photos from the first page of path and adds them to p.
// Any extraction failure aborts the import with nothing added.
func (r *Runner) ImportGrid(ctx context.Context, p *plan.Plan, path string, n int, names []string) (ImportResult, error) {
	start := time.Now()
	observability.Plan().OnImportStart(ctx, KindGrid, path)

	photos, err := r.extractor(path).ExtractAll(ctx, path, n)
	res := ImportResult{Duration: time.Since(start)}
	if err != nil {
		observability.Plan().OnImportComplete(ctx, KindGrid, path, 0, res.Duration, err)
		return res, err
	}

	p.Add(photoio.GridEntities(path, photos, names)...)
	res.Added = len(photos)
	observability.Plan().OnImportComplete(ctx, KindGrid, path, res.Added, res.Duration, nil)
	r.Logger.Info("extracted photos", "source", path, "count", res.Added, "duration", res.Duration)
	return res, nil
}

// Open loads a session into a new plan. Photos missing from the asset
// container are recovered from their source: a grid cell is re-extracted, a
// photo file is decoded and cropped; failing both, a blank placeholder of
// seat size is used.
func (r *Runner) Open(ctx context.Context, reg *layout.Registry, path string) (*plan.Plan, OpenResult, error) {
	start := time.Now()
	s, missing, err := session.Load(path)
	if err != nil {
		observability.Plan().OnSession(ctx, "load", path, 0, time.Since(start), err)
		return nil, OpenResult{}, err
	}

	p, warnings := plan.FromSession(reg, s)
	res := OpenResult{Entities: len(s.Entities), Warnings: warnings}
	for _, w := range warnings {
		r.Logger.Warn("session restored with changes", "path", path, "reason", errors.UserMessage(w))
	}
	for _, i := range missing {
		e := s.Entities[i]
		if img := r.recover(ctx, e); img != nil {
			e.Photo = img
			res.Recovered++
			continue
		}
		e.Photo = render.Placeholder(p.Base().SeatSize)
		res.Placeholders++
		r.Logger.Warn("photo not recovered", "name", e.Name, "source", e.Source)
	}

	res.Duration = time.Since(start)
	observability.Plan().OnSession(ctx, "load", path, res.Entities, res.Duration, nil)
	r.Logger.Debug("opened session", "path", path, "entities", res.Entities,
		"recovered", res.Recovered, "placeholders", res.Placeholders, "duration", res.Duration)
	return p, res, nil
}

func (r *Runner) recover(ctx context.Context, e *seating.Entity) image.Image {
	if e.Source == "" {
		return nil
	}
	if _, err := os.Stat(e.Source); err != nil {
		return nil
	}
	if e.FromGrid() {
		img, err := r.extractor(e.Source).Recover(ctx, e.Source, *e.GridIndex)
		if err != nil {
			r.Logger.Debug("grid recovery failed", "source", e.Source, "index", *e.GridIndex, "error", err)
			return nil
		}
		return img
	}
	img, err := photoio.LoadPhoto(e.Source)
	if err != nil {
		r.Logger.Debug("photo recovery failed", "source", e.Source, "error", err)
		return nil
	}
	return img
}

// Save writes p to path.
func (r *Runner) Save(ctx context.Context, p *plan.Plan, path string) error {
	start := time.Now()
	s := p.Snapshot()
	err := session.Save(path, s)
	observability.Plan().OnSession(ctx, "save", path, len(s.Entities), time.Since(start), err)
	if err != nil {
		return err
	}
	r.Logger.Debug("saved session", "path", path, "entities", len(s.Entities), "duration", time.Since(start))
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
