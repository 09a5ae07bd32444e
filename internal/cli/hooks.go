package cli

import (
	"context"
	"time"

	"github.com/matzehuels/seatplan/pkg/observability"
)

// debugLogger is the subset of *log.Logger the hooks need.
type debugLogger interface {
	Debug(msg any, keyvals ...any)
}

// logHooks logs every observability event at debug level.
type logHooks struct {
	l debugLogger
}

var (
	_ observability.PlanHooks  = logHooks{}
	_ observability.CacheHooks = logHooks{}
	_ observability.HTTPHooks  = logHooks{}
)

func (h logHooks) OnImportStart(_ context.Context, kind, source string) {
	h.l.Debug("import started", "kind", kind, "source", source)
}

func (h logHooks) OnImportComplete(_ context.Context, kind, source string, entities int, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("import failed", "kind", kind, "source", source, "duration", d, "error", err)
		return
	}
	h.l.Debug("import complete", "kind", kind, "source", source, "entities", entities, "duration", d)
}

func (h logHooks) OnSession(_ context.Context, op, path string, entities int, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("session "+op+" failed", "path", path, "error", err)
		return
	}
	h.l.Debug("session "+op, "path", path, "entities", entities, "duration", d)
}

func (h logHooks) OnExportStart(_ context.Context, formats []string) {
	h.l.Debug("export started", "formats", formats)
}

func (h logHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.l.Debug("export complete", "formats", formats, "duration", d, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.l.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.l.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.l.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.l.Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.l.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
