package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/plan"
)

// defaultAddr is the preview server's listen address.
const defaultAddr = "127.0.0.1:8080"

// contentTypes maps export formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatCSV:  "text/csv; charset=utf-8",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <session.json>",
		Short: "Preview a session in the browser",
		Long: `Serve a read-only preview of a session over HTTP.

The session file is re-read on every request, so edits made with other
commands or the board show up on reload.

Endpoints:
  /              HTML page with the chart
  /plan.{fmt}    chart as pdf, svg, png, json or csv
  /healthz       liveness check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := sessionLogger(ctx, args[0])

			r, err := c.newRunner()
			if err != nil {
				return err
			}
			defer r.Close()

			// Fail fast on a missing or malformed session.
			if _, err := c.openPlan(ctx, r, args[0]); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           c.previewRouter(r, args[0], logger),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			printSuccess("Serving %s", args[0])
			printDetail("http://%s/", addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return ctx.Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

// previewRouter builds the preview routes for the session at path.
func (c *CLI) previewRouter(r *pipeline.Runner, path string, logger *log.Logger) http.Handler {
	h := &previewHandler{cli: c, runner: r, path: path, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(hooksMiddleware)

	router.Get("/", h.index)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Get("/plan.{format}", h.artifact)
	return router
}

// hooksMiddleware reports requests and responses to the HTTP hooks.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(req.Context(), req.Method, req.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(req.Context(), req.Method, req.URL.Path, status, time.Since(start))
	})
}

type previewHandler struct {
	cli    *CLI
	runner *pipeline.Runner
	path   string
	logger *log.Logger
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #f4f4f4; }
img { background: white; box-shadow: 0 1px 4px rgba(0,0,0,.2); max-width: 100%; }
nav a { margin-right: 1em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Layout}} · {{.Placed}}/{{.Seats}} seats taken</p>
<nav>{{range .Formats}}<a href="/plan.{{.}}">{{.}}</a>{{end}}</nav>
<p><img src="/plan.svg" alt="{{.Title}}"></p>
</body>
</html>
`))

func (h *previewHandler) index(w http.ResponseWriter, req *http.Request) {
	p, err := h.load(req.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	unplaced := len(p.Board().Unplaced())
	data := struct {
		Title, Layout string
		Seats, Placed int
		Formats       []string
	}{
		Title:   p.Title(),
		Layout:  p.LayoutName(),
		Seats:   p.Base().SlotCount(),
		Placed:  p.Board().Len() - unplaced,
		Formats: []string{pipeline.FormatPDF, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON, pipeline.FormatCSV},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Warn("write index", "error", err)
	}
}

func (h *previewHandler) artifact(w http.ResponseWriter, req *http.Request) {
	format := chi.URLParam(req, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	p, err := h.load(req.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	result, err := h.runner.Render(req.Context(), p, pipeline.Options{
		Formats: []string{format},
		Scale:   h.cli.Config.Defaults.PNGScale,
		SlotIDs: true,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	if format == pipeline.FormatPDF || format == pipeline.FormatCSV {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", p.ExportName(format)))
	}
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		h.logger.Debug("write response", "format", format, "error", err)
	}
}

// load re-reads the session.
func (h *previewHandler) load(ctx context.Context) (*plan.Plan, error) {
	reg, err := h.cli.registry()
	if err != nil {
		return nil, err
	}
	p, _, err := h.runner.Open(ctx, reg, h.path)
	return p, err
}

// fail maps err to an HTTP status and logs it.
func (h *previewHandler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch perrors.GetCode(err) {
	case perrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case perrors.ErrCodeInvalidFormat, perrors.ErrCodeInvalidInput:
		status = http.StatusUnprocessableEntity
	}
	h.logger.Warn("preview failed", "path", h.path, "error", err)
	http.Error(w, perrors.UserMessage(err), status)
}
