package leadform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-leadform/pkg/orchestrator"
	"github.com/goliatone/go-leadform/pkg/render"
)

// Request aliases orchestrator.Request for callers rendering a live form.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a blank instance of the named form as HTML. It is the
// simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, formID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, formID, "html")
}

// EmbeddedTemplates exposes the built-in templates so callers can reuse or
// extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}

// AssetsFS exposes the theme stylesheets so Go applications can serve them
// next to rendered forms.
//
// Typical mount:
//
//	mux.Handle("/assets/leadform/",
//	  http.StripPrefix("/assets/leadform/",
//	    http.FileServerFS(leadform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return render.AssetsFS()
}
