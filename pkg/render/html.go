package render

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/pkg/form"
)

const (
	htmlTemplate = "form"
	textTemplate = "summary"

	htmlPartialKey = "forms.html"
	textPartialKey = "forms.text"
)

// HTML renders an accessible form fragment: labelled controls, inline
// errors, a submit button that is disabled while submitting and a live
// region for the latest notification.
type HTML struct {
	engine *Engine
}

// NewHTML builds the html renderer.
func NewHTML(engine *Engine) *HTML {
	return &HTML{engine: engine}
}

func (r *HTML) Name() string        { return "html" }
func (r *HTML) ContentType() string { return "text/html; charset=utf-8" }

// Render executes form.tpl, or the theme's forms.html partial when set.
func (r *HTML) Render(ctx context.Context, view form.View, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tc := newThemeContext(opts.Theme)
	out, err := r.engine.RenderTemplate(tc.partial(htmlPartialKey, htmlTemplate), viewContext(view, tc))
	if err != nil {
		return nil, fmt.Errorf("render html %s: %w", view.ID, err)
	}
	return []byte(out), nil
}

// Text renders a plain summary for terminals and logs.
type Text struct {
	engine *Engine
}

// NewText builds the text renderer.
func NewText(engine *Engine) *Text {
	return &Text{engine: engine}
}

func (r *Text) Name() string        { return "text" }
func (r *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Render executes summary.tpl with markup stripped from descriptions.
func (r *Text) Render(ctx context.Context, view form.View, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view.Description = plainText(view.Description)
	fields := make([]form.FieldView, len(view.Fields))
	for i, field := range view.Fields {
		field.Description = plainText(field.Description)
		fields[i] = field
	}
	view.Fields = fields

	tc := newThemeContext(opts.Theme)
	out, err := r.engine.RenderTemplate(tc.partial(textPartialKey, textTemplate), viewContext(view, tc))
	if err != nil {
		return nil, fmt.Errorf("render text %s: %w", view.ID, err)
	}
	return []byte(out), nil
}

type themeContext struct {
	cfg *theme.RendererConfig
}

func newThemeContext(cfg *theme.RendererConfig) *themeContext {
	return &themeContext{cfg: cfg}
}

func (t *themeContext) partial(key, fallback string) string {
	if t == nil || t.cfg == nil {
		return fallback
	}
	if name := t.cfg.Partials[key]; name != "" {
		return name
	}
	return fallback
}

func (t *themeContext) data() map[string]any {
	if t == nil || t.cfg == nil {
		return map[string]any{"name": "", "variant": "", "style": "", "stylesheet": ""}
	}
	stylesheet := ""
	if t.cfg.AssetURL != nil {
		stylesheet = t.cfg.AssetURL("stylesheet")
	}
	return map[string]any{
		"name":       t.cfg.Theme,
		"variant":    t.cfg.Variant,
		"style":      cssVarsStyle(t.cfg.CSSVars),
		"stylesheet": stylesheet,
	}
}
