package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-leadform/pkg/config"
	"github.com/goliatone/go-leadform/pkg/content"
	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/openapi"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/schema"
	"github.com/goliatone/go-leadform/pkg/submit"
)

const defaultRendererName = "html"

// PricingFormID names the catalog form used for plan inquiries.
const PricingFormID = "pricing"

// SubmitterFactory builds the submitter used by a form.
type SubmitterFactory func(formID string) form.Submitter

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig supplies relay endpoints, timeout and theme defaults.
func WithConfig(cfg config.Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
	}
}

// WithCatalog replaces the embedded form catalog.
func WithCatalog(catalog *schema.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithOpenAPI adds the forms described by an OpenAPI document to the
// catalog.
func WithOpenAPI(raw []byte) Option {
	return func(o *Orchestrator) {
		o.openapiDocs = append(o.openapiDocs, raw)
	}
}

// WithSite replaces the embedded site content.
func WithSite(site content.Site) Option {
	return func(o *Orchestrator) {
		o.site = &site
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithThemes injects the theme set consulted on Render.
func WithThemes(themes *render.Themes) Option {
	return func(o *Orchestrator) {
		o.themes = themes
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithHTTPClient overrides the client relay submissions go through.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		o.client = client
	}
}

// WithSubmitterFactory replaces relay submission entirely.
func WithSubmitterFactory(factory SubmitterFactory) Option {
	return func(o *Orchestrator) {
		o.submitters = factory
	}
}

// WithEmitter registers a notification sink attached to every form.
func WithEmitter(emitter notify.Emitter) Option {
	return func(o *Orchestrator) {
		if emitter != nil {
			o.emitters = append(o.emitters, emitter)
		}
	}
}

// WithLogger sets the structured logger shared with forms and executors.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator builds forms from the catalog and renders their views. It
// applies sensible defaults (embedded forms, embedded content, html renderer,
// the leadform theme) while remaining open to injection.
type Orchestrator struct {
	cfg             config.Config
	catalog         *schema.Catalog
	openapiDocs     [][]byte
	site            *content.Site
	registry        *render.Registry
	themes          *render.Themes
	defaultRenderer string
	client          *http.Client
	submitters      SubmitterFactory
	emitters        []notify.Emitter
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Failures
// while preparing defaults are reported by every later call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Err reports a failure while preparing defaults.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Forms lists the catalog form ids.
func (o *Orchestrator) Forms() []string {
	if o.catalog == nil {
		return nil
	}
	return o.catalog.IDs()
}

// Site returns the plans and contact channels.
func (o *Orchestrator) Site() content.Site {
	if o.site == nil {
		return content.Site{}
	}
	return *o.site
}

// Form builds a fresh form instance for id. Each call returns independent
// state; opts are applied after the orchestrator's own.
func (o *Orchestrator) Form(id string, opts ...form.Option) (*form.Form, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	s, err := o.catalog.Form(id)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	options := []form.Option{form.WithLogger(o.logger.With("form", id))}
	for _, emitter := range o.emitters {
		options = append(options, form.WithEmitter(emitter))
	}
	options = append(options, opts...)

	f, err := form.New(s, o.submitterFor(id), options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: form %q: %w", id, err)
	}
	return f, nil
}

// PricingInquiry builds the pricing form with its read-only subject set to
// the plan's title. plan matches a plan id or title.
func (o *Orchestrator) PricingInquiry(plan string, opts ...form.Option) (*form.Form, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	p, err := o.Site().Plan(plan)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	initial := form.WithInitialValues(map[string]string{"subject": p.Title})
	return o.Form(PricingFormID, append([]form.Option{initial}, opts...)...)
}

// Request describes one render of a form.
type Request struct {
	// Form is the instance whose current view is drawn.
	Form *form.Form

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the configured theme.
	ThemeName    string
	ThemeVariant string
}

// Render draws the current view of req.Form.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Form == nil {
		return nil, errors.New("orchestrator: form is required")
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	name := firstNonEmpty(req.ThemeName, o.cfg.Theme.Name, render.DefaultThemeName)
	variant := firstNonEmpty(req.ThemeVariant, o.cfg.Theme.Variant)
	themeCfg, err := o.themes.Config(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: theme: %w", err)
	}

	output, err := renderer.Render(ctx, req.Form.View(), render.Options{Theme: themeCfg})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Generate renders a blank instance of form id.
func (o *Orchestrator) Generate(ctx context.Context, id, rendererName string) ([]byte, error) {
	f, err := o.Form(id)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, Request{Form: f, Renderer: rendererName})
}

func (o *Orchestrator) submitterFor(id string) form.Submitter {
	if o.submitters != nil {
		if s := o.submitters(id); s != nil {
			return s
		}
	}
	return submit.New(o.cfg.Submit(id),
		submit.WithHTTPClient(o.client),
		submit.WithLogger(o.logger),
	)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		catalog, err := schema.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = catalog
	}
	if len(o.openapiDocs) > 0 {
		if err := o.mergeOpenAPI(); err != nil {
			o.initialiseErr = err
			return
		}
	}
	if o.site == nil {
		site, err := content.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default content: %w", err)
			return
		}
		o.site = &site
	}
	if o.registry == nil {
		registry, err := render.NewDefaultRegistry(nil)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.themes == nil {
		themes, err := render.NewThemes(render.DefaultManifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
			return
		}
		o.themes = themes
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func (o *Orchestrator) mergeOpenAPI() error {
	var all []model.FormSchema
	for _, id := range o.catalog.IDs() {
		s, err := o.catalog.Form(id)
		if err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
		all = append(all, s)
	}
	for _, raw := range o.openapiDocs {
		forms, err := openapi.FormsFromDocument(context.Background(), raw)
		if err != nil {
			return fmt.Errorf("orchestrator: openapi forms: %w", err)
		}
		all = append(all, forms...)
	}
	catalog, err := schema.NewCatalog(all...)
	if err != nil {
		return fmt.Errorf("orchestrator: openapi forms: %w", err)
	}
	o.catalog = catalog
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
