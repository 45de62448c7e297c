package render

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/pkg/form"
)

// Options carries per-call rendering settings.
type Options struct {
	// Theme supplies tokens, partial overrides and asset URLs. Nil renders
	// without theme styling.
	Theme *theme.RendererConfig
}

// Renderer draws a form view.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, opts Options) ([]byte, error)
}

// Registry stores renderers by name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry registers renderers, rejecting nil, unnamed and duplicate
// entries.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry registers the html and text renderers over a shared
// engine.
func NewDefaultRegistry(engine *Engine) (*Registry, error) {
	if engine == nil {
		var err error
		if engine, err = NewEngine(); err != nil {
			return nil, err
		}
	}
	return NewRegistry(NewHTML(engine), NewText(engine))
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.renderers))
}
