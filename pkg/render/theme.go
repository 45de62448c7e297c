package render

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrUnknownTheme is returned when a theme or variant is not registered.
var ErrUnknownTheme = errors.New("render: unknown theme")

// DefaultThemeName names the built-in theme.
const DefaultThemeName = "leadform"

// DefaultManifest describes the built-in theme with light and dark variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"leadform-primary":     "#7c3aed",
			"leadform-radius":      "0.75rem",
			"leadform-destructive": "#dc2626",
			"leadform-background":  "#ffffff",
			"leadform-foreground":  "#0f172a",
		},
		Templates: map[string]string{
			"forms.html": "form.tpl",
			"forms.text": "summary.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/leadform",
			Files: map[string]string{
				"stylesheet": "leadform.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"leadform-background": "#0f172a",
					"leadform-foreground": "#f8fafc",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "leadform.dark.css",
					},
				},
			},
		},
	}
}

// Themes resolves theme selections into renderer configuration.
type Themes struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers manifests. DefaultManifest is used when none are given.
func NewThemes(manifests ...*theme.Manifest) (*Themes, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	t := &Themes{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", m.Name, err)
		}
		t.manifests[m.Name] = m
	}
	return t, nil
}

// Names lists registered themes.
func (t *Themes) Names() []string {
	return slices.Sorted(maps.Keys(t.manifests))
}

// Select picks a theme and variant. An empty variant selects the base tokens.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = DefaultThemeName
	}
	m, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// Config selects name/variant and flattens it into a renderer configuration:
// variant tokens, templates and asset files override the base manifest, and
// every token is exposed as a --token CSS variable.
func (t *Themes) Config(name, variant string) (*theme.RendererConfig, error) {
	sel, err := t.Select(name, variant)
	if err != nil {
		return nil, err
	}
	m := sel.Manifest

	tokens := maps.Clone(m.Tokens)
	partials := maps.Clone(m.Templates)
	files := maps.Clone(m.Assets.Files)
	prefix := m.Assets.Prefix
	if v, ok := m.Variants[sel.Variant]; ok {
		tokens = merge(tokens, v.Tokens)
		partials = merge(partials, v.Templates)
		files = merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if strings.Contains(file, "://") || prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

func merge(base, overlay map[string]string) map[string]string {
	if base == nil {
		base = make(map[string]string, len(overlay))
	}
	for key, value := range overlay {
		base[key] = value
	}
	return base
}

// cssVarsStyle renders CSS variables as an inline style in key order.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for i, key := range slices.Sorted(maps.Keys(vars)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}
