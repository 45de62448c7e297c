package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/pkg/render"
)

func TestThemes_Config(t *testing.T) {
	themes, err := render.NewThemes()
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	if diff := cmp.Diff([]string{"leadform"}, themes.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	light, err := themes.Config("", "light")
	if err != nil {
		t.Fatalf("light: %v", err)
	}
	if light.Theme != "leadform" || light.Variant != "light" {
		t.Fatalf("unexpected selection %s/%s", light.Theme, light.Variant)
	}
	if light.CSSVars["--leadform-background"] != "#ffffff" {
		t.Fatalf("unexpected light background %q", light.CSSVars["--leadform-background"])
	}
	if got := light.AssetURL("stylesheet"); got != "/assets/leadform/leadform.css" {
		t.Fatalf("unexpected light stylesheet %q", got)
	}

	dark, err := themes.Config("leadform", "dark")
	if err != nil {
		t.Fatalf("dark: %v", err)
	}
	if dark.Tokens["leadform-background"] != "#0f172a" || dark.Tokens["leadform-primary"] != "#7c3aed" {
		t.Fatalf("variant tokens not merged: %v", dark.Tokens)
	}
	if got := dark.AssetURL("stylesheet"); got != "/assets/leadform/leadform.dark.css" {
		t.Fatalf("unexpected dark stylesheet %q", got)
	}
	if got := dark.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if dark.Partials["forms.html"] != "form.tpl" {
		t.Fatalf("expected base partials, got %v", dark.Partials)
	}

	if light.Tokens["leadform-background"] != "#ffffff" {
		t.Fatalf("dark selection mutated the manifest tokens")
	}
}

func TestThemes_Unknown(t *testing.T) {
	themes, err := render.NewThemes()
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	if _, err := themes.Config("acme", ""); !errors.Is(err, render.ErrUnknownTheme) {
		t.Fatalf("expected unknown theme, got %v", err)
	}
	if _, err := themes.Config("leadform", "sepia"); !errors.Is(err, render.ErrUnknownTheme) {
		t.Fatalf("expected unknown variant, got %v", err)
	}
}

func TestThemes_CustomManifest(t *testing.T) {
	themes, err := render.NewThemes(&theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Files: map[string]string{"stylesheet": "https://cdn.example.com/acme.css"},
		},
	})
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	cfg, err := themes.Config("acme", "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "https://cdn.example.com/acme.css" {
		t.Fatalf("unexpected absolute asset url %q", got)
	}
}
