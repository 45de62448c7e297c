package schema_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/schema"
)

func TestDefault_BuiltInForms(t *testing.T) {
	catalog, err := schema.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "pricing", "quote"}, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	cases := map[string][]string{
		"quote":   {"projectType", "timeline", "budget", "description", "email"},
		"contact": {"name", "email", "subject", "message"},
		"pricing": {"name", "email", "subject", "message"},
	}
	for id, fields := range cases {
		form, err := catalog.Form(id)
		if err != nil {
			t.Fatalf("form %s: %v", id, err)
		}
		if diff := cmp.Diff(fields, form.FieldNames()); diff != "" {
			t.Errorf("%s fields mismatch (-want +got):\n%s", id, diff)
		}
	}
}

func TestDefault_QuoteDetails(t *testing.T) {
	catalog, err := schema.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	quote, err := catalog.Form("quote")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	budget, _ := quote.Field("budget")
	if diff := cmp.Diff([]string{"below-5k", "5k-10k", "10k-20k", "above-20k"}, budget.OptionValues()); diff != "" {
		t.Fatalf("budget options mismatch (-want +got):\n%s", diff)
	}
	if got := budget.OptionLabel("5k-10k"); got != "₱5,000 - ₱10,000" {
		t.Fatalf("unexpected budget label %q", got)
	}

	description, _ := quote.Field("description")
	want := []model.ValidationRule{{
		Kind:    model.ValidationRuleMinLength,
		Params:  map[string]string{"value": "10"},
		Message: "Description must be at least 10 characters.",
	}}
	if diff := cmp.Diff(want, description.Validations); diff != "" {
		t.Fatalf("description rules mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(quote.Notifications.Success.Description, "{email}") {
		t.Fatalf("expected success copy to reference the email placeholder")
	}
}

func TestDefault_PricingSubjectReadOnly(t *testing.T) {
	catalog, err := schema.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	pricing, err := catalog.Form("pricing")
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}
	subject, _ := pricing.Field("subject")
	if !subject.ReadOnly {
		t.Fatalf("expected pricing subject to be read-only")
	}
	if pricing.Notifications.ConfigurationError.Title != "Missing Form Endpoint" {
		t.Fatalf("unexpected configuration error copy %+v", pricing.Notifications.ConfigurationError)
	}
}

func TestCatalog_FormReturnsCopy(t *testing.T) {
	catalog, err := schema.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	first, _ := catalog.Form("quote")
	first.Fields[0].Options[0].Value = "mutated"

	second, _ := catalog.Form("quote")
	if second.Fields[0].Options[0].Value == "mutated" {
		t.Fatalf("catalog returned shared option slice")
	}
}

func TestCatalog_UnknownForm(t *testing.T) {
	catalog, err := schema.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if _, err := catalog.Form("newsletter"); !errors.Is(err, schema.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func TestLoadFS_JSONAndDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"newsletter.json": {Data: []byte(`{
			"id": "newsletter",
			"description": "Join <em>now</em><script>alert(1)</script>",
			"fields": [{"name": "emailAddress", "type": "email", "rules": [{"kind": "email"}]}]
		}`)},
		"README.md": {Data: []byte("ignored")},
	}
	catalog, err := schema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := catalog.Form("newsletter")
	if err != nil {
		t.Fatalf("newsletter: %v", err)
	}
	if form.Description != "Join <em>now</em>" {
		t.Fatalf("description not sanitised: %q", form.Description)
	}
	field, _ := form.Field("emailAddress")
	if field.Label != "Email address" {
		t.Fatalf("expected derived label, got %q", field.Label)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate id": {
			"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n")},
			"b.yaml": {Data: []byte("id: x\nfields:\n  - name: b\n")},
		},
		"missing id": {
			"a.yaml": {Data: []byte("fields:\n  - name: a\n")},
		},
		"unknown type": {
			"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n    type: slider\n")},
		},
		"select without options": {
			"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n    type: select\n")},
		},
		"bad rule": {
			"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n    rules:\n      - kind: pattern\n")},
		},
		"no fields": {
			"a.yaml": {Data: []byte("id: x\n")},
		},
		"empty file": {
			"a.yaml": {Data: []byte("  \n")},
		},
		"malformed": {
			"a.yaml": {Data: []byte("id: [unterminated\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := schema.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	catalog, err := schema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestSanitizeMarkup(t *testing.T) {
	got := schema.SanitizeMarkup(`  <strong>Bold</strong> <img src=x onerror=alert(1)> <a href="https://example.com" onclick="x()">link</a> `)
	if strings.Contains(got, "img") || strings.Contains(got, "onclick") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<strong>Bold</strong>") || !strings.Contains(got, `href="https://example.com"`) {
		t.Fatalf("allowed markup stripped: %q", got)
	}
}
