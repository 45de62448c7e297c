package orchestrator_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/config"
	"github.com/goliatone/go-leadform/pkg/content"
	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/orchestrator"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/schema"
	"github.com/goliatone/go-leadform/pkg/submit"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func TestOrchestrator_QuoteEndToEnd(t *testing.T) {
	relay := testsupport.NewRelayServer(t)
	var emitted []notify.Notification
	orch := orchestrator.New(
		orchestrator.WithConfig(config.Config{Endpoints: map[string]string{"quote": relay.Endpoint("/f/quote")}}),
		orchestrator.WithEmitter(notify.EmitterFunc(func(n notify.Notification) { emitted = append(emitted, n) })),
	)

	f, err := orch.Form("quote")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	values := map[string]string{
		"projectType": "shopify",
		"timeline":    "flexible",
		"budget":      "above-20k",
		"description": "An online store for handmade goods",
		"email":       "lead@example.com",
	}
	for name, value := range values {
		f.SetValue(name, value)
	}

	report := f.Submit(context.Background())
	if report.Outcome != form.OutcomeSubmitted || !report.Result.OK() {
		t.Fatalf("expected successful submission, got %+v", report)
	}
	requests := relay.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one POST, got %d", len(requests))
	}
	if diff := cmp.Diff(values, requests[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if len(emitted) != 1 || emitted[0].Title != "Quote Request Received!" || emitted[0].FormID != "quote" {
		t.Fatalf("unexpected notifications %+v", emitted)
	}
}

func TestOrchestrator_PricingInquiryWithoutEndpoint(t *testing.T) {
	var transport atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		transport.Add(1)
		return nil, errors.New("unexpected call")
	})}
	orch := orchestrator.New(orchestrator.WithHTTPClient(client))

	f, err := orch.PricingInquiry("business")
	if err != nil {
		t.Fatalf("pricing inquiry: %v", err)
	}
	if got := f.Value("subject"); got != "Business Plan" {
		t.Fatalf("expected plan title as subject, got %q", got)
	}
	f.SetValue("name", "Ada")
	f.SetValue("email", "ada@example.com")
	f.SetValue("message", "I would like to know more.")

	report := f.Submit(context.Background())
	if report.Result.Reason != submit.ReasonConfiguration {
		t.Fatalf("expected configuration error, got %+v", report.Result)
	}
	if report.Notification.Title != "Missing Form Endpoint" || !report.Notification.Destructive() {
		t.Fatalf("unexpected notification %+v", report.Notification)
	}
	if transport.Load() != 0 {
		t.Fatalf("expected no network traffic, got %d", transport.Load())
	}
	if f.Value("name") != "Ada" {
		t.Fatalf("values must survive a failed submission")
	}
}

func TestOrchestrator_PricingInquiryByTitle(t *testing.T) {
	orch := orchestrator.New()
	f, err := orch.PricingInquiry("starter plan")
	if err != nil {
		t.Fatalf("pricing inquiry: %v", err)
	}
	out, err := orch.Render(context.Background(), orchestrator.Request{Form: f})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "interested in the <strong>Starter Plan</strong>") {
		t.Fatalf("expected plan in description, got:\n%s", out)
	}

	if _, err := orch.PricingInquiry("enterprise"); !errors.Is(err, content.ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestOrchestrator_FormsAreIndependent(t *testing.T) {
	orch := orchestrator.New()
	a, err := orch.Form("contact")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	b, err := orch.Form("contact")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	a.SetValue("name", "Ada")
	if b.Value("name") != "" {
		t.Fatalf("instances share state")
	}
}

func TestOrchestrator_UnknownForm(t *testing.T) {
	orch := orchestrator.New()
	if _, err := orch.Form("newsletter"); !errors.Is(err, schema.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "pricing", "quote"}, orch.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_RenderThemes(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithConfig(config.Config{Theme: config.Theme{Name: "leadform", Variant: "dark"}}))

	out, err := orch.Generate(context.Background(), "contact", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`id="contact-form"`, "leadform--dark", `data-theme="leadform"`, "Send Message"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}

	f, _ := orch.Form("contact")
	text, err := orch.Render(context.Background(), orchestrator.Request{Form: f, Renderer: "text", ThemeVariant: "light"})
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !strings.Contains(string(text), "[Send Message]") {
		t.Fatalf("expected submit label in text output:\n%s", text)
	}

	if _, err := orch.Render(context.Background(), orchestrator.Request{Form: f, ThemeName: "missing"}); !errors.Is(err, render.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := orch.Render(context.Background(), orchestrator.Request{Form: f, Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
	if _, err := orch.Render(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing form error")
	}
}

func TestOrchestrator_SubmitterFactory(t *testing.T) {
	var calls atomic.Int32
	orch := orchestrator.New(orchestrator.WithSubmitterFactory(func(id string) form.Submitter {
		return form.SubmitterFunc(func(context.Context, map[string]string) submit.Result {
			calls.Add(1)
			return submit.Success(id, "req", http.StatusOK)
		})
	}))
	f, err := orch.Form("contact")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	for name, value := range map[string]string{"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello"} {
		f.SetValue(name, value)
	}
	if report := f.Submit(context.Background()); report.Outcome != form.OutcomeSubmitted || calls.Load() != 1 {
		t.Fatalf("expected factory submitter to be used, got %+v", report)
	}
}

func TestOrchestrator_OpenAPIForms(t *testing.T) {
	doc := []byte(`
openapi: 3.0.3
info: {title: Leads, version: 1.0.0}
paths:
  /leads/callback:
    post:
      operationId: callback
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [phone]
              properties:
                phone: {type: string}
      responses:
        "200": {description: ok}
`)
	orch := orchestrator.New(orchestrator.WithOpenAPI(doc))
	if err := orch.Err(); err != nil {
		t.Fatalf("init: %v", err)
	}
	f, err := orch.Form("callback")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if diff := cmp.Diff([]string{"phone"}, f.Schema().FieldNames()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	broken := orchestrator.New(orchestrator.WithOpenAPI([]byte("not: [valid")))
	if broken.Err() == nil {
		t.Fatalf("expected invalid document to fail initialisation")
	}
	if _, err := broken.Form("quote"); err == nil {
		t.Fatalf("expected initialisation error to surface")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
