package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/openapi"
	"github.com/goliatone/go-leadform/pkg/validation"
)

const leadAPI = `
openapi: 3.0.3
info:
  title: Leads
  version: 1.0.0
paths:
  /leads/quote:
    post:
      operationId: quote
      summary: Get a Free Quote
      x-submit-label: Get Free Quote
      requestBody:
        content:
          application/json:
            schema:
              type: object
              x-field-order: [projectType, description]
              required: [email, projectType]
              properties:
                email:
                  type: string
                  format: email
                description:
                  type: string
                  minLength: 10
                  x-widget: textarea
                projectType:
                  type: string
                  title: Project Type
                  enum: [html-css-js, react-next, shopify]
                referrer:
                  type: string
                  default: site
      responses:
        "200":
          description: ok
  /leads/contact:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "200":
          description: ok
    get:
      operationId: listContacts
      responses:
        "200":
          description: ok
`

func TestFormsFromDocument(t *testing.T) {
	forms, err := openapi.FormsFromDocument(context.Background(), []byte(leadAPI))
	if err != nil {
		t.Fatalf("forms: %v", err)
	}

	ids := make([]string, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.ID)
	}
	if diff := cmp.Diff([]string{"post:/leads/contact", "quote"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	quote := forms[1]
	if quote.Title != "Get a Free Quote" || quote.SubmitLabel != "Get Free Quote" {
		t.Fatalf("unexpected quote header %+v", quote)
	}
	if diff := cmp.Diff([]string{"projectType", "description", "email", "referrer"}, quote.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	projectType, _ := quote.Field("projectType")
	if projectType.Type != model.FieldTypeSelect || projectType.Label != "Project Type" || !projectType.Required {
		t.Fatalf("unexpected projectType %+v", projectType)
	}
	if diff := cmp.Diff([]string{"html-css-js", "react-next", "shopify"}, projectType.OptionValues()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	description, _ := quote.Field("description")
	if description.Type != model.FieldTypeTextarea {
		t.Fatalf("expected textarea, got %s", description.Type)
	}
	email, _ := quote.Field("email")
	if email.Type != model.FieldTypeEmail {
		t.Fatalf("expected email type, got %s", email.Type)
	}
	referrer, _ := quote.Field("referrer")
	if referrer.Default != "site" || referrer.Label != "Referrer" {
		t.Fatalf("unexpected referrer %+v", referrer)
	}

	v, err := validation.New(quote)
	if err != nil {
		t.Fatalf("derived schema does not compile: %v", err)
	}
	errs := v.Validate(map[string]string{
		"projectType": "wordpress",
		"description": "short",
		"email":       "nope",
	})
	if diff := cmp.Diff(map[string]string{
		"projectType": "Please select a valid option.",
		"description": "Must be at least 10 characters.",
		"email":       "Please enter a valid email address.",
	}, errs.Map()); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}
}

func TestFormsFromDocument_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"malformed": "openapi: [",
		"no paths": `
openapi: 3.0.3
info: {title: x, version: "1"}
paths: {}
`,
		"non-string property": `
openapi: 3.0.3
info: {title: x, version: "1"}
paths:
  /x:
    post:
      operationId: x
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                count: {type: integer}
      responses:
        "200": {description: ok}
`,
		"no post bodies": `
openapi: 3.0.3
info: {title: x, version: "1"}
paths:
  /x:
    get:
      responses:
        "200": {description: ok}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := openapi.FormsFromDocument(context.Background(), []byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFormsFromDocument_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.FormsFromDocument(ctx, []byte(leadAPI)); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
