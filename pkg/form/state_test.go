package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/model"
)

func contactSchema() model.FormSchema {
	return model.FormSchema{
		ID: "contact",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeText, Required: true},
			{Name: "email", Type: model.FieldTypeEmail, Required: true, Validations: []model.ValidationRule{model.EmailFormat("")}},
			{Name: "subject", Type: model.FieldTypeText, Required: true},
			{Name: "message", Type: model.FieldTypeTextarea, Required: true},
		},
	}
}

func TestState_SetValueAndReset(t *testing.T) {
	state, err := form.NewState(contactSchema(), map[string]string{"subject": "Starter Plan"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}

	state.SetValue("name", "Ada")
	state.SetValue("unknown", "ignored")

	want := map[string]string{"name": "Ada", "email": "", "subject": "Starter Plan", "message": ""}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	state.Reset()
	want["name"] = ""
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestState_ValidateRecordsErrors(t *testing.T) {
	state, err := form.NewState(contactSchema(), nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	state.SetValue("name", "Ada")
	state.SetValue("email", "not-an-email")
	state.SetValue("subject", "Hello")
	state.SetValue("message", "Hi")

	errs := state.Validate()
	if len(errs) != 1 || errs[0].Field != "email" {
		t.Fatalf("expected a single email error, got %v", errs)
	}
	if msg, ok := state.ErrorFor("email"); !ok || msg != "Please enter a valid email address." {
		t.Fatalf("unexpected email error %q", msg)
	}

	state.SetValue("email", "ada@example.com")
	if _, ok := state.ErrorFor("email"); ok {
		t.Fatalf("editing a field should clear its error")
	}
	if errs := state.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid state, got %v", errs)
	}
}

func TestState_SetErrorsDropsUnknownFields(t *testing.T) {
	state, err := form.NewState(contactSchema(), nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	state.SetErrors(map[string]string{"email": "taken", "bogus": "x", "name": ""})
	if diff := cmp.Diff(map[string]string{"email": "taken"}, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewState_RejectsUnknownInitialField(t *testing.T) {
	if _, err := form.NewState(contactSchema(), map[string]string{"plan": "x"}); err == nil {
		t.Fatalf("expected error for unknown initial field")
	}
}
