package form

import (
	"html"
	"strings"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/notify"
)

const (
	defaultSubmitLabel  = "Submit"
	defaultPendingLabel = "Sending..."
)

// FieldView is one field as a renderer should draw it.
type FieldView struct {
	model.Field
	Value string
	Error string
}

// Invalid reports whether the field has an inline error.
func (v FieldView) Invalid() bool {
	return v.Error != ""
}

// View is a point-in-time snapshot of a form for renderers.
type View struct {
	ID           string
	Title        string
	Description  string
	Fields       []FieldView
	Status       Status
	SubmitLabel  string
	Notification *notify.Notification
}

// Submitting reports whether the submit control should be disabled.
func (v View) Submitting() bool {
	return v.Status == StatusSubmitting
}

// View snapshots the form.
func (f *Form) View() View {
	f.mu.Lock()
	status := f.machine.Status()
	values := f.state.Values()
	errs := f.state.Errors()
	f.mu.Unlock()

	view := View{
		ID:          f.schema.ID,
		Title:       f.schema.Title,
		Description: fillMarkup(f.schema.Description, values),
		Fields:      make([]FieldView, 0, len(f.schema.Fields)),
		Status:      status,
		SubmitLabel: labelOr(f.schema.SubmitLabel, defaultSubmitLabel),
	}
	if status == StatusSubmitting {
		view.SubmitLabel = labelOr(f.schema.PendingLabel, defaultPendingLabel)
	}
	for _, field := range f.schema.Fields {
		view.Fields = append(view.Fields, FieldView{
			Field: field,
			Value: values[field.Name],
			Error: errs[field.Name],
		})
	}
	if note, ok := f.latest.Current(); ok {
		view.Notification = &note
	}
	return view
}

// fillMarkup replaces {field} placeholders in sanitised markup with the
// escaped field values.
func fillMarkup(markup string, values map[string]string) string {
	if !strings.Contains(markup, "{") {
		return markup
	}
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", html.EscapeString(value))
	}
	return strings.NewReplacer(pairs...).Replace(markup)
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
