package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/model"
)

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// viewContext flattens a view into the template data shared by the html
// and text templates.
func viewContext(view form.View, cfg *themeContext) map[string]any {
	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		fields = append(fields, fieldContext(view.ID, field))
	}

	heading := view.Title
	if heading == "" {
		heading = model.Label(view.ID)
	}

	data := map[string]any{
		"form": map[string]any{
			"id":           view.ID,
			"title":        view.Title,
			"heading":      heading,
			"description":  view.Description,
			"status":       string(view.Status),
			"submitting":   view.Submitting(),
			"submit_label": view.SubmitLabel,
		},
		"fields":       fields,
		"notification": nil,
		"theme":        cfg.data(),
	}
	if n := view.Notification; n != nil {
		data["notification"] = map[string]any{
			"title":       n.Title,
			"description": n.Description,
			"variant":     string(n.Variant),
		}
	}
	return data
}

func fieldContext(formID string, field form.FieldView) map[string]any {
	options := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		options = append(options, map[string]any{
			"value":    opt.Value,
			"label":    label,
			"selected": opt.Value == field.Value,
		})
	}

	display := field.Value
	if field.Type == model.FieldTypeSelect && field.Value != "" {
		display = field.OptionLabel(field.Value)
	}

	return map[string]any{
		"id":          formID + "-" + field.Name,
		"name":        field.Name,
		"type":        string(field.Type),
		"label":       field.Label,
		"placeholder": field.Placeholder,
		"description": field.Description,
		"value":       field.Value,
		"display":     display,
		"error":       field.Error,
		"required":    field.Required,
		"readonly":    field.ReadOnly,
		"options":     options,
	}
}

// plainText strips markup and decodes entities.
func plainText(markup string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(markup)))
}
