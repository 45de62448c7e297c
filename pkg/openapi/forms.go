package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-leadform/pkg/model"
)

const (
	fieldOrderExtension  = "x-field-order"
	widgetExtension      = "x-widget"
	placeholderExtension = "x-placeholder"
	submitLabelExtension = "x-submit-label"
)

var jsonMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// FormsFromDocument parses raw (JSON or YAML) and returns one schema per POST
// operation with a request body, sorted by form id. Operations without
// operationId are named "post:<path>".
func FormsFromDocument(ctx context.Context, raw []byte) ([]model.FormSchema, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	var forms []model.FormSchema
	for path, item := range doc.Paths.Map() {
		if item == nil || item.Post == nil {
			continue
		}
		form, ok, err := formFromOperation(path, item.Post)
		if err != nil {
			return nil, err
		}
		if ok {
			forms = append(forms, form)
		}
	}
	if len(forms) == 0 {
		return nil, errors.New("openapi: no POST operations with a request body")
	}
	slices.SortFunc(forms, func(a, b model.FormSchema) int {
		return strings.Compare(a.ID, b.ID)
	})
	return forms, nil
}

func formFromOperation(path string, op *openapi3.Operation) (model.FormSchema, bool, error) {
	body := requestSchema(op.RequestBody)
	if body == nil {
		return model.FormSchema{}, false, nil
	}

	id := strings.TrimSpace(op.OperationID)
	if id == "" {
		id = "post:" + path
	}
	if types := body.Type; types != nil && !types.Is(openapi3.TypeObject) {
		return model.FormSchema{}, false, fmt.Errorf("openapi: form %q request body is not an object", id)
	}

	form := model.FormSchema{
		ID:          id,
		Title:       op.Summary,
		Description: op.Description,
		SubmitLabel: stringExtension(op.Extensions, submitLabelExtension),
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range fieldOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromSchema(name, ref.Value, required[name])
		if err != nil {
			return model.FormSchema{}, false, fmt.Errorf("openapi: form %q: %w", id, err)
		}
		form.Fields = append(form.Fields, field)
	}
	if len(form.Fields) == 0 {
		return model.FormSchema{}, false, nil
	}
	return form, true, nil
}

func requestSchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range jsonMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// fieldOrder lists x-field-order entries first, then required properties in
// declaration order, then the rest by name.
func fieldOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	order := make([]string, 0, len(schema.Properties))
	add := func(name string) {
		if _, ok := schema.Properties[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	for _, name := range stringsExtension(schema.Extensions, fieldOrderExtension) {
		add(name)
	}
	for _, name := range schema.Required {
		add(name)
	}
	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		add(name)
	}
	return order
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) (model.Field, error) {
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeString) {
		return model.Field{}, fmt.Errorf("property %q has unsupported type %v", name, schema.Type.Slice())
	}

	field := model.Field{
		Name:        name,
		Type:        model.FieldTypeText,
		Label:       schema.Title,
		Description: schema.Description,
		Required:    required,
		ReadOnly:    schema.ReadOnly,
		Placeholder: stringExtension(schema.Extensions, placeholderExtension),
	}
	if field.Label == "" {
		field.Label = model.Label(name)
	}
	if value, ok := schema.Default.(string); ok {
		field.Default = value
	}

	switch {
	case len(schema.Enum) > 0:
		field.Type = model.FieldTypeSelect
		for _, raw := range schema.Enum {
			value := fmt.Sprint(raw)
			field.Options = append(field.Options, model.Option{Value: value, Label: value})
		}
		field.Validations = append(field.Validations, model.OneOf(""))
	case schema.Format == "email":
		field.Type = model.FieldTypeEmail
	case stringExtension(schema.Extensions, widgetExtension) == "textarea":
		field.Type = model.FieldTypeTextarea
	}

	if schema.MinLength > 0 {
		field.Validations = append(field.Validations, model.MinLength(int(schema.MinLength), ""))
	}
	if field.Type == model.FieldTypeEmail {
		field.Validations = append(field.Validations, model.EmailFormat(""))
	}
	return field, nil
}

func stringExtension(ext map[string]any, key string) string {
	switch value := ext[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case fmt.Stringer:
		return strings.TrimSpace(value.String())
	default:
		return ""
	}
}

func stringsExtension(ext map[string]any, key string) []string {
	switch value := ext[key].(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, entry := range value {
			switch v := entry.(type) {
			case string:
				out = append(out, v)
			case int, int64, float64:
				out = append(out, fmt.Sprint(v))
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
