package model

// FieldType is the control kind rendered for a field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// Valid reports whether the type is one of the known control kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTextarea, FieldTypeSelect:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleNonEmpty  = "nonEmpty"
	ValidationRuleMinLength = "minLength"
	ValidationRuleEmail     = "email"
	ValidationRuleOneOf     = "oneOf"
)

// ValidationRule represents a single constraint applied to a field. Length
// limits encode their threshold in Params["value"]; oneOf rules list the
// accepted values in Values and fall back to the field options when empty.
// Message replaces the default error text for the rule kind.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Values  []string          `json:"values,omitempty" yaml:"values,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option is one entry of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Field models an individual input inside a lead form.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string            `json:"default,omitempty" yaml:"default,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	ReadOnly    bool              `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Options     []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations []ValidationRule  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// OptionValues returns the option values in declaration order.
func (f Field) OptionValues() []string {
	if len(f.Options) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		out = append(out, opt.Value)
	}
	return out
}

// OptionLabel resolves the label for an option value, falling back to the
// value itself.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

// Message is the title/description pair shown in a notification.
type Message struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Notifications overrides the notification copy per submission outcome.
// Empty entries fall back to the defaults in pkg/notify. Text may reference
// submitted values with {field} placeholders.
type Notifications struct {
	Success            Message `json:"success,omitempty" yaml:"success,omitempty"`
	ConfigurationError Message `json:"configurationError,omitempty" yaml:"configurationError,omitempty"`
	NetworkError       Message `json:"networkError,omitempty" yaml:"networkError,omitempty"`
	ServerRejected     Message `json:"serverRejected,omitempty" yaml:"serverRejected,omitempty"`
}

// FormSchema is the top-level declaration of one lead form.
type FormSchema struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	SubmitLabel   string        `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	PendingLabel  string        `json:"pendingLabel,omitempty" yaml:"pendingLabel,omitempty"`
	Fields        []Field       `json:"fields" yaml:"fields"`
	Notifications Notifications `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// Field looks up a field by name.
func (s FormSchema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (s FormSchema) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		out = append(out, field.Name)
	}
	return out
}

// InitialValues returns the declared default of every field.
func (s FormSchema) InitialValues() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		out[field.Name] = field.Default
	}
	return out
}
