package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// ErrUnknownForm is returned when a catalog lookup misses.
var ErrUnknownForm = errors.New("schema: unknown form")

// Catalog holds validated form schemas keyed by id.
type Catalog struct {
	forms map[string]model.FormSchema
}

// NewCatalog validates schemas and indexes them by id.
func NewCatalog(schemas ...model.FormSchema) (*Catalog, error) {
	c := &Catalog{forms: make(map[string]model.FormSchema, len(schemas))}
	for _, s := range schemas {
		if err := c.add(s, "<memory>"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFS walks fsys and parses every JSON/YAML file as one form schema.
// A nil fsys yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{forms: make(map[string]model.FormSchema)}
	if fsys == nil {
		return c, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return c.add(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Form returns a copy of the schema registered under id.
func (c *Catalog) Form(id string) (model.FormSchema, error) {
	if c == nil {
		return model.FormSchema{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
	}
	s, ok := c.forms[id]
	if !ok {
		return model.FormSchema{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
	}
	return clone(s), nil
}

// IDs lists the registered form ids in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len reports how many forms are registered.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.forms)
}

func (c *Catalog) add(s model.FormSchema, source string) error {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		return fmt.Errorf("schema: file %s defines a form without an id", source)
	}
	if _, exists := c.forms[s.ID]; exists {
		return fmt.Errorf("schema: duplicate form %q (file %s)", s.ID, source)
	}
	normalised, err := normalise(s, source)
	if err != nil {
		return err
	}
	c.forms[s.ID] = normalised
	return nil
}

func normalise(s model.FormSchema, source string) (model.FormSchema, error) {
	if len(s.Fields) == 0 {
		return model.FormSchema{}, fmt.Errorf("schema: form %q (file %s) declares no fields", s.ID, source)
	}
	s.Description = SanitizeMarkup(s.Description)
	for i := range s.Fields {
		field := &s.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return model.FormSchema{}, fmt.Errorf("schema: form %q (file %s) field %d has no name", s.ID, source, i)
		}
		if field.Type == "" {
			field.Type = model.FieldTypeText
		}
		if !field.Type.Valid() {
			return model.FormSchema{}, fmt.Errorf("schema: form %q (file %s) field %q has unknown type %q", s.ID, source, field.Name, field.Type)
		}
		if field.Type == model.FieldTypeSelect && len(field.Options) == 0 {
			return model.FormSchema{}, fmt.Errorf("schema: form %q (file %s) select field %q has no options", s.ID, source, field.Name)
		}
		if field.Label == "" {
			field.Label = model.Label(field.Name)
		}
		field.Description = SanitizeMarkup(field.Description)
	}
	if _, err := validation.New(s); err != nil {
		return model.FormSchema{}, fmt.Errorf("schema: form %q (file %s): %w", s.ID, source, err)
	}
	return s, nil
}

func parseDocument(data []byte, source string) (model.FormSchema, error) {
	var doc model.FormSchema
	if len(strings.TrimSpace(string(data))) == 0 {
		return doc, fmt.Errorf("schema: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = model.FormSchema{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.FormSchema{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return doc, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func clone(s model.FormSchema) model.FormSchema {
	out := s
	out.Fields = make([]model.Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Options = slices.Clone(f.Options)
		f.Validations = slices.Clone(f.Validations)
		out.Fields[i] = f
	}
	return out
}
