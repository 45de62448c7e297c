// Package model defines the field schema shared by every lead form. A
// FormSchema lists its fields in declaration order; each Field carries the
// control type, presentation hints and the validation rules evaluated by
// pkg/validation. Rules use canonical kinds (nonEmpty, minLength, email,
// oneOf) with string parameters so schemas stay stable when serialised to
// YAML or JSON.
package model
