// Package openapi derives lead form schemas from an OpenAPI 3 document. Each
// POST operation whose JSON request body is an object of string properties
// becomes one form.
package openapi
