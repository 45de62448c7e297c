// Package schema loads lead form declarations from JSON or YAML files and
// exposes them through a Catalog. The quote, contact and pricing forms are
// embedded and available through Default.
package schema
