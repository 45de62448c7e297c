// Package orchestrator wires the schema catalog, relay configuration,
// notification sinks and renderers into live forms, providing dependency
// injection friendly helpers for consumers that prefer a single entry point.
package orchestrator
