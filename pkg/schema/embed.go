package schema

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// EmbeddedFS exposes the built-in form declarations.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		return embeddedForms
	}
	return sub
}

// Default returns the catalog of built-in forms. It is loaded once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultCatalog, defaultErr
}
