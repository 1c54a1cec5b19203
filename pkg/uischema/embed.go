package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled overlays. Callers may pass this filesystem to
// LoadFS to use the default presentation.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Default loads the bundled overlays.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
