// Package static provides the embedded landing page and its assets.
package static

import (
	"embed"
	"net/http"
)

//go:embed index.html assets
var files embed.FS

// IndexHTML returns the landing page document.
func IndexHTML() []byte {
	data, err := files.ReadFile("index.html")
	if err != nil {
		// The file is embedded at compile time; a read can only fail if
		// the embed directive itself is broken.
		panic(err)
	}
	return data
}

// AssetsHandler serves the embedded assets/ tree. Unknown paths get a
// plain 404 from the file server.
func AssetsHandler() http.Handler {
	return http.FileServerFS(files)
}

// FS exposes the embedded files for tests.
var FS = files
