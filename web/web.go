package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var files embed.FS

// Templates - шаблоны страниц консоли
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
