package server

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed web
var embedded embed.FS

// Assets returns the file system served under /static/ and used for the page
// shells. A non-empty dir is layered over the embedded files so a build
// directory can supply the wasm bundle and override any shell.
func Assets(dir string) fs.FS {
	base, err := fs.Sub(embedded, "web")
	if err != nil {
		// web is embedded at compile time; Sub only fails on an invalid name.
		panic(err)
	}
	if dir == "" {
		return base
	}
	return layered{top: os.DirFS(dir), bottom: base}
}

// layered resolves names against top first, then bottom.
type layered struct {
	top    fs.FS
	bottom fs.FS
}

func (l layered) Open(name string) (fs.File, error) {
	f, err := l.top.Open(name)
	if err == nil {
		return f, nil
	}
	return l.bottom.Open(name)
}
