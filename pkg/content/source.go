package content

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where template, stylesheet, or helper text lives so loaders
// can read files, fs.FS entries (including go:embed resources), or URLs
// without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS, the Go stand-in for embedded
// resources.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// FromResource returns a Source identifying a resource inside the loader's
// fs.FS.
func FromResource(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// FromURL parses the supplied URL string and returns a Source. It panics if the
// URL is invalid to surface configuration mistakes early.
func FromURL(raw string) Source {
	if raw == "" {
		panic("content: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("content: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}
