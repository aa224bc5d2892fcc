// Package reportgen is the top-level entry point for building template
// driven reports. It re-exports the builder constructor and wires the
// default content loader and converters.
package reportgen

import (
	"github.com/goliatone/go-reportgen/internal/content/loader"
	"github.com/goliatone/go-reportgen/pkg/content"
	"github.com/goliatone/go-reportgen/pkg/convert"
	"github.com/goliatone/go-reportgen/pkg/convert/pdf"
	"github.com/goliatone/go-reportgen/pkg/convert/sanitize"
	"github.com/goliatone/go-reportgen/pkg/report"
)

// Builder aliases report.Builder for callers that only import the root
// package.
type Builder[T any] = report.Builder[T]

// Option aliases report.Option.
type Option[T any] = report.Option[T]

// New constructs a report builder for id. See report.New.
func New[T any](id string, options ...Option[T]) (*Builder[T], error) {
	return report.New[T](id, options...)
}

// NewLoader constructs a content loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...content.LoaderOption) content.Loader {
	cfg := content.NewLoaderOptions(options...)
	return loader.New(cfg)
}

// HTMLConverter passes rendered markup through unchanged.
func HTMLConverter() convert.NamedConverter {
	return convert.Named("html", "text/html; charset=utf-8", func(markup string) ([]byte, error) {
		return []byte(markup), nil
	})
}

// NewConverterRegistry returns a registry holding the built-in converters:
// "html", "pdf" and "sanitize".
func NewConverterRegistry() *convert.Registry {
	reg := convert.NewRegistry()
	reg.MustRegister(HTMLConverter())
	reg.MustRegister(pdf.New())
	reg.MustRegister(sanitize.New(sanitize.AllowStyles(), sanitize.AllowDocument()))
	return reg
}
