package convert

import "github.com/goliatone/go-reportgen/pkg/report"

// NamedConverter is a report.Converter that can be registered and looked up
// by name.
type NamedConverter interface {
	report.Converter
	Name() string
	ContentType() string
}

// ConverterFunc adapts a function to report.Converter.
type ConverterFunc func(markup string) ([]byte, error)

// Convert calls f(markup).
func (f ConverterFunc) Convert(markup string) ([]byte, error) {
	return f(markup)
}

type named struct {
	ConverterFunc
	name        string
	contentType string
}

func (n named) Name() string        { return n.name }
func (n named) ContentType() string { return n.contentType }

// Named wraps fn as a NamedConverter.
func Named(name, contentType string, fn ConverterFunc) NamedConverter {
	return named{ConverterFunc: fn, name: name, contentType: contentType}
}
