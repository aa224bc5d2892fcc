package report

import (
	"errors"
	"log/slog"

	"github.com/goliatone/go-reportgen/pkg/content"
)

// Option configures a Builder during construction.
type Option[T any] func(*Builder[T]) error

// WithEngine injects the template engine. Builders default to the pongo2
// engine when none is supplied.
func WithEngine[T any](engine Engine[T]) Option[T] {
	return func(b *Builder[T]) error {
		if isNil(engine) {
			return errors.New("report: engine is nil")
		}
		b.engine = engine
		return nil
	}
}

// WithConverter sets the converter used by Convert. A nil converter,
// including a nil pointer stored in the interface, is rejected.
func WithConverter[T any](converter Converter) Option[T] {
	return func(b *Builder[T]) error {
		if isNil(converter) {
			return errors.New("report: converter is nil")
		}
		b.converter = converter
		return nil
	}
}

// WithStripStyles toggles removal of the raw stylesheet text before
// conversion. Enabled by default.
func WithStripStyles[T any](strip bool) Option[T] {
	return func(b *Builder[T]) error {
		b.stripStyles = strip
		return nil
	}
}

// WithPrecompile selects the compile-once strategy when enabled.
func WithPrecompile[T any](enabled bool) Option[T] {
	return func(b *Builder[T]) error {
		b.precompile = enabled
		return nil
	}
}

// WithTitle derives the document title from the model. See Builder.SetTitle.
func WithTitle[T any](expr string) Option[T] {
	return func(b *Builder[T]) error {
		return b.SetTitle(expr)
	}
}

// WithLoader overrides the content loader used by Builder.Load.
func WithLoader[T any](loader content.Loader) Option[T] {
	return func(b *Builder[T]) error {
		if isNil(loader) {
			return errors.New("report: loader is nil")
		}
		b.loader = loader
		return nil
	}
}

// WithLogger routes cache decisions to logger at debug level.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(b *Builder[T]) error {
		if logger != nil {
			b.logger = logger
		}
		return nil
	}
}
