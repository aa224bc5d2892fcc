package report

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-reportgen/internal/content/loader"
	"github.com/goliatone/go-reportgen/pkg/content"
	"github.com/goliatone/go-reportgen/pkg/engine/pongo"
)

// Builder owns the configuration of a single report type and decides, per
// render, whether the engine must compile the composed template again.
type Builder[T any] struct {
	id string

	body    string
	layout  string
	styles  string
	helpers string

	precompile  bool
	dirty       bool
	stripStyles bool

	engine    Engine[T]
	converter Converter
	title     *titleExpr
	loader    content.Loader
	logger    *slog.Logger
}

// New constructs a Builder registered under id. An empty id is replaced by a
// generated one so compiled templates never collide in a shared engine.
func New[T any](id string, options ...Option[T]) (*Builder[T], error) {
	b := &Builder[T]{
		id:          strings.TrimSpace(id),
		stripStyles: true,
		logger:      slog.New(slog.DiscardHandler),
	}
	if b.id == "" {
		b.id = "report-" + uuid.NewString()
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	if b.engine == nil {
		engine, err := pongo.New[T]()
		if err != nil {
			return nil, fmt.Errorf("report: default engine: %w", err)
		}
		b.engine = engine
	}
	if b.loader == nil {
		b.loader = loader.New(content.NewLoaderOptions())
	}
	return b, nil
}

// MustNew panics if New fails. Useful for package level report definitions.
func MustNew[T any](id string, options ...Option[T]) *Builder[T] {
	b, err := New(id, options...)
	if err != nil {
		panic(err)
	}
	return b
}

// ID returns the registration key used with the engine.
func (b *Builder[T]) ID() string {
	return b.id
}

// Dirty reports whether the composed template may differ from the last
// compiled artifact.
func (b *Builder[T]) Dirty() bool {
	return b.dirty
}

// Precompiled reports whether the compile-once strategy is active.
func (b *Builder[T]) Precompiled() bool {
	return b.precompile
}

// WithTemplate sets the body template.
func (b *Builder[T]) WithTemplate(template string) *Builder[T] {
	b.set(&b.body, template)
	return b
}

// WithLayout sets a layout that receives the body at BodyToken.
func (b *Builder[T]) WithLayout(layout string) *Builder[T] {
	b.set(&b.layout, layout)
	return b
}

// WithStyles sets the stylesheet injected at StylesToken.
func (b *Builder[T]) WithStyles(styles string) *Builder[T] {
	b.set(&b.styles, styles)
	return b
}

// WithHelpers sets the helper fragments injected at HelpersToken.
func (b *Builder[T]) WithHelpers(helpers string) *Builder[T] {
	b.set(&b.helpers, helpers)
	return b
}

// WithPrecompilation switches to the compile-once strategy.
func (b *Builder[T]) WithPrecompilation() *Builder[T] {
	b.precompile = true
	return b
}

// WithoutPrecompilation switches to the parse strategy.
func (b *Builder[T]) WithoutPrecompilation() *Builder[T] {
	b.precompile = false
	return b
}

// WithRenderer sets the converter used by Convert and whether the raw
// stylesheet is stripped from the markup beforehand. A nil converter, typed
// or untyped, clears it and Convert reports ErrMissingConverter.
func (b *Builder[T]) WithRenderer(converter Converter, stripStyles bool) *Builder[T] {
	if isNil(converter) {
		converter = nil
	}
	b.converter = converter
	b.stripStyles = stripStyles
	return b
}

// SetTitle validates expr against the model type and stores it. The
// expression is a field read ("Name") or a zero argument method call
// ("Title()"). An empty expression clears the title.
func (b *Builder[T]) SetTitle(expr string) error {
	if strings.TrimSpace(expr) == "" {
		b.title = nil
		return nil
	}
	title, err := parseTitle(expr)
	if err != nil {
		return err
	}
	if err := title.validate(reflect.TypeFor[T]()); err != nil {
		return err
	}
	b.title = title
	return nil
}

// Title evaluates the configured title expression against model. It returns
// an empty string when no title is configured.
func (b *Builder[T]) Title(model T) (string, error) {
	if b.title == nil {
		return "", nil
	}
	return b.title.eval(model)
}

// Load reads part from src through the builder's loader and applies it with
// the same change tracking as the With* methods.
func (b *Builder[T]) Load(ctx context.Context, part Part, src content.Source) error {
	target, err := b.part(part)
	if err != nil {
		return err
	}
	text, err := b.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("report: load %s: %w", part, err)
	}
	b.set(target, text)
	return nil
}

// Composed returns the template text handed to the engine.
func (b *Builder[T]) Composed() (string, error) {
	return Compose(Parts{
		Body:    b.body,
		Layout:  b.layout,
		Styles:  b.styles,
		Helpers: b.helpers,
	})
}

// Render executes the report against model using the configured strategy.
func (b *Builder[T]) Render(model T) (string, error) {
	if b.body == "" {
		return "", ErrMissingTemplate
	}

	if !b.precompile {
		text, err := b.Composed()
		if err != nil {
			return "", err
		}
		return b.engine.Parse(text, model)
	}

	if b.dirty {
		text, err := b.Composed()
		if err != nil {
			return "", err
		}
		if err := b.engine.Compile(text, b.id); err != nil {
			return "", err
		}
		b.dirty = false
		b.logger.Debug("report: compiled template", "id", b.id)
	} else {
		b.logger.Debug("report: reusing compiled template", "id", b.id)
	}

	return b.engine.Run(model, b.id)
}

// Convert renders the report and passes the markup to the converter. When
// style stripping is enabled the first occurrence of the raw stylesheet text
// is removed; the surrounding style tags stay in place.
func (b *Builder[T]) Convert(model T) ([]byte, error) {
	if b.converter == nil {
		return nil, ErrMissingConverter
	}

	markup, err := b.Render(model)
	if err != nil {
		return nil, err
	}
	if b.stripStyles && b.styles != "" {
		markup = strings.Replace(markup, b.styles, "", 1)
	}

	if mc, ok := b.converter.(MetadataConverter); ok && b.title != nil {
		title, err := b.title.eval(model)
		if err != nil {
			return nil, err
		}
		return mc.ConvertDocument(markup, Metadata{Title: title})
	}
	return b.converter.Convert(markup)
}

func (b *Builder[T]) set(field *string, value string) {
	if *field == value {
		return
	}
	*field = value
	b.dirty = true
}

// Part names a configurable piece of template text.
type Part int

const (
	PartTemplate Part = iota
	PartLayout
	PartStyles
	PartHelpers
)

func (p Part) String() string {
	switch p {
	case PartTemplate:
		return "template"
	case PartLayout:
		return "layout"
	case PartStyles:
		return "styles"
	case PartHelpers:
		return "helpers"
	default:
		return fmt.Sprintf("part(%d)", int(p))
	}
}

func (b *Builder[T]) part(p Part) (*string, error) {
	switch p {
	case PartTemplate:
		return &b.body, nil
	case PartLayout:
		return &b.layout, nil
	case PartStyles:
		return &b.styles, nil
	case PartHelpers:
		return &b.helpers, nil
	default:
		return nil, fmt.Errorf("report: unknown part %s", p)
	}
}

// isNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
