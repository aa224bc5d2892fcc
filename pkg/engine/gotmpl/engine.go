// Package gotmpl implements report.Engine with text/template. Helper fragments
// are {{define}} blocks; they travel inside the composed template so every
// compiled report carries its own helpers.
//
// Literal template text is emitted byte for byte, so the injected stylesheet
// and escaped markers survive rendering unchanged. Model values are not
// escaped; templates pipe them through the html or urlquery functions where
// needed.
package gotmpl

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
	"strings"
	"sync"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	funcs      template.FuncMap
	leftDelim  string
	rightDelim string
	missingKey string
}

// WithFuncs registers template functions available to every report.
func WithFuncs(funcs template.FuncMap) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.funcs == nil {
			cfg.funcs = make(template.FuncMap, len(funcs))
		}
		for name, fn := range funcs {
			cfg.funcs[strings.TrimSpace(name)] = fn
		}
	}
}

// WithDelims overrides the action delimiters.
func WithDelims(left, right string) Option {
	return func(cfg *config) {
		cfg.leftDelim = left
		cfg.rightDelim = right
	}
}

// WithMissingKey sets the text/template "missingkey" option (default, zero,
// or error).
func WithMissingKey(mode string) Option {
	return func(cfg *config) {
		cfg.missingKey = strings.TrimSpace(mode)
	}
}

// Engine keeps compiled templates keyed by report id.
type Engine[T any] struct {
	mu       sync.RWMutex
	cfg      config
	compiled map[string]*template.Template
}

// New constructs an Engine.
func New[T any](options ...Option) *Engine[T] {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Engine[T]{
		cfg:      cfg,
		compiled: make(map[string]*template.Template),
	}
}

// Compile parses text and stores it under id.
func (e *Engine[T]) Compile(text, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("gotmpl: template id is required")
	}
	tmpl, err := e.parse(id, text)
	if err != nil {
		return fmt.Errorf("gotmpl: compile %q: %w", id, err)
	}

	e.mu.Lock()
	e.compiled[id] = tmpl
	e.mu.Unlock()
	return nil
}

// Run executes the template compiled under id.
func (e *Engine[T]) Run(model T, id string) (string, error) {
	e.mu.RLock()
	tmpl, ok := e.compiled[id]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("gotmpl: template %q has not been compiled", id)
	}

	out, err := execute(tmpl, model)
	if err != nil {
		return "", fmt.Errorf("gotmpl: execute %q: %w", id, err)
	}
	return out, nil
}

// Parse compiles and executes text once.
func (e *Engine[T]) Parse(text string, model T) (string, error) {
	tmpl, err := e.parse("inline", text)
	if err != nil {
		return "", fmt.Errorf("gotmpl: parse template string: %w", err)
	}
	out, err := execute(tmpl, model)
	if err != nil {
		return "", fmt.Errorf("gotmpl: execute template string: %w", err)
	}
	return out, nil
}

func (e *Engine[T]) parse(name, text string) (*template.Template, error) {
	tmpl := template.New(name)
	if e.cfg.leftDelim != "" || e.cfg.rightDelim != "" {
		tmpl = tmpl.Delims(e.cfg.leftDelim, e.cfg.rightDelim)
	}
	if len(e.cfg.funcs) > 0 {
		tmpl = tmpl.Funcs(e.cfg.funcs)
	}
	if e.cfg.missingKey != "" {
		tmpl = tmpl.Option("missingkey=" + e.cfg.missingKey)
	}
	return tmpl.Parse(text)
}

func execute(tmpl *template.Template, model any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return "", err
	}
	return buf.String(), nil
}
