package testsupport

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-reportgen/pkg/report"
)

// Call records a single engine or converter invocation.
type Call struct {
	Method string
	ID     string
	Text   string
}

// RecordingEngine is an in-memory report.Engine stand-in. Compile stores the
// text under id, Run and Parse return the stored or supplied text with the
// model appended via Format. Errors can be injected per method.
type RecordingEngine[T any] struct {
	mu       sync.Mutex
	compiled map[string]string
	calls    []Call

	// Format renders text against the model; defaults to returning text.
	Format func(text string, model T) string

	CompileErr error
	RunErr     error
	ParseErr   error
}

// NewRecordingEngine returns an engine that echoes composed text.
func NewRecordingEngine[T any]() *RecordingEngine[T] {
	return &RecordingEngine[T]{compiled: make(map[string]string)}
}

func (e *RecordingEngine[T]) Compile(text, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Method: "compile", ID: id, Text: text})
	if e.CompileErr != nil {
		return e.CompileErr
	}
	if e.compiled == nil {
		e.compiled = make(map[string]string)
	}
	e.compiled[id] = text
	return nil
}

func (e *RecordingEngine[T]) Run(model T, id string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Method: "run", ID: id})
	if e.RunErr != nil {
		return "", e.RunErr
	}
	text, ok := e.compiled[id]
	if !ok {
		return "", fmt.Errorf("testsupport: %q not compiled", id)
	}
	return e.format(text, model), nil
}

func (e *RecordingEngine[T]) Parse(text string, model T) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Method: "parse", Text: text})
	if e.ParseErr != nil {
		return "", e.ParseErr
	}
	return e.format(text, model), nil
}

// Calls returns a copy of the recorded invocations.
func (e *RecordingEngine[T]) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Count returns how many times method was invoked.
func (e *RecordingEngine[T]) Count(method string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, call := range e.calls {
		if call.Method == method {
			n++
		}
	}
	return n
}

func (e *RecordingEngine[T]) format(text string, model T) string {
	if e.Format == nil {
		return text
	}
	return e.Format(text, model)
}

// RecordingConverter captures the markup it receives and returns it as bytes
// unless Err is set.
type RecordingConverter struct {
	mu     sync.Mutex
	inputs []string
	titles []string

	Err error
}

func (c *RecordingConverter) Convert(markup string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inputs = append(c.inputs, markup)
	if c.Err != nil {
		return nil, c.Err
	}
	return []byte(markup), nil
}

// Inputs returns the markup received so far.
func (c *RecordingConverter) Inputs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.inputs...)
}

// Titles returns titles received through ConvertDocument.
func (c *RecordingConverter) Titles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.titles...)
}

func (c *RecordingConverter) record(title string) {
	c.mu.Lock()
	c.titles = append(c.titles, title)
	c.mu.Unlock()
}

// TitledConverter is a RecordingConverter that also implements
// report.MetadataConverter.
type TitledConverter struct {
	RecordingConverter
}

func (c *TitledConverter) ConvertDocument(markup string, meta report.Metadata) ([]byte, error) {
	c.record(meta.Title)
	return c.Convert(markup)
}
