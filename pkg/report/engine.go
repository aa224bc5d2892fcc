package report

// Engine executes composed templates against a model. Compile registers a
// template under id; Run executes a previously compiled template; Parse
// compiles and executes in one step without touching the registry.
//
// Engines that share a process wide registry treat id as a global name: two
// builders using the same id overwrite each other's compiled template.
type Engine[T any] interface {
	Compile(text, id string) error
	Run(model T, id string) (string, error)
	Parse(text string, model T) (string, error)
}

// Converter turns rendered markup into another representation, typically a
// binary document format.
type Converter interface {
	Convert(markup string) ([]byte, error)
}

// Metadata carries document level values derived from the model.
type Metadata struct {
	Title string
}

// MetadataConverter is implemented by converters that can embed document
// metadata. Builders with a title expression prefer it over Convert.
type MetadataConverter interface {
	Converter
	ConvertDocument(markup string, meta Metadata) ([]byte, error)
}
