package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Engine names accepted in a manifest.
const (
	EnginePongo      = "pongo"
	EngineGoTemplate = "gotemplate"
)

// Converter names accepted in a manifest.
const (
	ConverterPDF      = "pdf"
	ConverterSanitize = "sanitize"
	ConverterHTML     = "html"
)

// Report is a normalised manifest entry. Paths are absolute or relative to the
// working directory once loaded.
type Report struct {
	ID          string
	Description string
	Template    string
	Layout      string
	Stylesheet  string
	Helpers     string
	Engine      string
	Converter   string
	Title       string
	Precompile  bool
	StripStyles bool
	Source      string
}

// Manifest groups report definitions read from one file.
type Manifest struct {
	Path    string
	reports map[string]Report
}

type documentFile struct {
	Reports map[string]reportFile `json:"reports" yaml:"reports"`
}

type reportFile struct {
	Description string `json:"description" yaml:"description"`
	Template    string `json:"template" yaml:"template"`
	Layout      string `json:"layout" yaml:"layout"`
	Stylesheet  string `json:"stylesheet" yaml:"stylesheet"`
	Helpers     string `json:"helpers" yaml:"helpers"`
	Engine      string `json:"engine" yaml:"engine"`
	Converter   string `json:"converter" yaml:"converter"`
	Title       string `json:"title" yaml:"title"`
	Precompile  *bool  `json:"precompile" yaml:"precompile"`
	StripStyles *bool  `json:"strip_styles" yaml:"strip_styles"`
}

// Load reads a JSON or YAML manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes manifest data. Relative report paths resolve against the
// directory holding source.
func Parse(data []byte, source string) (*Manifest, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(source)
	m := &Manifest{Path: source, reports: make(map[string]Report, len(doc.Reports))}
	for rawID, raw := range doc.Reports {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("manifest: file %s defines an empty report id", source)
		}
		if _, exists := m.reports[id]; exists {
			return nil, fmt.Errorf("manifest: duplicate report %q (file %s)", id, source)
		}
		report, err := normaliseReport(raw, id, source, dir)
		if err != nil {
			return nil, err
		}
		m.reports[id] = report
	}
	return m, nil
}

// Report returns the definition for id.
func (m *Manifest) Report(id string) (Report, bool) {
	if m == nil {
		return Report{}, false
	}
	r, ok := m.reports[id]
	return r, ok
}

// IDs returns the report ids in sorted order.
func (m *Manifest) IDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.reports))
	for id := range m.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reports returns every definition sorted by id.
func (m *Manifest) Reports() []Report {
	ids := m.IDs()
	out := make([]Report, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.reports[id])
	}
	return out
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("manifest: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("manifest: parse %s: invalid JSON or YAML", source)
}

func normaliseReport(raw reportFile, id, source, dir string) (Report, error) {
	r := Report{
		ID:          id,
		Description: strings.TrimSpace(raw.Description),
		Template:    resolvePath(dir, raw.Template),
		Layout:      resolvePath(dir, raw.Layout),
		Stylesheet:  resolvePath(dir, raw.Stylesheet),
		Helpers:     resolvePath(dir, raw.Helpers),
		Engine:      strings.ToLower(strings.TrimSpace(raw.Engine)),
		Converter:   strings.ToLower(strings.TrimSpace(raw.Converter)),
		Title:       strings.TrimSpace(raw.Title),
		Precompile:  raw.Precompile == nil || *raw.Precompile,
		StripStyles: raw.StripStyles == nil || *raw.StripStyles,
		Source:      source,
	}

	if r.Template == "" {
		return Report{}, fmt.Errorf("manifest: report %q (file %s) has no template", id, source)
	}

	switch r.Engine {
	case "":
		r.Engine = EnginePongo
	case EnginePongo, EngineGoTemplate:
	default:
		return Report{}, fmt.Errorf("manifest: report %q (file %s) uses unknown engine %q", id, source, raw.Engine)
	}

	switch r.Converter {
	case "", ConverterPDF, ConverterSanitize, ConverterHTML:
	default:
		return Report{}, fmt.Errorf("manifest: report %q (file %s) uses unknown converter %q", id, source, raw.Converter)
	}

	return r, nil
}

func resolvePath(dir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(dir, trimmed)
}
