package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	reportgen "github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/internal/manifest"
	"github.com/goliatone/go-reportgen/pkg/content"
	"github.com/goliatone/go-reportgen/pkg/engine/gotmpl"
	"github.com/goliatone/go-reportgen/pkg/engine/pongo"
	"github.com/goliatone/go-reportgen/pkg/report"
)

type model = map[string]any

// buildReport turns a manifest entry into a configured builder with every
// template part loaded from disk.
func buildReport(ctx context.Context, def manifest.Report) (*report.Builder[model], error) {
	engine, err := newEngine(def)
	if err != nil {
		return nil, err
	}

	options := []report.Option[model]{
		report.WithEngine[model](engine),
		report.WithLoader[model](reportgen.NewLoader()),
		report.WithPrecompile[model](def.Precompile),
		report.WithStripStyles[model](def.StripStyles),
	}
	if def.Converter != "" {
		conv, err := reportgen.NewConverterRegistry().Get(def.Converter)
		if err != nil {
			return nil, err
		}
		options = append(options, report.WithConverter[model](conv))
	}
	if def.Title != "" {
		options = append(options, report.WithTitle[model](def.Title))
	}

	builder, err := report.New[model](def.ID, options...)
	if err != nil {
		return nil, err
	}

	parts := []struct {
		part report.Part
		path string
	}{
		{report.PartTemplate, def.Template},
		{report.PartLayout, def.Layout},
		{report.PartStyles, def.Stylesheet},
		{report.PartHelpers, def.Helpers},
	}
	for _, p := range parts {
		if p.path == "" {
			continue
		}
		if err := builder.Load(ctx, p.part, content.FromFile(p.path)); err != nil {
			return nil, err
		}
	}
	return builder, nil
}

func newEngine(def manifest.Report) (report.Engine[model], error) {
	switch def.Engine {
	case manifest.EngineGoTemplate:
		return gotmpl.New[model](), nil
	default:
		return pongo.New[model](
			pongo.WithSetName(def.ID),
			pongo.WithBaseDir(filepath.Dir(def.Template)),
		)
	}
}

// loadData decodes a JSON or YAML file into the report model. An empty path
// yields an empty model.
func loadData(path string) (model, error) {
	if strings.TrimSpace(path) == "" {
		return model{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data := model{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err == nil {
		return data, nil
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: invalid JSON or YAML: %w", path, err)
	}
	return data, nil
}
