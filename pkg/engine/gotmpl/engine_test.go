package gotmpl_test

import (
	"strings"
	"testing"
	"text/template"

	"github.com/goliatone/go-reportgen/pkg/engine/gotmpl"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

type statement struct {
	Owner   string
	Balance int
}

var _ report.Engine[statement] = (*gotmpl.Engine[statement])(nil)

func TestEngine_CompileRunParse(t *testing.T) {
	engine := gotmpl.New[statement]()

	if err := engine.Compile("{{ .Owner }}: {{ .Balance }}", "statement"); err != nil {
		t.Fatalf("compile: %v", err)
	}
	got, err := engine.Run(statement{Owner: "Ada", Balance: 10}, "statement")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "Ada: 10" {
		t.Fatalf("unexpected output %q", got)
	}

	got, err = engine.Parse("<b>{{ .Owner }}</b> <i>{{ .Owner | html }}</i>", statement{Owner: "<Grace>"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "<b><Grace></b> <i>&lt;Grace&gt;</i>" {
		t.Fatalf("values are escaped only through html, got %q", got)
	}
}

func TestEngine_RunUnknownID(t *testing.T) {
	engine := gotmpl.New[statement]()
	if _, err := engine.Run(statement{}, "missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestEngine_HelpersViaBuilder(t *testing.T) {
	engine := gotmpl.New[statement](gotmpl.WithFuncs(template.FuncMap{
		"upper": strings.ToUpper,
	}))

	builder, err := report.New[statement]("statement", report.WithEngine[statement](engine))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	builder.
		WithHelpers(`{{ define "owner" }}<i>{{ upper .Owner }}</i>{{ end }}`).
		WithTemplate(`<<HELPERS>>{{ template "owner" . }} owes {{ .Balance }}`).
		WithPrecompilation()

	got, err := builder.Render(statement{Owner: "ada", Balance: 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<i>ADA</i> owes 3" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_MissingKeyError(t *testing.T) {
	engine := gotmpl.New[map[string]any](gotmpl.WithMissingKey("error"))
	if _, err := engine.Parse("{{ .absent }}", map[string]any{}); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestEngine_Delims(t *testing.T) {
	engine := gotmpl.New[map[string]any](gotmpl.WithDelims("[[", "]]"))
	got, err := engine.Parse("{{ literal }} [[ .name ]]", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "{{ literal }} x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_LiteralTextSurvivesForStripAndEscape(t *testing.T) {
	const styles = "/* brand */ body { color: red; }"

	for _, precompile := range []bool{true, false} {
		conv := &testsupport.RecordingConverter{}
		builder, err := report.New[statement]("literal",
			report.WithEngine[statement](gotmpl.New[statement]()),
			report.WithConverter[statement](conv),
			report.WithPrecompile[statement](precompile),
		)
		if err != nil {
			t.Fatalf("new builder: %v", err)
		}
		builder.
			WithStyles(styles).
			WithTemplate("<<STYLES>><p>hi <<<< {{ .Owner }}</p>")

		rendered, err := builder.Render(statement{Owner: "Ada"})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if want := "<style>\n" + styles + "\n</style><p>hi << Ada</p>"; rendered != want {
			t.Fatalf("precompile=%v: render mismatch\nwant %q\ngot  %q", precompile, want, rendered)
		}

		if _, err := builder.Convert(statement{Owner: "Ada"}); err != nil {
			t.Fatalf("convert: %v", err)
		}
		inputs := conv.Inputs()
		if len(inputs) != 1 || inputs[0] != "<style>\n\n</style><p>hi << Ada</p>" {
			t.Fatalf("precompile=%v: stylesheet not stripped before conversion: %q", precompile, inputs)
		}
	}
}
