package report_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

type customer struct {
	Name    string
	Account *account
	secret  string
}

type account struct {
	Number int
}

func (c customer) Title() string {
	return "Statement for " + c.Name
}

func (c *customer) Label() (string, error) {
	if c.Name == "" {
		return "", errors.New("customer has no name")
	}
	return "[" + c.Name + "]", nil
}

func (c customer) Greeting(prefix string) string {
	return prefix + c.Name
}

func (c customer) Count() int {
	return len(c.Name)
}

func (c customer) Ref() fmt.Stringer {
	return ref(c.Name)
}

type ref string

func (r ref) String() string {
	return "ref:" + string(r)
}

func TestSetTitle_Validation(t *testing.T) {
	cases := []struct {
		expr  string
		valid bool
	}{
		{expr: "Name", valid: true},
		{expr: " Name ", valid: true},
		{expr: "Account", valid: true},
		{expr: "Title()", valid: true},
		{expr: "Label()", valid: true},
		{expr: "Ref()", valid: true},
		{expr: "Name()", valid: false},
		{expr: "Title", valid: false},
		{expr: "Greeting()", valid: false},
		{expr: "Count()", valid: false},
		{expr: "secret", valid: false},
		{expr: "Missing", valid: false},
		{expr: "Account.Number", valid: false},
		{expr: "Title(1)", valid: false},
		{expr: "Name + 1", valid: false},
		{expr: "1Name", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			builder, err := report.New[customer]("title", report.WithEngine[customer](testsupport.NewRecordingEngine[customer]()))
			if err != nil {
				t.Fatalf("new builder: %v", err)
			}
			err = builder.SetTitle(tc.expr)
			if tc.valid && err != nil {
				t.Fatalf("expected %q to be accepted, got %v", tc.expr, err)
			}
			if !tc.valid && !errors.Is(err, report.ErrInvalidTitleExpression) {
				t.Fatalf("expected ErrInvalidTitleExpression for %q, got %v", tc.expr, err)
			}
		})
	}
}

func TestWithTitle_FailsAtConstruction(t *testing.T) {
	_, err := report.New[customer]("title",
		report.WithEngine[customer](testsupport.NewRecordingEngine[customer]()),
		report.WithTitle[customer]("Greeting()"),
	)
	if !errors.Is(err, report.ErrInvalidTitleExpression) {
		t.Fatalf("expected ErrInvalidTitleExpression, got %v", err)
	}
}

func TestTitle_Evaluation(t *testing.T) {
	model := customer{Name: "Ada", Account: &account{Number: 7}}

	cases := map[string]string{
		"Name":    "Ada",
		"Title()": "Statement for Ada",
		"Label()": "[Ada]",
		"Ref()":   "ref:Ada",
		"Account": "&{7}",
	}

	for expr, want := range cases {
		builder := report.MustNew[customer]("title", report.WithEngine[customer](testsupport.NewRecordingEngine[customer]()))
		if err := builder.SetTitle(expr); err != nil {
			t.Fatalf("set title %q: %v", expr, err)
		}
		got, err := builder.Title(model)
		if err != nil {
			t.Fatalf("title %q: %v", expr, err)
		}
		if got != want {
			t.Fatalf("title %q: want %q, got %q", expr, want, got)
		}
	}
}

func TestTitle_MethodError(t *testing.T) {
	builder := report.MustNew[customer]("title",
		report.WithEngine[customer](testsupport.NewRecordingEngine[customer]()),
		report.WithTitle[customer]("Label()"),
	)
	if _, err := builder.Title(customer{}); err == nil || err.Error() != "customer has no name" {
		t.Fatalf("expected method error verbatim, got %v", err)
	}
}

func TestTitle_NilFieldIsEmpty(t *testing.T) {
	builder := report.MustNew[customer]("title",
		report.WithEngine[customer](testsupport.NewRecordingEngine[customer]()),
		report.WithTitle[customer]("Account"),
	)
	got, err := builder.Title(customer{})
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

func TestTitle_PointerModel(t *testing.T) {
	builder := report.MustNew[*customer]("title",
		report.WithEngine[*customer](testsupport.NewRecordingEngine[*customer]()),
		report.WithTitle[*customer]("Label()"),
	)
	got, err := builder.Title(&customer{Name: "Grace"})
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if got != "[Grace]" {
		t.Fatalf("unexpected title %q", got)
	}

	empty, err := builder.Title(nil)
	if err != nil || empty != "" {
		t.Fatalf("nil model yields empty title, got %q, %v", empty, err)
	}
}

func TestTitle_InterfaceModelValidatesSyntaxOnly(t *testing.T) {
	builder := report.MustNew[any]("title", report.WithEngine[any](testsupport.NewRecordingEngine[any]()))

	if err := builder.SetTitle("Whatever()"); err != nil {
		t.Fatalf("interface models accept any well formed expression: %v", err)
	}
	if err := builder.SetTitle("a.b"); !errors.Is(err, report.ErrInvalidTitleExpression) {
		t.Fatalf("expected syntax error, got %v", err)
	}

	if err := builder.SetTitle("Title()"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	got, err := builder.Title(customer{Name: "Ada"})
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if got != "Statement for Ada" {
		t.Fatalf("unexpected title %q", got)
	}

	if _, err := builder.Title(42); err == nil {
		t.Fatalf("expected error when the dynamic type lacks the method")
	}
}

func TestTitle_MapModel(t *testing.T) {
	builder := report.MustNew[map[string]any]("title",
		report.WithEngine[map[string]any](testsupport.NewRecordingEngine[map[string]any]()),
		report.WithTitle[map[string]any]("title"),
	)

	got, err := builder.Title(map[string]any{"title": "Q3 numbers"})
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if got != "Q3 numbers" {
		t.Fatalf("unexpected title %q", got)
	}

	if err := builder.SetTitle("title()"); !errors.Is(err, report.ErrInvalidTitleExpression) {
		t.Fatalf("maps have no methods, got %v", err)
	}
	if err := builder.SetTitle(""); err != nil {
		t.Fatalf("clearing the title: %v", err)
	}
	if got, _ := builder.Title(map[string]any{"title": "x"}); got != "" {
		t.Fatalf("cleared title must be empty, got %q", got)
	}

	if _, err := report.New[map[int]string]("title",
		report.WithEngine[map[int]string](testsupport.NewRecordingEngine[map[int]string]()),
		report.WithTitle[map[int]string]("x"),
	); !errors.Is(err, report.ErrInvalidTitleExpression) {
		t.Fatalf("non-string map keys are rejected, got %v", err)
	}
}
