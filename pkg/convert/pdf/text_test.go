package pdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractText(t *testing.T) {
	markup := `<html><head><style>
body { color: red; }
</style></head><body>
<h1>Invoice &amp; receipt</h1>
<p>First   paragraph
continues here.</p>
<script>alert("x")</script>
<ul><li>one</li><li>two</li></ul>
line<br/>break
</body></html>`

	want := []string{
		"Invoice & receipt",
		"",
		"First paragraph",
		"continues here.",
		"",
		"one",
		"two",
		"",
		"line",
		"break",
	}
	got := extractText(markup)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extracted text mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := extractText("<div>  </div><style>p{}</style>"); got != nil {
		t.Fatalf("expected no lines, got %q", got)
	}
}

// proportional gives narrow glyphs a quarter width and wide ones a full
// width, so wrapping that counts runes would overflow.
func proportional(s string) float64 {
	var w float64
	for _, r := range s {
		switch r {
		case 'i', 'l', ' ', '.':
			w += 0.25
		case 'M', 'W', 'm', 'w':
			w += 1
		default:
			w += 0.5
		}
	}
	return w
}

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		width float64
		want  []string
	}{
		{name: "fits", line: "short line", width: 10, want: []string{"short line"}},
		{name: "breaks on words", line: "aaa bbb ccc ddd", width: 3.25, want: []string{"aaa bbb", "ccc ddd"}},
		{name: "wide glyphs", line: "MMMM WWWW mm", width: 4, want: []string{"MMMM", "WWWW", "mm"}},
		{name: "narrow glyphs pack tighter", line: "ill ill ill ill", width: 4, want: []string{"ill ill ill ill"}},
		{name: "long word hard broken", line: "x MMMMMMMMMM y", width: 4, want: []string{"x", "MMMM", "MMMM", "MM y"}},
		{name: "single rune wider than line", line: "W", width: 0.5, want: []string{"W"}},
		{name: "empty", line: "   ", width: 4, want: []string{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrap(tc.line, tc.width, proportional)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
			}
			for _, line := range got {
				if len([]rune(line)) > 1 && proportional(line) > tc.width {
					t.Fatalf("line %q measures %.2f, exceeds %.2f", line, proportional(line), tc.width)
				}
			}
		})
	}
}
