package pdf

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	blockBreak = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|section|article|header|footer|ul|ol|pre|blockquote)\s*>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// extractText reduces rendered markup to plain lines. Block level closing
// tags become line breaks; style and script bodies are dropped.
func extractText(markup string) []string {
	marked := blockBreak.ReplaceAllStringFunc(markup, func(tag string) string {
		return tag + "\n"
	})
	plain := html.UnescapeString(textSanitizer().Sanitize(marked))
	plain = strings.ReplaceAll(plain, "\r\n", "\n")

	lines := strings.Split(plain, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	plain = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	plain = strings.Trim(plain, "\n")
	if plain == "" {
		return nil
	}
	return strings.Split(plain, "\n")
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
