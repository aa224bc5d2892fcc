package report

import "strings"

// Placeholder tokens recognised by Compose. A doubled Marker ("<<<<") renders
// a literal Marker and never opens a token.
const (
	Marker       = "<<"
	StylesToken  = "<<STYLES>>"
	HelpersToken = "<<HELPERS>>"
	BodyToken    = "<<BODY>>"
)

const escapedMarker = Marker + Marker

// Parts holds the raw text Compose merges into a single template.
type Parts struct {
	Body    string
	Layout  string
	Styles  string
	Helpers string
}

// Compose produces the exact text handed to the engine. The layout, when
// present, receives the body at BodyToken. Styles are wrapped in a style block
// with a line break on each side; helpers are inserted verbatim. Substituted
// values are never rescanned.
func Compose(parts Parts) (string, error) {
	if parts.Body == "" {
		return "", ErrMissingTemplate
	}

	var sb strings.Builder
	sb.Grow(len(parts.Layout) + len(parts.Body) + len(parts.Styles) + len(parts.Helpers))
	if parts.Layout == "" {
		expand(&sb, parts.Body, parts, false)
	} else {
		expand(&sb, parts.Layout, parts, true)
	}
	return sb.String(), nil
}

// StyleBlock returns the wrapper Compose substitutes for StylesToken.
func StyleBlock(styles string) string {
	if styles == "" {
		return ""
	}
	return "<style>\n" + styles + "\n</style>"
}

func expand(sb *strings.Builder, text string, parts Parts, inLayout bool) {
	for {
		i := strings.Index(text, Marker)
		if i < 0 {
			sb.WriteString(text)
			return
		}
		sb.WriteString(text[:i])
		rest := text[i:]

		switch {
		case strings.HasPrefix(rest, escapedMarker):
			sb.WriteString(Marker)
			text = rest[len(escapedMarker):]
		case strings.HasPrefix(rest, StylesToken):
			sb.WriteString(StyleBlock(parts.Styles))
			text = rest[len(StylesToken):]
		case strings.HasPrefix(rest, HelpersToken):
			sb.WriteString(parts.Helpers)
			text = rest[len(HelpersToken):]
		case inLayout && strings.HasPrefix(rest, BodyToken):
			expand(sb, parts.Body, parts, false)
			text = rest[len(BodyToken):]
		default:
			sb.WriteByte(rest[0])
			text = rest[1:]
		}
	}
}
