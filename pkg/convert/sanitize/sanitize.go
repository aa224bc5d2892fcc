// Package sanitize provides a converter that cleans rendered markup with a
// bluemonday user generated content policy, for reports that embed data from
// untrusted sources.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	Name        = "sanitize"
	ContentType = "text/html; charset=utf-8"
)

// Option adjusts the policy before it is used.
type Option func(*bluemonday.Policy)

// AllowStyles keeps <style> elements and class attributes, so reports that
// inline their stylesheet survive sanitising.
func AllowStyles() Option {
	return func(p *bluemonday.Policy) {
		p.AllowUnsafe(true)
		p.AllowElements("style")
		p.AllowAttrs("class").Globally()
	}
}

// AllowDocument keeps the html, head and body scaffolding of a full page.
func AllowDocument() Option {
	return func(p *bluemonday.Policy) {
		p.AllowElements("html", "head", "body", "title", "meta")
		p.AllowAttrs("charset").OnElements("meta")
	}
}

// Converter strips unsafe markup from rendered reports.
type Converter struct {
	policy *bluemonday.Policy
}

// New builds a converter around bluemonday's UGC policy.
func New(opts ...Option) *Converter {
	policy := bluemonday.UGCPolicy()
	for _, opt := range opts {
		if opt != nil {
			opt(policy)
		}
	}
	return &Converter{policy: policy}
}

func (c *Converter) Name() string        { return Name }
func (c *Converter) ContentType() string { return ContentType }

func (c *Converter) Convert(markup string) ([]byte, error) {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return []byte{}, nil
	}
	return c.policy.SanitizeBytes([]byte(trimmed)), nil
}
