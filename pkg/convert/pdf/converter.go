package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	pdflib "seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/goliatone/go-reportgen/pkg/report"
)

const (
	// Name is the registry name of the converter.
	Name = "pdf"
	// ContentType is the media type of the converter output.
	ContentType = "application/pdf"
)

// Option configures a Converter.
type Option func(*Converter)

// WithFontSize sets the body font size in points.
func WithFontSize(size float64) Option {
	return func(c *Converter) {
		if size > 0 {
			c.fontSize = size
		}
	}
}

// WithMargin sets the page margin in points.
func WithMargin(margin float64) Option {
	return func(c *Converter) {
		if margin >= 0 {
			c.margin = margin
		}
	}
}

// WithPaper sets the page size.
func WithPaper(paper *pdflib.Rectangle) Option {
	return func(c *Converter) {
		if paper != nil {
			c.paper = paper
		}
	}
}

// Converter turns rendered HTML into a plain text PDF document. Markup is
// reduced to text, wrapped to the page width and flowed across as many
// pages as needed.
type Converter struct {
	paper    *pdflib.Rectangle
	fontSize float64
	margin   float64
}

// New returns a Converter writing A4 pages.
func New(opts ...Option) *Converter {
	c := &Converter{
		paper:    document.A4,
		fontSize: 10,
		margin:   72,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var _ report.MetadataConverter = (*Converter)(nil)

func (c *Converter) Name() string        { return Name }
func (c *Converter) ContentType() string { return ContentType }

// Convert renders markup without a heading.
func (c *Converter) Convert(markup string) ([]byte, error) {
	return c.ConvertDocument(markup, report.Metadata{})
}

// ConvertDocument renders markup and prints meta.Title as a heading on the
// first page.
func (c *Converter) ConvertDocument(markup string, meta report.Metadata) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := c.write(buf, strings.TrimSpace(meta.Title), extractText(markup)); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Converter) write(buf *bytes.Buffer, title string, lines []string) error {
	doc, err := document.WriteMultiPage(buf, c.paper, pdflib.V1_7, nil)
	if err != nil {
		return err
	}

	body := standard.Helvetica.New()
	bold := standard.HelveticaBold.New()
	headingSize := c.fontSize * 1.6

	w := &pageWriter{
		doc:     doc,
		paper:   c.paper,
		margin:  c.margin,
		leading: c.fontSize * 1.2,
		style: func(page *document.Page) {
			page.TextSetFont(body, c.fontSize)
			page.TextSetLeading(c.fontSize * 1.2)
			page.SetFillColor(color.Black)
		},
	}
	w.open()

	if title != "" {
		w.page.TextSetFont(bold, headingSize)
		for _, line := range wrap(title, w.width(), w.measure(headingSize)) {
			if err := w.show(line); err != nil {
				return err
			}
		}
		w.page.TextSetFont(body, c.fontSize)
		if err := w.show(""); err != nil {
			return err
		}
	}

	measure := w.measure(c.fontSize)
	for _, line := range lines {
		for _, wrapped := range wrap(line, w.width(), measure) {
			if err := w.show(wrapped); err != nil {
				return err
			}
		}
	}

	if err := w.close(); err != nil {
		return err
	}
	return doc.Close()
}

type pageWriter struct {
	doc     *document.MultiPage
	page    *document.Page
	paper   *pdflib.Rectangle
	margin  float64
	leading float64
	style   func(*document.Page)
	y       float64
}

func (w *pageWriter) open() {
	w.page = w.doc.AddPage()
	w.style(w.page)
	w.page.TextBegin()
	w.y = w.paper.URy - w.margin
	w.page.TextFirstLine(w.margin, w.y)
}

func (w *pageWriter) close() error {
	w.page.TextEnd()
	return w.page.Close()
}

func (w *pageWriter) show(line string) error {
	if w.y < w.margin {
		if err := w.close(); err != nil {
			return err
		}
		w.open()
	}
	if line != "" {
		w.page.TextShow(line)
	}
	w.page.TextNextLine()
	w.y -= w.leading
	return nil
}

// measure returns the width in points of s set in the page's current font.
// Fonts that cannot lay out text fall back to half an em per rune.
func (w *pageWriter) measure(size float64) func(string) float64 {
	return func(s string) float64 {
		if seq := w.page.TextLayout(nil, s); seq != nil {
			return seq.TotalWidth()
		}
		return float64(utf8.RuneCountInString(s)) * size * 0.5
	}
}

func (w *pageWriter) width() float64 {
	return w.paper.Dx() - 2*w.margin
}

// wrap splits line on word boundaries into pieces whose measured width stays
// within width. Words wider than a line are hard broken between runes; a
// single rune is never split, even if it alone is too wide.
func wrap(line string, width float64, measure func(string) float64) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := ""
	for _, word := range words {
		if measure(word) > width {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			pieces := breakWord(word, width, measure)
			out = append(out, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		switch {
		case current == "":
			current = word
		case measure(current+" "+word) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func breakWord(word string, width float64, measure func(string) float64) []string {
	var out []string
	var piece []rune
	for _, r := range word {
		if len(piece) > 0 && measure(string(append(piece, r))) > width {
			out = append(out, string(piece))
			piece = nil
		}
		piece = append(piece, r)
	}
	return append(out, string(piece))
}
