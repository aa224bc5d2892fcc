// Package report composes a document template (body, optional layout,
// stylesheet, and helper fragments), hands the composed text to a pluggable
// template engine together with a typed model, and optionally pipes the result
// through a converter such as an HTML to PDF renderer.
//
// A Builder tracks which configuration values changed since the last
// compilation. Under the precompile strategy the engine compiles once per
// distinct composed template and subsequent renders reuse the compiled
// artifact; the parse strategy hands the full template to the engine on every
// call.
//
//	builder, err := report.New[Invoice]("invoice",
//		report.WithPrecompile[Invoice](true),
//		report.WithConverter[Invoice](pdf.New()),
//	)
//	if err != nil {
//		return err
//	}
//	builder.WithTemplate(body).WithStyles(css)
//	out, err := builder.Convert(invoice)
//
// A Builder is not safe for concurrent mutation. Configure it once, then use it
// for rendering from a single goroutine or guard it externally.
package report
