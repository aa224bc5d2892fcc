// Package convert holds the converter registry used to resolve report
// converters by name. Concrete converters live in subpackages (pdf, sanitize).
package convert
