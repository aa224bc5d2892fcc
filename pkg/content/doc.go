// Package content describes where report text comes from. Templates, layouts,
// stylesheets, and helper fragments can live on disk, inside an fs.FS (for
// example a go:embed bundle), or behind an HTTP endpoint.
package content
