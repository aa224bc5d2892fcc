// Package manifest reads the report definitions used by the CLI. A manifest
// is a JSON or YAML document mapping report ids to template files and the
// settings applied to their builder:
//
//	reports:
//	  invoice:
//	    template: invoice.html
//	    layout: layout.html
//	    stylesheet: invoice.css
//	    helpers: helpers.html
//	    engine: pongo
//	    converter: pdf
//	    title: Customer
//
// precompile and strip_styles default to true.
package manifest
