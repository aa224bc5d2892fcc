// Package pongo implements report.Engine with pongo2 (Django template syntax).
// Helper fragments are plain pongo2 macros and stylesheet blocks are literal
// template text, so composed templates need no engine specific handling.
package pongo
