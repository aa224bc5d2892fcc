// Package pdf converts rendered report markup into PDF documents using
// seehuhn.de/go/pdf. Only text survives the conversion: markup is stripped,
// block elements become line breaks and the result is wrapped onto A4 pages.
package pdf
