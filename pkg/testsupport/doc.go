// Package testsupport provides recording stand-ins for report engines and
// converters plus golden file helpers shared by package tests.
package testsupport
