// Package testutil holds fixtures shared by package tests: a goroutine-safe
// log buffer, a temp-dir file writer and an indentation stripper for inline
// HCL and CSV snippets.
package testutil
