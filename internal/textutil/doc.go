// Package textutil extracts numbers from free text, rewrites separators and
// filters lists of strings by required substrings.
package textutil
