// Package columns parses delimiter-separated numeric text into named columns.
//
// The first non-blank line is the header row; every later non-blank line is a
// data row. A field that does not parse as a number is skipped and reported
// as a Diagnostic, so a column may end up shorter than its siblings. Lookups
// are by name only and never fail: an unknown name yields an empty column.
package columns
