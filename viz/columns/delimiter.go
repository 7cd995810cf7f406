package columns

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Delimiter separates fields on a line.
type Delimiter rune

// Whitespace splits on runs of any whitespace.
const Whitespace Delimiter = ' '

const (
	Comma     Delimiter = ','
	Tab       Delimiter = '\t'
	Semicolon Delimiter = ';'
)

// ParseDelimiter accepts a name (whitespace, space, comma, tab, semicolon) or
// a single character.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "", "whitespace", "space", "ws":
		return Whitespace, nil
	case "comma":
		return Comma, nil
	case "tab", `\t`:
		return Tab, nil
	case "semicolon":
		return Semicolon, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q: want a name or a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == ' ' {
		return Whitespace, nil
	}
	return Delimiter(r), nil
}

func (d Delimiter) String() string {
	switch d {
	case Whitespace:
		return "whitespace"
	case Tab:
		return "tab"
	}
	return string(rune(d))
}

const fieldCutset = " \t\r\n"

// split tokenizes one line. Whitespace mode collapses runs of separators;
// otherwise fields are cut on the exact delimiter and trimmed, keeping their
// positions (an empty field is still a field).
func (d Delimiter) split(line string) []string {
	if d == Whitespace {
		return strings.Fields(line)
	}
	fields := strings.Split(line, string(rune(d)))
	for i, f := range fields {
		fields[i] = strings.Trim(f, fieldCutset)
	}
	return fields
}
