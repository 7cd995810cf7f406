package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"dataviz/hal"
)

// ErrPanic is returned by a step that panicked.
var ErrPanic = errors.New("frame step panicked")

const overlayCols = 80

// guard recovers a panicking step, writes the panic and stack to the host
// logger and overlay, and stops the loop with ErrPanic.
func guard(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			reportPanic(h, r, stack)
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, value any, stack []byte) {
	lines := []string{"dataviz panic:", fmt.Sprintf("panic: %v", value)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	d := h.Display()
	if d == nil {
		return
	}
	var wrapped []string
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", "  ")
		for len(line) > 0 {
			chunk, rest := takeRunes(line, overlayCols)
			wrapped = append(wrapped, chunk)
			line = strings.TrimLeft(rest, " ")
		}
	}
	d.Overlay(wrapped...)
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
