package asm

import (
	"fmt"
	"io"
	"strings"
)

// logger traces the assembler's pipeline when verbose mode is on --
// gated fmt.Fprintf calls, not a logging library.
type logger struct {
	w       io.Writer
	verbose bool
}

func newLogger(w io.Writer, verbose bool) *logger {
	return &logger{w: w, verbose: verbose}
}

func (l *logger) section(name string) {
	if !l.verbose {
		return
	}
	rule := strings.Repeat("-", len(name)+6)
	fmt.Fprintln(l.w, rule)
	fmt.Fprintf(l.w, "-- %s --\n", name)
	fmt.Fprintln(l.w, rule)
}

func (l *logger) line(pos fstring, format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	detail := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "%-4d %-3d | %s\n", pos.row, pos.column+1, detail)
}

func (l *logger) logf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.w, format, args...)
	fmt.Fprintln(l.w)
}

func (l *logger) bytes(addr int, b []byte) {
	if !l.verbose || len(b) == 0 {
		return
	}
	for i, n := 0, len(b); i < n; i += 8 {
		j := i + 8
		if j > n {
			j = n
		}
		l.logf("%04X- % X", addr+i, b[i:j])
	}
}
