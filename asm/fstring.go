// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An fstring is a string that keeps track of its position within the
// source line it was read from, so that every token parsed out of a
// line can still report an accurate column in an error message.
type fstring struct {
	row    int    // 1-based line number
	column int    // 0-based column of the start of this substring
	str    string // the substring of interest
	full   string // the entire original line
}

func newFstring(row int, str string) fstring {
	return fstring{row: row, str: str, full: str}
}

func (l fstring) isEmpty() bool {
	return len(l.str) == 0
}

func (l fstring) consume(n int) fstring {
	return fstring{row: l.row, column: l.column + n, str: l.str[n:], full: l.full}
}

func (l fstring) trunc(n int) fstring {
	return fstring{row: l.row, column: l.column, str: l.str[:n], full: l.full}
}

func (l fstring) scanWhile(fn func(byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l fstring) consumeWhile(fn func(byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	return l.trunc(i), l.consume(i)
}

func (l fstring) consumeWhitespace() fstring {
	_, remain := l.consumeWhile(isSpace)
	return remain
}

// fields splits the line into whitespace-separated tokens, in order,
// each one still carrying its own row/column.
func (l fstring) fields() []fstring {
	var out []fstring
	rest := l.consumeWhitespace()
	for !rest.isEmpty() {
		var tok fstring
		tok, rest = rest.consumeWhile(func(c byte) bool { return !isSpace(c) })
		out = append(out, tok)
		rest = rest.consumeWhitespace()
	}
	return out
}

// stripTrailingComment removes everything from the first ';' onward.
func (l fstring) stripTrailingComment() fstring {
	i := l.scanWhile(func(c byte) bool { return c != ';' })
	return l.trunc(i)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLabelStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isLabelChar(c byte) bool {
	return isLabelStart(c) || (c >= '0' && c <= '9')
}
