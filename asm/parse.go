package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/prefixtree/v2"
	"github.com/eblen/SASM2/opcode"
)

// parser turns source lines into a flat stream of items. It carries no
// address-layout state -- that belongs to pass1 -- only the bookkeeping
// needed to classify and tokenize one line at a time.
type parser struct {
	log *logger
}

// parseSource reads every line from r and returns the parsed item
// stream. It stops at the first error, per spec: no partial output, no
// multi-error reporting in a single run.
func parseSource(r io.Reader, log *logger) ([]item, error) {
	p := &parser{log: log}
	var items []item

	log.section("Parsing source")

	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := newFstring(row, scanner.Text()).stripTrailingComment()
		fields := line.fields()
		if len(fields) == 0 {
			continue
		}

		it, err := p.parseLine(line, fields)
		if err != nil {
			return nil, err
		}
		if it != nil {
			items = append(items, it)
			log.line(it.pos(), "parsed %T", it)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return items, nil
}

// parseLine classifies fields[0] and dispatches to the matching parser.
func (p *parser) parseLine(line fstring, fields []fstring) (item, error) {
	first := fields[0]

	// Dot-prefixed identifier: a label definition at the current address.
	if first.str[0] == '.' {
		return p.parseLocalLabel(first)
	}

	// One of the four directive keywords.
	if parseFn, err := directives.FindValue(toLower(first.str)); err == nil {
		return parseFn(p, line, fields[1:])
	} else if err != prefixtree.ErrPrefixNotFound {
		return nil, &Error{Line: first.row, Col: first.column + 1,
			Msg: fmt.Sprintf("ambiguous directive %q", first.str)}
	}

	// Otherwise, an instruction.
	return p.parseInstruction(line, fields)
}

func (p *parser) parseLocalLabel(tok fstring) (item, error) {
	name := tok.str[1:]
	if name == "" || !validLabelName(name) {
		return nil, &Error{Line: tok.row, Col: tok.column + 1,
			Msg: fmt.Sprintf("invalid label %q", tok.str)}
	}
	return &labelItem{line: tok, name: name}, nil
}

func validLabelName(s string) bool {
	if s == "" || !isLabelStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLabelChar(s[i]) {
			return false
		}
	}
	return true
}

// parseOrg handles "org ADDR".
func (p *parser) parseOrg(line fstring, fields []fstring) (item, error) {
	if len(fields) != 1 {
		return nil, &Error{Line: line.row, Col: line.column + 1,
			Msg: "org requires exactly one hex address"}
	}
	addr, _, err := parseHexLiteral(fields[0])
	if err != nil {
		return nil, err
	}
	if addr > 0xffff {
		return nil, &Error{Line: fields[0].row, Col: fields[0].column + 1,
			Msg: fmt.Sprintf("org address %#x exceeds 16 bits", addr)}
	}
	return &orgItem{line: line, addr: addr}, nil
}

// parseLabel handles "label NAME VALUE".
func (p *parser) parseLabel(line fstring, fields []fstring) (item, error) {
	if len(fields) != 2 {
		return nil, &Error{Line: line.row, Col: line.column + 1,
			Msg: "label directive requires a name and a hex value"}
	}
	name := fields[0]
	if !validLabelName(name.str) {
		return nil, &Error{Line: name.row, Col: name.column + 1,
			Msg: fmt.Sprintf("invalid label name %q", name.str)}
	}
	value, _, err := parseHexLiteral(fields[1])
	if err != nil {
		return nil, err
	}
	return &labelItem{line: line, name: name.str, hasValue: true, value: value}, nil
}

// parseZbyte handles "zbyte NAME" and "zbyte NAME COUNT" (COUNT
// defaults to 1 when omitted).
func (p *parser) parseZbyte(line fstring, fields []fstring) (item, error) {
	if len(fields) < 1 || len(fields) > 2 {
		return nil, &Error{Line: line.row, Col: line.column + 1,
			Msg: "zbyte requires a name and an optional hex count"}
	}
	name := fields[0]
	if !validLabelName(name.str) {
		return nil, &Error{Line: name.row, Col: name.column + 1,
			Msg: fmt.Sprintf("invalid label name %q", name.str)}
	}
	count := 1
	if len(fields) == 2 {
		v, _, err := parseHexLiteral(fields[1])
		if err != nil {
			return nil, err
		}
		if v <= 0 || v > 0xff {
			return nil, &Error{Line: fields[1].row, Col: fields[1].column + 1,
				Msg: fmt.Sprintf("zbyte count %#x out of range for a u8", v)}
		}
		count = v
	}
	return &zbyteItem{line: line, name: name.str, count: count}, nil
}

// parseData handles "data BYTES" (an even-length hex string, emitted
// verbatim in source order) and "data .label" (a label reference,
// little-endianized at encode time).
func (p *parser) parseData(line fstring, fields []fstring) (item, error) {
	if len(fields) != 1 {
		return nil, &Error{Line: line.row, Col: line.column + 1,
			Msg: "data requires a hex byte sequence or a single label reference"}
	}
	tok := fields[0]
	if tok.str[0] == '.' {
		name := tok.str[1:]
		if !validLabelName(name) {
			return nil, &Error{Line: tok.row, Col: tok.column + 1,
				Msg: fmt.Sprintf("invalid label reference %q", tok.str)}
		}
		return &dataItem{line: line, isLabelRef: true, labelRef: name}, nil
	}

	for i := 0; i < len(tok.str); i++ {
		if !isHexDigit(tok.str[i]) {
			return nil, &Error{Line: tok.row, Col: tok.column + 1,
				Msg: fmt.Sprintf("non-hex digit in data bytes %q", tok.str)}
		}
	}
	if len(tok.str)%2 != 0 {
		return nil, &Error{Line: tok.row, Col: tok.column + 1,
			Msg: fmt.Sprintf("data byte sequence %q has an odd number of hex digits", tok.str)}
	}
	b := make([]byte, len(tok.str)/2)
	for i := range b {
		b[i] = hexByte(tok.str[i*2 : i*2+2])
	}
	return &dataItem{line: line, bytes: b}, nil
}

// parseInstruction handles a mnemonic, its optional modifier token, and
// up to two operands.
func (p *parser) parseInstruction(line fstring, fields []fstring) (item, error) {
	mnemTok := fields[0]
	mnem := toLower(mnemTok.str)
	root, suffix, ok := splitMnemonic(mnem)
	if !ok || !opcode.KnownRoot(root) {
		return nil, &Error{Line: mnemTok.row, Col: mnemTok.column + 1,
			Msg: fmt.Sprintf("invalid mnemonic %q", mnemTok.str)}
	}

	rest := fields[1:]

	mod, idx := modNone, indexNone
	branch := opcode.IsBranch(root)

	if suffix != "" {
		m, x, ok := modifierPattern(suffix)
		if !ok {
			return nil, &Error{Line: mnemTok.row, Col: mnemTok.column + 1,
				Msg: fmt.Sprintf("invalid addressing-mode suffix %q on %q", suffix, mnemTok.str)}
		}
		mod, idx = m, x
	} else if !branch && len(rest) > 0 && isModifierToken(toLower(rest[0].str)) {
		m, x, _ := modifierPattern(toLower(rest[0].str))
		mod, idx = m, x
		rest = rest[1:]
	}

	var op1, op2 *operand
	var err error
	if len(rest) > 0 {
		op1, err = parseOperand(rest[0])
		if err != nil {
			return nil, err
		}
	}
	if len(rest) > 1 {
		op2, err = parseOperand(rest[1])
		if err != nil {
			return nil, err
		}
		if op2.kind != operandLiteral || op2.width > 1 {
			return nil, &Error{Line: rest[1].row, Col: rest[1].column + 1,
				Msg: "offset operand must be a hex literal of at most two digits"}
		}
	}
	if len(rest) > 2 {
		extra := rest[2]
		return nil, &Error{Line: extra.row, Col: extra.column + 1,
			Msg: fmt.Sprintf("unexpected token %q", extra.str)}
	}

	return &instrItem{line: line, root: root, mod: mod, idx: idx, op1: op1, op2: op2}, nil
}

// parseOperand parses a single hex literal or ".label" token.
func parseOperand(tok fstring) (*operand, error) {
	if tok.str[0] == '.' {
		name := tok.str[1:]
		if !validLabelName(name) {
			return nil, &Error{Line: tok.row, Col: tok.column + 1,
				Msg: fmt.Sprintf("invalid label reference %q", tok.str)}
		}
		return &operand{kind: operandLabel, label: name, line: tok}, nil
	}
	value, width, err := parseHexLiteral(tok)
	if err != nil {
		return nil, err
	}
	return &operand{kind: operandLiteral, value: value, width: width, line: tok}, nil
}

// parseHexLiteral parses a bare hex-digit token. Its width is
// ceil(nibbles/2), minimum 1: leading zeros are significant ("00E6" is
// two bytes, "E6" is one).
func parseHexLiteral(tok fstring) (value int, width int, err error) {
	if tok.isEmpty() {
		return 0, 0, &Error{Line: tok.row, Col: tok.column + 1, Msg: "expected a hex literal"}
	}
	for i := 0; i < len(tok.str); i++ {
		if !isHexDigit(tok.str[i]) {
			return 0, 0, &Error{Line: tok.row, Col: tok.column + 1,
				Msg: fmt.Sprintf("non-hex digit in literal %q", tok.str)}
		}
	}
	v, parseErr := strconv.ParseInt(tok.str, 16, 64)
	if parseErr != nil {
		return 0, 0, &Error{Line: tok.row, Col: tok.column + 1,
			Msg: fmt.Sprintf("invalid hex literal %q: %v", tok.str, parseErr)}
	}
	width = (len(tok.str) + 1) / 2
	if width < 1 {
		width = 1
	}
	return int(v), width, nil
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

func hexByte(s string) byte {
	return hexNibble(s[0])<<4 | hexNibble(s[1])
}
