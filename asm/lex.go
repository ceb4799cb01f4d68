package asm

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// directiveParser parses the remainder of a line (the tokens following
// the directive keyword) into an item.
type directiveParser func(p *parser, label fstring, fields []fstring) (item, error)

// directives dispatches a line's leading keyword to its parser using a
// generic prefix tree rather than a bare map, so an unambiguous
// abbreviation ("dat", "zb") resolves exactly like the full keyword
// would.
var directives = prefixtree.New[directiveParser]()

func init() {
	directives.Add("data", (*parser).parseData)
	directives.Add("label", (*parser).parseLabel)
	directives.Add("org", (*parser).parseOrg)
	directives.Add("zbyte", (*parser).parseZbyte)
}

// modifierPattern reports whether s is a valid addressing-mode suffix
// token on its own: one of "i", "z", "a", "n", optionally followed by
// "x" or "y" ("zx", "zy", "ax", "ay", "nx", "ny").
func modifierPattern(s string) (modifier, index, bool) {
	if len(s) == 0 || len(s) > 2 {
		return modNone, indexNone, false
	}
	var m modifier
	switch s[0] {
	case 'i':
		m = modImmediate
	case 'z':
		m = modZeroPage
	case 'a':
		m = modAbsolute
	case 'n':
		m = modIndirect
	default:
		return modNone, indexNone, false
	}
	if len(s) == 1 {
		return m, indexNone, true
	}
	if m == modImmediate {
		return modNone, indexNone, false // immediate never takes an index
	}
	switch s[1] {
	case 'x':
		return m, indexX, true
	case 'y':
		return m, indexY, true
	default:
		return modNone, indexNone, false
	}
}

// splitMnemonic separates a mnemonic token into its 3-letter root and
// an optional modifier+index suffix attached to the same token, e.g.
// "staz" -> ("sta", "z"), "jmpnx" -> ("jmp", "nx"), "brk" -> ("brk", "").
func splitMnemonic(s string) (root, suffix string, ok bool) {
	if len(s) < 3 || len(s) > 5 {
		return "", "", false
	}
	return s[:3], s[3:], true
}

// isModifierToken reports whether s could only be an addressing-mode
// suffix (and not, say, a label reference or hex literal), used to
// decide whether a mnemonic's modifier was written as a separate token
// ("lda i 42") rather than fused onto the root ("ldai 42",
// "staz .counter").
func isModifierToken(s string) bool {
	_, _, ok := modifierPattern(s)
	return ok
}

func toLower(s string) string {
	return strings.ToLower(s)
}
