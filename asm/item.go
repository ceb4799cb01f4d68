package asm

import "github.com/eblen/SASM2/opcode"

// modifier is the addressing-mode letter taken from an instruction's
// mnemonic (its 4th character, whether attached to the root or given as
// a separate token -- see lex.go).
type modifier byte

const (
	modNone modifier = iota
	modImmediate
	modZeroPage
	modAbsolute
	modIndirect
)

// index is the optional index register taken from an instruction's
// mnemonic (its 5th character).
type index byte

const (
	indexNone index = iota
	indexX
	indexY
)

// operandKind distinguishes a bare hex literal from a label reference
// in an instruction or data operand.
type operandKind byte

const (
	operandLiteral operandKind = iota
	operandLabel
)

// An operand is either a hex literal or a reference to a label, as
// spelled in source. width is ceil(nibbles/2), minimum 1, and reflects
// only how the literal was spelled (e.g. "00E6" is two bytes where "E6"
// is one); addressing-mode selection never consults it.
type operand struct {
	kind  operandKind
	value int // meaningful when kind == operandLiteral
	width int // meaningful when kind == operandLiteral
	label string
	line  fstring
}

// item is a parsed line of SASM2 source. Exactly one concrete type below
// is produced per non-blank, non-comment line.
type item interface {
	pos() fstring
}

// orgItem resets the assembly pointer.
type orgItem struct {
	line fstring
	addr int
}

func (i *orgItem) pos() fstring { return i.line }

// labelItem binds a name to an address: either the current assembly
// pointer (hasValue == false, from a ".name" line) or an explicit value
// (hasValue == true, from a "label NAME VALUE" line).
type labelItem struct {
	line     fstring
	name     string
	hasValue bool
	value    int
}

func (i *labelItem) pos() fstring { return i.line }

// zbyteItem allocates count zero-page bytes under name.
type zbyteItem struct {
	line  fstring
	name  string
	count int
}

func (i *zbyteItem) pos() fstring { return i.line }

// dataItem emits literal bytes: either an explicit hex byte sequence in
// source order, or a single label reference resolved as a 2-byte
// little-endian address.
type dataItem struct {
	line       fstring
	bytes      []byte
	isLabelRef bool
	labelRef   string
	addr       int // address assigned to this item in pass 1
}

func (i *dataItem) pos() fstring { return i.line }

// instrItem is a single 6502 instruction.
type instrItem struct {
	line  fstring
	root  string
	mod   modifier
	idx   index
	op1   *operand // nil for implied/accumulator instructions
	op2   *operand // optional literal offset added to op1 at encode time
	addr  int       // address assigned to this instruction in pass 1
	inst  opcode.Instruction
}

func (i *instrItem) pos() fstring { return i.line }
