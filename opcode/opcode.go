// Package opcode holds the static description of every legal MOS 6502
// instruction: for each (mnemonic root, addressing mode) pair, the 8-bit
// opcode byte and the width of its operand. The assembler and
// disassembler packages both consult this table; neither one hardcodes
// an opcode value of its own.
package opcode

import "fmt"

// Mode identifies a 6502 addressing mode. ModeNone covers both the
// implied forms (BRK, NOP, ...) and the accumulator forms (ASL, ROR,
// ...), since both take no operand and are selected in source by the
// absence of a modifier letter.
type Mode byte

// All addressing modes a SASM2 mnemonic suffix can select.
const (
	ModeNone Mode = iota
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

var modeName = [...]string{
	ModeNone:       "none",
	ModeImmediate:  "immediate",
	ModeZeroPage:   "zero-page",
	ModeZeroPageX:  "zero-page,X",
	ModeZeroPageY:  "zero-page,Y",
	ModeAbsolute:   "absolute",
	ModeAbsoluteX:  "absolute,X",
	ModeAbsoluteY:  "absolute,Y",
	ModeIndirect:   "indirect",
	ModeIndirectX:  "(indirect,X)",
	ModeIndirectY:  "(indirect),Y",
	ModeRelative:   "relative",
}

func (m Mode) String() string {
	if int(m) < len(modeName) {
		return modeName[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

// Instruction describes one legal (root, mode) pairing.
type Instruction struct {
	Root   string // 3-letter mnemonic root, lowercase
	Mode   Mode
	Opcode byte
	Width  byte // operand width in bytes: 0, 1, or 2
}

// Length is the total encoded length of the instruction, opcode plus operand.
func (i Instruction) Length() int { return 1 + int(i.Width) }

type key struct {
	root string
	mode Mode
}

var byRootMode = make(map[key]Instruction, 180)

// ByOpcode indexes every legal instruction by its encoded opcode byte,
// for use by the disassembler. A nil entry means the byte has no legal
// 6502 decoding.
var ByOpcode [256]*Instruction

// roots is every mnemonic root this table knows about, used to validate
// a root before attempting a mode lookup so that "illegal mnemonic"
// and "illegal addressing mode for this mnemonic" can be told apart.
var roots = make(map[string]bool, 64)

func add(root string, mode Mode, op byte, width byte) {
	inst := Instruction{Root: root, Mode: mode, Opcode: op, Width: width}
	byRootMode[key{root, mode}] = inst
	ByOpcode[op] = &inst
	roots[root] = true
}

func init() {
	add("lda", ModeImmediate, 0xa9, 1)
	add("lda", ModeZeroPage, 0xa5, 1)
	add("lda", ModeZeroPageX, 0xb5, 1)
	add("lda", ModeAbsolute, 0xad, 2)
	add("lda", ModeAbsoluteX, 0xbd, 2)
	add("lda", ModeAbsoluteY, 0xb9, 2)
	add("lda", ModeIndirectX, 0xa1, 1)
	add("lda", ModeIndirectY, 0xb1, 1)

	add("ldx", ModeImmediate, 0xa2, 1)
	add("ldx", ModeZeroPage, 0xa6, 1)
	add("ldx", ModeZeroPageY, 0xb6, 1)
	add("ldx", ModeAbsolute, 0xae, 2)
	add("ldx", ModeAbsoluteY, 0xbe, 2)

	add("ldy", ModeImmediate, 0xa0, 1)
	add("ldy", ModeZeroPage, 0xa4, 1)
	add("ldy", ModeZeroPageX, 0xb4, 1)
	add("ldy", ModeAbsolute, 0xac, 2)
	add("ldy", ModeAbsoluteX, 0xbc, 2)

	add("sta", ModeZeroPage, 0x85, 1)
	add("sta", ModeZeroPageX, 0x95, 1)
	add("sta", ModeAbsolute, 0x8d, 2)
	add("sta", ModeAbsoluteX, 0x9d, 2)
	add("sta", ModeAbsoluteY, 0x99, 2)
	add("sta", ModeIndirectX, 0x81, 1)
	add("sta", ModeIndirectY, 0x91, 1)

	add("stx", ModeZeroPage, 0x86, 1)
	add("stx", ModeZeroPageY, 0x96, 1)
	add("stx", ModeAbsolute, 0x8e, 2)

	add("sty", ModeZeroPage, 0x84, 1)
	add("sty", ModeZeroPageX, 0x94, 1)
	add("sty", ModeAbsolute, 0x8c, 2)

	add("adc", ModeImmediate, 0x69, 1)
	add("adc", ModeZeroPage, 0x65, 1)
	add("adc", ModeZeroPageX, 0x75, 1)
	add("adc", ModeAbsolute, 0x6d, 2)
	add("adc", ModeAbsoluteX, 0x7d, 2)
	add("adc", ModeAbsoluteY, 0x79, 2)
	add("adc", ModeIndirectX, 0x61, 1)
	add("adc", ModeIndirectY, 0x71, 1)

	add("sbc", ModeImmediate, 0xe9, 1)
	add("sbc", ModeZeroPage, 0xe5, 1)
	add("sbc", ModeZeroPageX, 0xf5, 1)
	add("sbc", ModeAbsolute, 0xed, 2)
	add("sbc", ModeAbsoluteX, 0xfd, 2)
	add("sbc", ModeAbsoluteY, 0xf9, 2)
	add("sbc", ModeIndirectX, 0xe1, 1)
	add("sbc", ModeIndirectY, 0xf1, 1)

	add("cmp", ModeImmediate, 0xc9, 1)
	add("cmp", ModeZeroPage, 0xc5, 1)
	add("cmp", ModeZeroPageX, 0xd5, 1)
	add("cmp", ModeAbsolute, 0xcd, 2)
	add("cmp", ModeAbsoluteX, 0xdd, 2)
	add("cmp", ModeAbsoluteY, 0xd9, 2)
	add("cmp", ModeIndirectX, 0xc1, 1)
	add("cmp", ModeIndirectY, 0xd1, 1)

	add("cpx", ModeImmediate, 0xe0, 1)
	add("cpx", ModeZeroPage, 0xe4, 1)
	add("cpx", ModeAbsolute, 0xec, 2)

	add("cpy", ModeImmediate, 0xc0, 1)
	add("cpy", ModeZeroPage, 0xc4, 1)
	add("cpy", ModeAbsolute, 0xcc, 2)

	add("bit", ModeZeroPage, 0x24, 1)
	add("bit", ModeAbsolute, 0x2c, 2)

	add("clc", ModeNone, 0x18, 0)
	add("sec", ModeNone, 0x38, 0)
	add("cli", ModeNone, 0x58, 0)
	add("sei", ModeNone, 0x78, 0)
	add("cld", ModeNone, 0xd8, 0)
	add("sed", ModeNone, 0xf8, 0)
	add("clv", ModeNone, 0xb8, 0)

	add("bcc", ModeRelative, 0x90, 1)
	add("bcs", ModeRelative, 0xb0, 1)
	add("beq", ModeRelative, 0xf0, 1)
	add("bne", ModeRelative, 0xd0, 1)
	add("bmi", ModeRelative, 0x30, 1)
	add("bpl", ModeRelative, 0x10, 1)
	add("bvc", ModeRelative, 0x50, 1)
	add("bvs", ModeRelative, 0x70, 1)

	add("brk", ModeNone, 0x00, 0)

	add("and", ModeImmediate, 0x29, 1)
	add("and", ModeZeroPage, 0x25, 1)
	add("and", ModeZeroPageX, 0x35, 1)
	add("and", ModeAbsolute, 0x2d, 2)
	add("and", ModeAbsoluteX, 0x3d, 2)
	add("and", ModeAbsoluteY, 0x39, 2)
	add("and", ModeIndirectX, 0x21, 1)
	add("and", ModeIndirectY, 0x31, 1)

	add("ora", ModeImmediate, 0x09, 1)
	add("ora", ModeZeroPage, 0x05, 1)
	add("ora", ModeZeroPageX, 0x15, 1)
	add("ora", ModeAbsolute, 0x0d, 2)
	add("ora", ModeAbsoluteX, 0x1d, 2)
	add("ora", ModeAbsoluteY, 0x19, 2)
	add("ora", ModeIndirectX, 0x01, 1)
	add("ora", ModeIndirectY, 0x11, 1)

	add("eor", ModeImmediate, 0x49, 1)
	add("eor", ModeZeroPage, 0x45, 1)
	add("eor", ModeZeroPageX, 0x55, 1)
	add("eor", ModeAbsolute, 0x4d, 2)
	add("eor", ModeAbsoluteX, 0x5d, 2)
	add("eor", ModeAbsoluteY, 0x59, 2)
	add("eor", ModeIndirectX, 0x41, 1)
	add("eor", ModeIndirectY, 0x51, 1)

	add("inc", ModeZeroPage, 0xe6, 1)
	add("inc", ModeZeroPageX, 0xf6, 1)
	add("inc", ModeAbsolute, 0xee, 2)
	add("inc", ModeAbsoluteX, 0xfe, 2)

	add("dec", ModeZeroPage, 0xc6, 1)
	add("dec", ModeZeroPageX, 0xd6, 1)
	add("dec", ModeAbsolute, 0xce, 2)
	add("dec", ModeAbsoluteX, 0xde, 2)

	add("inx", ModeNone, 0xe8, 0)
	add("iny", ModeNone, 0xc8, 0)
	add("dex", ModeNone, 0xca, 0)
	add("dey", ModeNone, 0x88, 0)

	add("jmp", ModeAbsolute, 0x4c, 2)
	add("jmp", ModeIndirect, 0x6c, 2)

	add("jsr", ModeAbsolute, 0x20, 2)
	add("rts", ModeNone, 0x60, 0)
	add("rti", ModeNone, 0x40, 0)

	add("nop", ModeNone, 0xea, 0)

	add("tax", ModeNone, 0xaa, 0)
	add("txa", ModeNone, 0x8a, 0)
	add("tay", ModeNone, 0xa8, 0)
	add("tya", ModeNone, 0x98, 0)
	add("txs", ModeNone, 0x9a, 0)
	add("tsx", ModeNone, 0xba, 0)

	add("pha", ModeNone, 0x48, 0)
	add("pla", ModeNone, 0x68, 0)
	add("php", ModeNone, 0x08, 0)
	add("plp", ModeNone, 0x28, 0)

	add("asl", ModeNone, 0x0a, 0)
	add("asl", ModeZeroPage, 0x06, 1)
	add("asl", ModeZeroPageX, 0x16, 1)
	add("asl", ModeAbsolute, 0x0e, 2)
	add("asl", ModeAbsoluteX, 0x1e, 2)

	add("lsr", ModeNone, 0x4a, 0)
	add("lsr", ModeZeroPage, 0x46, 1)
	add("lsr", ModeZeroPageX, 0x56, 1)
	add("lsr", ModeAbsolute, 0x4e, 2)
	add("lsr", ModeAbsoluteX, 0x5e, 2)

	add("rol", ModeNone, 0x2a, 0)
	add("rol", ModeZeroPage, 0x26, 1)
	add("rol", ModeZeroPageX, 0x36, 1)
	add("rol", ModeAbsolute, 0x2e, 2)
	add("rol", ModeAbsoluteX, 0x3e, 2)

	add("ror", ModeNone, 0x6a, 0)
	add("ror", ModeZeroPage, 0x66, 1)
	add("ror", ModeZeroPageX, 0x76, 1)
	add("ror", ModeAbsolute, 0x6e, 2)
	add("ror", ModeAbsoluteX, 0x7e, 2)
}

// ErrIllegalMnemonic is returned by Lookup when the (root, mode) pair is
// not a legal 6502 instruction, whether the root is unknown or merely
// lacks that addressing mode.
var ErrIllegalMnemonic = fmt.Errorf("illegal mnemonic")

// KnownRoot reports whether root names a real 6502 mnemonic, independent
// of which addressing modes it supports.
func KnownRoot(root string) bool {
	return roots[root]
}

// Lookup returns the opcode and operand width for the given mnemonic
// root and addressing mode. It fails with ErrIllegalMnemonic if the
// (root, mode) combination is not a legal 6502 instruction -- either
// because the root doesn't exist, or because that root doesn't support
// the requested addressing mode.
func Lookup(root string, mode Mode) (Instruction, error) {
	inst, ok := byRootMode[key{root, mode}]
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %s %s", ErrIllegalMnemonic, root, mode)
	}
	return inst, nil
}

// IsBranch reports whether root is one of the eight relative-branch
// mnemonics, which take a label in source but encode as a signed 8-bit
// PC-relative displacement.
func IsBranch(root string) bool {
	_, err := Lookup(root, ModeRelative)
	return err == nil
}
