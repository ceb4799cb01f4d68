package asm

import (
	"fmt"

	"github.com/eblen/SASM2/opcode"
	"github.com/eblen/SASM2/zpm"
)

// pass1 walks the parsed item stream once, computing the assembly
// pointer, binding every label (code, explicit, and zero-page) to its
// final address, and fixing every instruction's encoded length. It
// never needs a forward-referenced label's value to do this: addressing
// mode comes entirely from the mnemonic's suffix letters.
func pass1(items []item, sys zpm.System, log *logger) (symbolTable, error) {
	log.section("Pass 1: layout and symbol resolution")

	syms := make(symbolTable)
	zp := zpm.New(sys)
	pc := 0

	for _, it := range items {
		switch v := it.(type) {
		case *orgItem:
			pc = v.addr
			log.line(v.line, "org $%04X", pc)

		case *labelItem:
			var sym Symbol
			if v.hasValue {
				sym = Symbol{Value: v.value, Kind: KindExplicit, Width: explicitWidth(v.value)}
			} else {
				sym = Symbol{Value: pc, Kind: KindCode, Width: 2}
			}
			if err := syms.define(v.name, v.line, sym); err != nil {
				return nil, err
			}
			log.line(v.line, "label %s = $%04X (%s)", v.name, sym.Value, sym.Kind)

		case *zbyteItem:
			base, err := zp.Alloc(v.count)
			if err != nil {
				return nil, &Error{Line: v.line.row, Cause: err}
			}
			if err := syms.define(v.name, v.line, Symbol{Value: base, Width: 1, Kind: KindZeroPage}); err != nil {
				return nil, err
			}
			log.line(v.line, "zbyte %s = $%02X (%d bytes)", v.name, base, v.count)

		case *dataItem:
			v.addr = pc
			n := 2
			if !v.isLabelRef {
				n = len(v.bytes)
			}
			log.line(v.line, "data at $%04X, %d bytes", pc, n)
			pc += n

		case *instrItem:
			mode, err := instructionMode(v)
			if err != nil {
				return nil, err
			}
			inst, err := opcode.Lookup(v.root, mode)
			if err != nil {
				return nil, &Error{Line: v.line.row, Col: v.line.column + 1, Msg: err.Error()}
			}
			v.addr = pc
			v.inst = inst
			log.line(v.line, "%s at $%04X, length %d, opcode $%02X", v.root, pc, inst.Length(), inst.Opcode)
			pc += inst.Length()

		default:
			return nil, fmt.Errorf("asm: pass1: unhandled item type %T", it)
		}
		if pc > 0x10000 {
			return nil, &Error{Line: it.pos().row, Msg: fmt.Sprintf("assembly pointer overflowed 16 bits at $%05X", pc)}
		}
	}

	return syms, nil
}

func explicitWidth(v int) int {
	if v <= 0xff {
		return 1
	}
	return 2
}

// instructionMode derives the addressing mode for an instruction from
// its mnemonic's suffix letters (and, for relative branches, the fact
// that it is a branch at all) -- never from an operand's value.
func instructionMode(it *instrItem) (opcode.Mode, error) {
	if opcode.IsBranch(it.root) {
		if it.op1 == nil || it.op1.kind != operandLabel {
			return 0, &Error{Line: it.line.row, Col: it.line.column + 1,
				Msg: fmt.Sprintf("%s requires a label operand", it.root)}
		}
		return opcode.ModeRelative, nil
	}

	switch it.mod {
	case modNone:
		return opcode.ModeNone, nil
	case modImmediate:
		return opcode.ModeImmediate, nil
	case modZeroPage:
		switch it.idx {
		case indexNone:
			return opcode.ModeZeroPage, nil
		case indexX:
			return opcode.ModeZeroPageX, nil
		default:
			return opcode.ModeZeroPageY, nil
		}
	case modAbsolute:
		switch it.idx {
		case indexNone:
			return opcode.ModeAbsolute, nil
		case indexX:
			return opcode.ModeAbsoluteX, nil
		default:
			return opcode.ModeAbsoluteY, nil
		}
	case modIndirect:
		switch it.idx {
		case indexNone:
			return opcode.ModeIndirect, nil
		case indexX:
			return opcode.ModeIndirectX, nil
		default:
			return opcode.ModeIndirectY, nil
		}
	default:
		return 0, fmt.Errorf("asm: unhandled modifier %v", it.mod)
	}
}
