package asm

import (
	"fmt"

	"github.com/eblen/SASM2/opcode"
)

// Image is the assembled output: a sparse map of bytes keyed by address,
// plus the lowest and highest addresses written, so callers can decide
// how to render gaps (format.Bin fills them with 0xFF).
type Image struct {
	Bytes    map[int]byte
	Low, High int
}

func newImage() *Image {
	return &Image{Bytes: make(map[int]byte), Low: -1, High: -1}
}

func (img *Image) put(line fstring, addr int, b byte) error {
	if _, found := img.Bytes[addr]; found {
		return &Error{Line: line.row, Msg: fmt.Sprintf("address $%04X written more than once", addr), Cause: ErrOverlap}
	}
	img.Bytes[addr] = b
	if img.Low == -1 || addr < img.Low {
		img.Low = addr
	}
	if img.High == -1 || addr > img.High {
		img.High = addr
	}
	return nil
}

// littleEndian16 splits a 16-bit value into low byte then high byte. It
// is the one place every 2-byte emission (data .label, instruction
// operands) converts to 6502 byte order.
func littleEndian16(v int) [2]byte {
	return [2]byte{byte(v & 0xff), byte((v >> 8) & 0xff)}
}

func (img *Image) putLE16(line fstring, addr int, v int) error {
	le := littleEndian16(v)
	if err := img.put(line, addr, le[0]); err != nil {
		return err
	}
	return img.put(line, addr+1, le[1])
}

// pass2 re-walks the item stream with syms now fully resolved, encoding
// every instruction and data directive into image bytes at the
// addresses pass1 already assigned.
func pass2(items []item, syms symbolTable, log *logger) (*Image, error) {
	log.section("Pass 2: code generation")

	img := newImage()

	for _, it := range items {
		switch v := it.(type) {
		case *orgItem, *labelItem, *zbyteItem:
			// Carry no encoded bytes; already fully handled in pass1.

		case *dataItem:
			if v.isLabelRef {
				sym, ok := syms.lookup(v.labelRef)
				if !ok {
					return nil, &Error{Line: v.line.row, Msg: fmt.Sprintf("%q", v.labelRef), Cause: ErrUndefinedLabel}
				}
				if err := img.putLE16(v.line, v.addr, sym.Value); err != nil {
					return nil, err
				}
				log.bytes(v.addr, []byte{byte(sym.Value & 0xff), byte(sym.Value >> 8)})
			} else {
				for i, b := range v.bytes {
					if err := img.put(v.line, v.addr+i, b); err != nil {
						return nil, err
					}
				}
				log.bytes(v.addr, v.bytes)
			}

		case *instrItem:
			b, err := encodeInstruction(v, syms)
			if err != nil {
				return nil, err
			}
			for i, by := range b {
				if err := img.put(v.line, v.addr+i, by); err != nil {
					return nil, err
				}
			}
			log.bytes(v.addr, b)

		default:
			return nil, fmt.Errorf("asm: pass2: unhandled item type %T", it)
		}
	}

	return img, nil
}

// encodeInstruction renders one instruction to bytes: the opcode byte
// followed by its operand, little-endian for 2-byte absolute/indirect
// operands, or a signed 8-bit PC-relative displacement for branches.
func encodeInstruction(it *instrItem, syms symbolTable) ([]byte, error) {
	out := make([]byte, 0, it.inst.Length())
	out = append(out, it.inst.Opcode)

	switch it.inst.Width {
	case 0:
		return out, nil

	case 1:
		if it.inst.Mode == opcode.ModeRelative {
			disp, err := branchDisplacement(it, syms)
			if err != nil {
				return nil, err
			}
			return append(out, byte(disp)), nil
		}
		v, err := resolveOperandValue(it, it.op1, syms, 1)
		if err != nil {
			return nil, err
		}
		return append(out, byte(v&0xff)), nil

	case 2:
		v, err := resolveOperandValue(it, it.op1, syms, 2)
		if err != nil {
			return nil, err
		}
		le := littleEndian16(v)
		return append(out, le[0], le[1]), nil

	default:
		return nil, fmt.Errorf("asm: instruction %s has unsupported operand width %d", it.root, it.inst.Width)
	}
}

// resolveOperandValue resolves op to a numeric value: either its literal
// value as spelled in source, or the value bound to the label it names.
// maxWidth bounds how many bytes the resolved value may occupy, enforced
// against ErrOperandWidth.
func resolveOperandValue(it *instrItem, op *operand, syms symbolTable, maxWidth int) (int, error) {
	if op == nil {
		return 0, &Error{Line: it.line.row, Msg: fmt.Sprintf("%s requires an operand", it.root)}
	}
	var v int
	if op.kind == operandLabel {
		sym, ok := syms.lookup(op.label)
		if !ok {
			return 0, &Error{Line: op.line.row, Msg: fmt.Sprintf("%q", op.label), Cause: ErrUndefinedLabel}
		}
		v = sym.Value
		if sym.Width > maxWidth {
			return 0, &Error{Line: op.line.row, Msg: fmt.Sprintf("label %q (width %d) used where width %d expected", op.label, sym.Width, maxWidth), Cause: ErrOperandWidth}
		}
	} else {
		v = op.value
		if op.width > maxWidth {
			return 0, &Error{Line: op.line.row, Msg: fmt.Sprintf("literal $%X does not fit in %d byte(s)", op.value, maxWidth), Cause: ErrOperandWidth}
		}
	}
	if it.op2 != nil {
		v += it.op2.value
		if bound := 1<<(uint(maxWidth)*8) - 1; v > bound {
			return 0, &Error{Line: it.op2.line.row, Msg: fmt.Sprintf("operand $%X plus offset $%X = $%X exceeds %d byte(s)", v-it.op2.value, it.op2.value, v, maxWidth), Cause: ErrOperandWidth}
		}
	}
	return v, nil
}

// branchDisplacement computes a branch's signed 8-bit PC-relative
// offset, measured from the address immediately following the 2-byte
// branch instruction, and checks it fits in [-128, 127].
func branchDisplacement(it *instrItem, syms symbolTable) (int8, error) {
	sym, ok := syms.lookup(it.op1.label)
	if !ok {
		return 0, &Error{Line: it.op1.line.row, Msg: fmt.Sprintf("%q", it.op1.label), Cause: ErrUndefinedLabel}
	}
	next := it.addr + it.inst.Length()
	disp := sym.Value - next
	if disp < -128 || disp > 127 {
		return 0, &Error{Line: it.line.row, Msg: fmt.Sprintf("branch to %q is %d bytes away, outside [-128,127]", it.op1.label, disp), Cause: ErrOperandWidth}
	}
	return int8(disp), nil
}
