// Package disasm implements the reverse half of SASM2: recovering a
// plausible source listing from a raw 6502 byte image by greedily
// maximizing legal-instruction coverage.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/eblen/SASM2/opcode"
)

// runLengthThreshold is the minimum legal-instruction run, in bytes,
// the segmenter will accept as a code region. Shorter runs are folded
// into the surrounding data.
const runLengthThreshold = 10

// Segment is one contiguous code or data region of the disassembled
// image, addresses relative to the start of the program slice.
type Segment struct {
	Start, End int // [Start, End)
	IsCode     bool
}

// Segments partitions program into code and data regions using the
// greedy-longest-legal-run heuristic: repeatedly claim the longest
// still-available run of decodable instructions, until the longest
// remaining run falls below runLengthThreshold.
func Segments(program []byte) []Segment {
	return segments(program, newTracer(io.Discard, false))
}

type run struct {
	start, length int
}

func segments(program []byte, tr *tracer) []Segment {
	n := len(program)
	claimed := make([]bool, n)

	for round := 1; ; round++ {
		var best run
		tie := false
		for i := 0; i < n; i++ {
			if claimed[i] {
				continue
			}
			if l := runLength(program, claimed, i); l > best.length {
				best = run{i, l}
				tie = false
			} else if l == best.length && l > 0 {
				tie = true
			}
		}
		tr.logf("round %d: selected run start=%d length=%d (tie among equal-length runs=%v, smallest index wins)", round, best.start, best.length, tie)
		if best.length < runLengthThreshold {
			tr.logf("round %d: longest remaining run %d bytes, below threshold %d, stopping", round, best.length, runLengthThreshold)
			break
		}
		for i := best.start; i < best.start+best.length; i++ {
			claimed[i] = true
		}
		tr.logf("round %d: claimed range [%d, %d) as code", round, best.start, best.start+best.length)
	}

	var segs []Segment
	i := 0
	for i < n {
		start, isCode := i, claimed[i]
		for i < n && claimed[i] == isCode {
			i++
		}
		segs = append(segs, Segment{Start: start, End: i, IsCode: isCode})
	}
	return segs
}

// runLength reports the length of the maximal run of legal instructions
// starting at start, without stepping on an already-claimed byte or
// running past the end of program.
func runLength(program []byte, claimed []bool, start int) int {
	n := len(program)
	i := start
	for i < n && !claimed[i] {
		inst := opcode.ByOpcode[program[i]]
		if inst == nil {
			break
		}
		end := i + inst.Length()
		if end > n {
			break
		}
		blocked := false
		for k := i + 1; k < end; k++ {
			if claimed[k] {
				blocked = true
				break
			}
		}
		if blocked {
			break
		}
		i = end
	}
	return i - start
}

// decoded is one fully decoded instruction within a code segment.
type decoded struct {
	addr   int
	inst   *opcode.Instruction
	raw    []byte
	target int  // meaningful when refers
	refers bool // operand is an address (branch, or jmp/jsr absolute)
}

// Disassemble decodes program (loaded at base) into a textual listing
// using the segmentation above. Branch and jmp/jsr absolute targets
// landing inside a code segment are rendered as ".L_XXXX" labels;
// targets landing in data are rendered as bare hex literals. When
// verbose is set, Disassemble traces its segmentation decisions
// (selected run, tie-break, claimed region) to w.
func Disassemble(program []byte, base int, verbose bool, w io.Writer) string {
	tr := newTracer(w, verbose)
	segs := segments(program, tr)
	tr.logf("segmentation produced %d segment(s)", len(segs))
	for _, s := range segs {
		kind := "data"
		if s.IsCode {
			kind = "code"
		}
		tr.logf("segment [%d, %d) = %s", s.Start, s.End, kind)
	}

	var decodedInsns []decoded
	for _, s := range segs {
		if !s.IsCode {
			continue
		}
		i := s.Start
		for i < s.End {
			inst := opcode.ByOpcode[program[i]]
			raw := program[i : i+inst.Length()]
			d := decoded{addr: base + i, inst: inst, raw: raw}
			switch {
			case inst.Mode == opcode.ModeRelative:
				disp := int(int8(raw[1]))
				d.target = d.addr + inst.Length() + disp
				d.refers = true
			case inst.Mode == opcode.ModeAbsolute && (inst.Root == "jmp" || inst.Root == "jsr"):
				d.target = int(raw[1]) | int(raw[2])<<8
				d.refers = true
			}
			decodedInsns = append(decodedInsns, d)
			i += inst.Length()
		}
	}

	codeAddr := func(addr int) bool {
		for _, s := range segs {
			if s.IsCode && addr-base >= s.Start && addr-base < s.End {
				return true
			}
		}
		return false
	}

	labelTargets := make(map[int]bool)
	for _, d := range decodedInsns {
		if d.refers && codeAddr(d.target) {
			labelTargets[d.target] = true
		}
	}

	var sb strings.Builder
	if base != 0 {
		fmt.Fprintf(&sb, "org %04X\n", base)
	}

	di := 0
	for _, s := range segs {
		if s.IsCode {
			for di < len(decodedInsns) && decodedInsns[di].addr < base+s.End {
				d := decodedInsns[di]
				if labelTargets[d.addr] {
					fmt.Fprintf(&sb, ".L_%04X\n", d.addr)
				}
				sb.WriteString(renderInstruction(d, codeAddr))
				sb.WriteByte('\n')
				di++
			}
		} else {
			writeDataLines(&sb, program[s.Start:s.End])
		}
	}
	return sb.String()
}

// renderInstruction prints one decoded instruction in SASM2 source
// syntax: mnemonic root, fused addressing-mode suffix, operand.
func renderInstruction(d decoded, codeAddr func(int) bool) string {
	mnem := d.inst.Root + modeSuffix(d.inst.Mode)

	switch {
	case d.inst.Mode == opcode.ModeNone:
		return mnem

	case d.refers:
		if codeAddr(d.target) {
			return fmt.Sprintf("%s .L_%04X", mnem, d.target)
		}
		return fmt.Sprintf("%s %04X", mnem, d.target)

	case d.inst.Width == 1:
		return fmt.Sprintf("%s %02X", mnem, d.raw[1])

	default:
		v := int(d.raw[1]) | int(d.raw[2])<<8
		return fmt.Sprintf("%s %04X", mnem, v)
	}
}

func modeSuffix(m opcode.Mode) string {
	switch m {
	case opcode.ModeImmediate:
		return "i"
	case opcode.ModeZeroPage:
		return "z"
	case opcode.ModeZeroPageX:
		return "zx"
	case opcode.ModeZeroPageY:
		return "zy"
	case opcode.ModeAbsolute:
		return "a"
	case opcode.ModeAbsoluteX:
		return "ax"
	case opcode.ModeAbsoluteY:
		return "ay"
	case opcode.ModeIndirect:
		return "n"
	case opcode.ModeIndirectX:
		return "nx"
	case opcode.ModeIndirectY:
		return "ny"
	default:
		return ""
	}
}

const dataLineBytes = 16

func writeDataLines(sb *strings.Builder, b []byte) {
	for i := 0; i < len(b); i += dataLineBytes {
		j := i + dataLineBytes
		if j > len(b) {
			j = len(b)
		}
		sb.WriteString("data ")
		for _, c := range b[i:j] {
			fmt.Fprintf(sb, "%02X", c)
		}
		sb.WriteByte('\n')
	}
}
