// Package asm implements the SASM2 two-pass 6502 assembler: source text
// goes in, a sparse memory image comes out, with zero-page storage
// allocated automatically for the target system.
package asm

import (
	"io"

	"github.com/eblen/SASM2/zpm"
)

// Export describes a symbol worth reporting back to the caller: every
// code label, explicit label, and zbyte allocation the source defined.
type Export struct {
	Name  string
	Value int
	Width int
	Kind  SymbolKind
}

// Result is the outcome of a successful Assemble call.
type Result struct {
	Image   *Image
	Exports []Export
}

// Assemble reads SASM2 source from r and assembles it for the given
// zero-page allocation policy. verbose mirrors the command-line -v flag
// and, when set, writes a trace of both passes to log.
//
// Assembly proceeds in two passes. Pass 1 walks the parsed source once,
// assigning every instruction and data directive its final address and
// binding every label (forward or backward) to its final value -- by
// construction, since each label binds at the point it is defined
// during that single top-to-bottom walk. Pass 2 re-walks the same
// stream with the now-complete symbol table and encodes bytes.
func Assemble(r io.Reader, sys zpm.System, verbose bool, log io.Writer) (*Result, error) {
	l := newLogger(log, verbose)

	items, err := parseSource(r, l)
	if err != nil {
		return nil, err
	}

	syms, err := pass1(items, sys, l)
	if err != nil {
		return nil, err
	}

	img, err := pass2(items, syms, l)
	if err != nil {
		return nil, err
	}

	return &Result{Image: img, Exports: exportSymbols(syms)}, nil
}

func exportSymbols(syms symbolTable) []Export {
	exports := make([]Export, 0, len(syms))
	for name, sym := range syms {
		exports = append(exports, Export{Name: name, Value: sym.Value, Width: sym.Width, Kind: sym.Kind})
	}
	return exports
}
