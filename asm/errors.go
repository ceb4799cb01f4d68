package asm

import (
	"errors"
	"fmt"
)

// Error reports a single assembly failure, tied to the source line (and
// column, where applicable) that caused it. Assembly aborts at the
// first Error; SASM2 never attempts multi-error recovery in one run.
type Error struct {
	Line  int
	Col   int // 0 when not meaningful for this error
	Msg   string
	Cause error // sentinel (or wrapped sentinel) this error belongs to, if any
}

func (e *Error) Error() string {
	detail := e.Msg
	switch {
	case e.Cause != nil && detail == "":
		detail = e.Cause.Error()
	case e.Cause != nil:
		detail = fmt.Sprintf("%v: %s", e.Cause, detail)
	}
	if e.Col > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, detail)
	}
	return fmt.Sprintf("line %d: %s", e.Line, detail)
}

// Unwrap exposes Cause to errors.Is/errors.As, so callers can test the
// failure category of an *Error the same way they test any other
// wrapped error.
func (e *Error) Unwrap() error { return e.Cause }

// Sentinel errors identifying the assembler's error taxonomy.
// Construct an *Error with Cause set to one of these (or use
// fmt.Errorf("%w: ...") directly, as symtab.go does for
// ErrDuplicateLabel) so that callers can test the failure category with
// errors.Is.
var (
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrUndefinedLabel = errors.New("undefined label")
	ErrOperandWidth   = errors.New("operand out of range for addressing mode")
	ErrOverlap        = errors.New("overlapping write to the assembly image")
)
