package asm

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/eblen/SASM2/zpm"
)

func assemble(t *testing.T, src string) *Result {
	t.Helper()
	r, err := Assemble(strings.NewReader(src), zpm.AppleII, false, io.Discard)
	if err != nil {
		t.Fatalf("Assemble(%q) failed: %v", src, err)
	}
	return r
}

func assembleSys(t *testing.T, src string, sys zpm.System) (*Result, error) {
	t.Helper()
	return Assemble(strings.NewReader(src), sys, false, io.Discard)
}

func wantBytes(t *testing.T, img *Image, base int, want []byte) {
	t.Helper()
	for i, w := range want {
		got, ok := img.Bytes[base+i]
		if !ok {
			t.Fatalf("address $%04X not written, want $%02X", base+i, w)
		}
		if got != w {
			t.Fatalf("address $%04X = $%02X, want $%02X", base+i, got, w)
		}
	}
}

func TestMinimalScenario(t *testing.T) {
	r := assemble(t, "org 0600\nlda i 42\nbrk")
	wantBytes(t, r.Image, 0x0600, []byte{0xa9, 0x42, 0x00})
}

func TestLabeledBackwardBranch(t *testing.T) {
	r := assemble(t, "org 0600\n.loop\nnop\njmp a .loop")
	wantBytes(t, r.Image, 0x0600, []byte{0xea, 0x4c, 0x00, 0x06})
}

func TestForwardBranch(t *testing.T) {
	r := assemble(t, "org 0600\nbne .skip\nnop\n.skip\nbrk")
	wantBytes(t, r.Image, 0x0600, []byte{0xd0, 0x01, 0xea, 0x00})
}

func TestZeroPageViaZbyteAppleII(t *testing.T) {
	r := assemble(t, "zbyte counter\norg 0600\nstaz .counter")
	sym, ok := lookupExport(r, "counter")
	if !ok || sym.Value != 0xff {
		t.Fatalf("counter = %+v, want value 0xFF", sym)
	}
	wantBytes(t, r.Image, 0x0600, []byte{0x85, 0xff})
}

func TestDataLabelLittleEndianization(t *testing.T) {
	r := assemble(t, "label vec ABCD\ndata .vec")
	wantBytes(t, r.Image, 0, []byte{0xcd, 0xab})
}

func TestDataExplicitBytesPreserveSourceOrder(t *testing.T) {
	r := assemble(t, "data ABCDEF")
	wantBytes(t, r.Image, 0, []byte{0xab, 0xcd, 0xef})
}

func TestDataLabelVsExplicitBytes(t *testing.T) {
	// The same 2-byte value, once little-endianized via a label reference
	// and once written explicitly: the explicit form must NOT be flipped.
	withLabel := assemble(t, "label vec ABCD\ndata .vec")
	explicit := assemble(t, "data ABCD")
	if withLabel.Image.Bytes[0] == explicit.Image.Bytes[0] {
		t.Fatalf("data .vec and data ABCD produced the same byte order; the asymmetry is supposed to be load-bearing")
	}
	wantBytes(t, withLabel.Image, 0, []byte{0xcd, 0xab})
	wantBytes(t, explicit.Image, 0, []byte{0xab, 0xcd})
}

func TestBranchDisplacementExactlyMinus128Accepted(t *testing.T) {
	// next = 0x0652, target = next-128 = 0x05D2
	_, err := assembleSys(t, "label target 05D2\norg 0650\nbne .target", zpm.AppleII)
	if err != nil {
		t.Fatalf("branch with displacement -128 should succeed: %v", err)
	}
}

func TestBranchDisplacementMinus129Rejected(t *testing.T) {
	// next = 0x0652, target = next-129 = 0x05D1
	_, err := assembleSys(t, "label target 05D1\norg 0650\nbne .target", zpm.AppleII)
	if err == nil {
		t.Fatal("branch with displacement -129 should fail")
	}
	if !errors.Is(err, ErrOperandWidth) {
		t.Fatalf("error = %v, want ErrOperandWidth", err)
	}
}

func TestZeroPageLiteralFFAccepted(t *testing.T) {
	_, err := assembleSys(t, "org 0600\nstaz FF", zpm.AppleII)
	if err != nil {
		t.Fatalf("zero-page literal FF should succeed: %v", err)
	}
}

func TestZeroPageLiteral100Rejected(t *testing.T) {
	_, err := assembleSys(t, "org 0600\nstaz 100", zpm.AppleII)
	if err == nil {
		t.Fatal("zero-page literal 100 should fail")
	}
	if !errors.Is(err, ErrOperandWidth) {
		t.Fatalf("error = %v, want ErrOperandWidth", err)
	}
}

func TestOffsetOperandOverflowIsRejected(t *testing.T) {
	// staz FA 10: op1 $FA is a valid zero-page literal on its own, but
	// folding in the $10 offset resolves to $10A, which no longer fits
	// in the zero page.
	_, err := assembleSys(t, "org 0600\nstaz FA 10", zpm.AppleII)
	if err == nil {
		t.Fatal("offset operand resolving past $FF should fail")
	}
	if !errors.Is(err, ErrOperandWidth) {
		t.Fatalf("error = %v, want ErrOperandWidth", err)
	}
}

func TestForwardReferencedLabelInAbsoluteBranchTarget(t *testing.T) {
	r := assemble(t, "org 0600\njmp a .later\nbrk\n.later\nnop")
	// jmp a .later -> 4C <lo> <hi> where .later = 0x0604
	wantBytes(t, r.Image, 0x0600, []byte{0x4c, 0x04, 0x06})
}

func TestUndefinedLabelIsAnError(t *testing.T) {
	_, err := assembleSys(t, "org 0600\njmp a .nowhere", zpm.AppleII)
	if err == nil {
		t.Fatal("reference to an undefined label should fail")
	}
	if !errors.Is(err, ErrUndefinedLabel) {
		t.Fatalf("error = %v, want ErrUndefinedLabel", err)
	}
}

func TestDuplicateLabelIsAnError(t *testing.T) {
	_, err := assembleSys(t, "org 0600\n.here\nnop\n.here\nnop", zpm.AppleII)
	if err == nil {
		t.Fatal("redefining a label should fail")
	}
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Fatalf("error = %v, want ErrDuplicateLabel", err)
	}
}

func TestOverlappingOrgIsAnError(t *testing.T) {
	_, err := assembleSys(t, "org 0600\nnop\norg 0600\nnop", zpm.AppleII)
	if err == nil {
		t.Fatal("two segments writing the same address should fail")
	}
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("error = %v, want ErrOverlap", err)
	}
}

func TestIllegalMnemonicIsAnError(t *testing.T) {
	_, err := assembleSys(t, "org 0600\nstai 42", zpm.AppleII)
	if err == nil {
		t.Fatal("sta has no immediate addressing mode and should fail")
	}
}

func TestPass1LengthMatchesPass2EmittedLength(t *testing.T) {
	r := assemble(t, "org 0600\nlda i 42\nstaz FF\njmp a 0600\nbrk")
	const want = 2 + 2 + 3 + 1
	if got := r.Image.High - r.Image.Low + 1; got != want {
		t.Fatalf("emitted %d bytes, want %d", got, want)
	}
}

func lookupExport(r *Result, name string) (Export, bool) {
	for _, e := range r.Exports {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}
