package opcode

import "testing"

func TestLookupKnownInstruction(t *testing.T) {
	inst, err := Lookup("lda", ModeImmediate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Opcode != 0xa9 || inst.Width != 1 {
		t.Errorf("got opcode %#02x width %d, want a9/1", inst.Opcode, inst.Width)
	}
}

func TestLookupIllegalMode(t *testing.T) {
	// LDA has no indirect mode.
	_, err := Lookup("lda", ModeIndirect)
	if err == nil {
		t.Fatal("expected an error for lda indirect")
	}
}

func TestLookupUnknownRoot(t *testing.T) {
	if KnownRoot("xyz") {
		t.Fatal("xyz should not be a known root")
	}
	_, err := Lookup("xyz", ModeNone)
	if err == nil {
		t.Fatal("expected an error for an unknown root")
	}
}

func TestByOpcodeRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		root string
		mode Mode
	}{
		{"brk", ModeNone},
		{"lda", ModeZeroPage},
		{"jmp", ModeAbsolute},
		{"bne", ModeRelative},
	} {
		inst, err := Lookup(tc.root, tc.mode)
		if err != nil {
			t.Fatalf("Lookup(%s, %s): %v", tc.root, tc.mode, err)
		}
		found := ByOpcode[inst.Opcode]
		if found == nil || found.Root != tc.root {
			t.Errorf("ByOpcode[%#02x] = %v, want root %s", inst.Opcode, found, tc.root)
		}
	}
}

func TestIsBranch(t *testing.T) {
	for _, root := range []string{"bne", "beq", "bcc", "bcs", "bmi", "bpl", "bvc", "bvs"} {
		if !IsBranch(root) {
			t.Errorf("%s should be a branch mnemonic", root)
		}
	}
	if IsBranch("lda") {
		t.Error("lda should not be a branch mnemonic")
	}
}

func TestInstructionLength(t *testing.T) {
	inst, _ := Lookup("jmp", ModeAbsolute)
	if inst.Length() != 3 {
		t.Errorf("jmp absolute length = %d, want 3", inst.Length())
	}
	inst, _ = Lookup("nop", ModeNone)
	if inst.Length() != 1 {
		t.Errorf("nop length = %d, want 1", inst.Length())
	}
}

func TestEveryLegalOpcodeIndexed(t *testing.T) {
	count := 0
	for _, p := range ByOpcode {
		if p != nil {
			count++
		}
	}
	if count != len(byRootMode) {
		t.Errorf("ByOpcode has %d entries, byRootMode has %d", count, len(byRootMode))
	}
}
