package zpm

import "testing"

func TestAppleIIAllocatesDownward(t *testing.T) {
	a := New(AppleII)

	base, err := a.Alloc(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 0xff {
		t.Errorf("first alloc base = %#02x, want 0xff", base)
	}

	base, err = a.Alloc(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 0xfb {
		t.Errorf("second alloc base = %#02x, want 0xfb", base)
	}
}

func TestAppleII256SingleByteAllocationsThen257thFails(t *testing.T) {
	a := New(AppleII)
	for i := 0; i < 256; i++ {
		if _, err := a.Alloc(1); err != nil {
			t.Fatalf("allocation %d unexpectedly failed: %v", i, err)
		}
	}
	if _, err := a.Alloc(1); err == nil {
		t.Fatal("257th allocation should have failed")
	}
}

func TestAtari2600AllocatesUpward(t *testing.T) {
	a := New(Atari2600)

	base, err := a.Alloc(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 0x80 {
		t.Errorf("first alloc base = %#02x, want 0x80", base)
	}

	base, err = a.Alloc(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 0x81 {
		t.Errorf("second alloc base = %#02x, want 0x81", base)
	}
}

func TestAtari2600Overflow(t *testing.T) {
	a := New(Atari2600)
	if _, err := a.Alloc(0x80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Alloc(1); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestAllocationsNeverOverlap(t *testing.T) {
	a := New(AppleII)
	b1, _ := a.Alloc(3)
	b2, _ := a.Alloc(3)
	if b1 < b2+3 && b2 < b1+3 {
		t.Errorf("blocks overlap: [%d,%d) and [%d,%d)", b2, b2+3, b1, b1+3)
	}
}
