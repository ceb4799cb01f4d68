package format

import (
	"encoding/hex"
	"testing"
)

func TestBinFillsGapsWithFF(t *testing.T) {
	img := Image{Bytes: map[int]byte{0x600: 0xa9, 0x601: 0x42, 0x603: 0x00}, Low: 0x600, High: 0x603}
	got := Bin(img)
	want := []byte{0xa9, 0x42, 0xff, 0x00}
	if string(got) != string(want) {
		t.Fatalf("Bin() = % X, want % X", got, want)
	}
}

func TestBinEmptyImage(t *testing.T) {
	if got := Bin(Image{Low: -1, High: -1}); got != nil {
		t.Fatalf("Bin(empty) = %v, want nil", got)
	}
}

func TestHexMatchesMinimalScenario(t *testing.T) {
	img := Image{Bytes: map[int]byte{0x600: 0xa9, 0x601: 0x42, 0x602: 0x00}, Low: 0x600, High: 0x602}
	if got, want := Hex(img), "a94200"; got != want {
		t.Fatalf("Hex() = %q, want %q", got, want)
	}
}

func TestHexRoundTripsWithBin(t *testing.T) {
	img := Image{Bytes: map[int]byte{0x10: 0xde, 0x11: 0xad, 0x12: 0xbe, 0x13: 0xef}, Low: 0x10, High: 0x13}
	h := Hex(img)
	if want := "deadbeef"; h != want {
		t.Fatalf("Hex() = %q, want %q", h, want)
	}
	back, err := hex.DecodeString(h)
	if err != nil {
		t.Fatalf("decoding Hex() output %q: %v", h, err)
	}
	if bin := Bin(img); string(back) != string(bin) {
		t.Fatalf("decoded Hex() = % X, Bin() = % X", back, bin)
	}
}

func TestAppleFormatNoZeroPaddedAddress(t *testing.T) {
	img := Image{
		Bytes: map[int]byte{0x0a00: 0xa9, 0x0a01: 0x05, 0x0a02: 0x8d, 0x0a03: 0x01, 0x0a04: 0x04, 0x0a05: 0x60},
		Low:   0x0a00, High: 0x0a05,
	}
	got := Apple(img)
	want := "A00: A9 05 8D 01 04 60\n"
	if got != want {
		t.Fatalf("Apple() = %q, want %q", got, want)
	}
}

func TestAppleFormatSplitsLongRunsAtEightBytes(t *testing.T) {
	bytes := make(map[int]byte, 10)
	for i := 0; i < 10; i++ {
		bytes[0x1000+i] = byte(i)
	}
	got := Apple(Image{Bytes: bytes, Low: 0x1000, High: 0x1009})
	want := "1000: 00 01 02 03 04 05 06 07\n1008: 08 09\n"
	if got != want {
		t.Fatalf("Apple() = %q, want %q", got, want)
	}
}

func TestAppleFormatEmptyImage(t *testing.T) {
	if got := Apple(Image{Low: -1, High: -1}); got != "" {
		t.Fatalf("Apple(empty) = %q, want empty", got)
	}
}

func TestAppleFormatBreaksAtDiscontinuity(t *testing.T) {
	img := Image{Bytes: map[int]byte{0x600: 0x01, 0x601: 0x02, 0x700: 0x03}, Low: 0x600, High: 0x700}
	got := Apple(img)
	want := "600: 01 02\n700: 03\n"
	if got != want {
		t.Fatalf("Apple() = %q, want %q", got, want)
	}
}
