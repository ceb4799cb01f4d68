// Package format renders an assembled memory image as raw binary, a hex
// string, or Apple II system-monitor paste text.
package format

import (
	"fmt"
	"sort"
	"strings"
)

const hexDigits = "0123456789abcdef"

// Image is the minimal view of an assembled program a formatter needs:
// a sparse byte map plus the lowest and highest written addresses. It
// mirrors asm.Image without importing the asm package, so format has no
// dependency on how the bytes were produced.
type Image struct {
	Bytes     map[int]byte
	Low, High int
}

// Bin renders the image as a contiguous byte slice from Low to High,
// filling unwritten addresses with 0xFF. An empty image renders to nil.
func Bin(img Image) []byte {
	if img.Low < 0 || img.High < img.Low {
		return nil
	}
	out := make([]byte, img.High-img.Low+1)
	for i := range out {
		if b, ok := img.Bytes[img.Low+i]; ok {
			out[i] = b
		} else {
			out[i] = 0xff
		}
	}
	return out
}

// Hex renders the same byte sequence Bin would produce as a concatenated
// string of two-digit lowercase hex.
func Hex(img Image) string {
	b := Bin(img)
	buf := make([]byte, len(b)*2)
	for i, n := range b {
		buf[i*2] = hexDigits[n>>4]
		buf[i*2+1] = hexDigits[n&0xf]
	}
	return string(buf)
}

// maxAppleLineBytes bounds how many bytes appear on one Apple monitor
// paste line, the largest the monitor reliably accepts pasted at speed.
const maxAppleLineBytes = 8

// Apple renders the image as Apple II system-monitor paste text: one
// line per contiguous run of written bytes (split further at
// maxAppleLineBytes), in the form "AAAA: BB BB BB ...", uppercase hex,
// no zero-padding on the address, terminated by a final newline.
func Apple(img Image) string {
	if len(img.Bytes) == 0 {
		return ""
	}

	addrs := make([]int, 0, len(img.Bytes))
	for a := range img.Bytes {
		addrs = append(addrs, a)
	}
	sort.Ints(addrs)

	var sb strings.Builder
	i := 0
	for i < len(addrs) {
		runStart := addrs[i]
		j := i + 1
		for j < len(addrs) && addrs[j] == addrs[j-1]+1 && j-i < maxAppleLineBytes {
			j++
		}
		writeAppleLine(&sb, runStart, addrs[i:j], img.Bytes)
		i = j
	}
	return sb.String()
}

func writeAppleLine(sb *strings.Builder, addr int, addrs []int, bytes map[int]byte) {
	fmt.Fprintf(sb, "%X:", addr)
	for _, a := range addrs {
		fmt.Fprintf(sb, " %02X", bytes[a])
	}
	sb.WriteByte('\n')
}
