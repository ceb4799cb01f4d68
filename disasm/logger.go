package disasm

import (
	"fmt"
	"io"
)

// tracer reports the segmenter's run-selection decisions when verbose
// mode is on, the same gated-fmt.Fprintf idiom as asm/logger.go.
type tracer struct {
	w       io.Writer
	verbose bool
}

func newTracer(w io.Writer, verbose bool) *tracer {
	return &tracer{w: w, verbose: verbose}
}

func (t *tracer) logf(format string, args ...interface{}) {
	if !t.verbose {
		return
	}
	fmt.Fprintf(t.w, format, args...)
	fmt.Fprintln(t.w)
}
