package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter wraps another io.Writer and emits Prefix at the start of every
// line written through it. The HAL uses it to tag driver initialization
// output with the driver name.
type PrefixWriter struct {
	// A writer where all writes get sent to.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	// midLine is set while the sink is in the middle of a line that
	// already got its prefix.
	midLine bool
}

// Write sends p to the sink, injecting the prefix before each new line. The
// returned count covers the bytes of p only and never includes the prefix.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for len(p) > 0 {
		if !w.midLine {
			w.Sink.Write(w.Prefix)
			w.midLine = true
		}

		line := p
		if nl := bytes.IndexByte(p, '\n'); nl != -1 {
			line = p[:nl+1]
			w.midLine = false
		}

		n, err := w.Sink.Write(line)
		written += n
		if err != nil {
			return written, err
		}

		p = p[len(line):]
	}

	return written, nil
}
