package sandbox

import (
	"bytes"
)

// cappedBuffer is an io.Writer that keeps at most limit bytes and silently
// drops the rest, so a runaway snippet cannot exhaust memory
type cappedBuffer struct {
	buf    bytes.Buffer
	limit  int
	capped bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		b.capped = true
		return len(p), nil
	}
	if len(p) > remaining {
		b.capped = true
		b.buf.Write(p[:remaining])
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}

// Capped reports whether any output was dropped
func (b *cappedBuffer) Capped() bool {
	return b.capped
}
