// Package pool recycles the buffers containers are serialized through.
package pool

import (
	"io"
	"slices"
	"sync"
)

const (
	sectionBufferSize   = 4 * 1024        // 4KiB, fits typical label and attribute sections
	sectionBufferRetain = 2 * 1024 * 1024 // 2MiB, larger buffers are left to the GC
)

// SectionBuffer collects one framed section: envelope, payload and the pad
// bytes of its alignment gap.
type SectionBuffer struct {
	// B is the underlying byte slice. Section codecs append to it directly.
	B []byte
}

// Len returns the number of buffered bytes.
func (sb *SectionBuffer) Len() int {
	return len(sb.B)
}

// Reset empties the buffer and keeps its capacity.
func (sb *SectionBuffer) Reset() {
	sb.B = sb.B[:0]
}

// Reserve makes room for n more bytes.
func (sb *SectionBuffer) Reserve(n int) {
	sb.B = slices.Grow(sb.B, n)
}

// Pad appends n copies of b.
func (sb *SectionBuffer) Pad(n int, b byte) {
	sb.Reserve(n)
	for range n {
		sb.B = append(sb.B, b)
	}
}

// Flush writes the buffered bytes to w and empties the buffer.
func (sb *SectionBuffer) Flush(w io.Writer) (int64, error) {
	n, err := w.Write(sb.B)
	if err == nil && n < len(sb.B) {
		err = io.ErrShortWrite
	}
	sb.Reset()

	return int64(n), err
}

var sectionPool = sync.Pool{
	New: func() any {
		return &SectionBuffer{B: make([]byte, 0, sectionBufferSize)}
	},
}

// GetSectionBuffer returns an empty buffer from the pool.
func GetSectionBuffer() *SectionBuffer {
	sb, _ := sectionPool.Get().(*SectionBuffer)
	return sb
}

// PutSectionBuffer returns sb to the pool. Buffers grown past 2MiB, such as
// the one that held a large string table, are dropped.
func PutSectionBuffer(sb *SectionBuffer) {
	if sb == nil || cap(sb.B) > sectionBufferRetain {
		return
	}

	sb.Reset()
	sectionPool.Put(sb)
}
