// Package counter provides a writer that tracks how many bytes passed through it.
package counter

import "io"

// Writer forwards writes to an underlying io.Writer and counts the bytes
// accepted by it. Section alignment is computed from Written.
type Writer struct {
	w       io.Writer
	written int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer. Short writes are counted by the bytes actually accepted.
func (c *Writer) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.written += int64(n)

	return n, err
}

// Written returns the number of bytes written so far.
func (c *Writer) Written() int64 {
	return c.written
}
