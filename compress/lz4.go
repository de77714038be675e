package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// Frame writers and readers are pooled; Reset rebinds them to new data.
var (
	lz4WriterPool = sync.Pool{New: func() any { return lz4.NewWriter(nil) }}
	lz4ReaderPool = sync.Pool{New: func() any { return lz4.NewReader(nil) }}
)

// LZ4Compressor writes and reads the LZ4 frame format, so that .lz4 message
// files open with the stock lz4 tool.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress wraps data in a single LZ4 frame that records the content size.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, lz4.CompressBlockBound(len(data))))

	w, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(w)
	w.Reset(out)
	if err := w.Apply(lz4.SizeOption(uint64(len(data)))); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return out.Bytes(), nil
}

// Decompress reads every frame in data.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer lz4ReaderPool.Put(r)
	r.Reset(bytes.NewReader(data))

	var out bytes.Buffer
	out.Grow(2 * len(data))
	if _, err := io.Copy(&out, r); err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out.Bytes(), nil
}
