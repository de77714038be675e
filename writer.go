package msbt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/msbt/compress"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/counter"
	"github.com/arloliu/msbt/internal/pool"
	"github.com/arloliu/msbt/section"
)

var _ io.WriterTo = (*Msbt)(nil)

// WriteTo serializes the container to w.
//
// The header section count and file size are recomputed, every section is
// written in SectionOrder and each one is followed by pad bytes up to the next
// 16-byte boundary.
func (m *Msbt) WriteTo(w io.Writer) (int64, error) {
	m.refresh()

	cw := counter.NewWriter(w)
	engine := m.header.Engine()

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)

	buf.B = m.header.AppendTo(buf.B)
	if _, err := buf.Flush(cw); err != nil {
		return cw.Written(), fmt.Errorf("write header: %w", err)
	}

	var err error
	for _, s := range m.sections() {
		buf.Reserve(section.AlignedSize(section.Size(s)))

		if buf.B, err = section.AppendSection(buf.B, s, engine); err != nil {
			return cw.Written(), err
		}
		buf.Pad(section.PaddingSize(cw.Written()+int64(buf.Len())), m.padByte)

		if _, err = buf.Flush(cw); err != nil {
			return cw.Written(), fmt.Errorf("write %s: %w", s.Tag(), err)
		}
	}

	return cw.Written(), nil
}

// Bytes serializes the container into a new slice.
func (m *Msbt) Bytes() ([]byte, error) {
	var out bytes.Buffer
	out.Grow(m.Size())
	if _, err := m.WriteTo(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// WriteFile serializes the container to path.
//
// The output is compressed with the codec given by WithWriteCompression, or
// otherwise with the codec implied by the file extension.
func (m *Msbt) WriteFile(path string, opts ...WriteOption) error {
	cfg, err := newWriteConfig(opts)
	if err != nil {
		return err
	}

	ct := cfg.compression
	if !cfg.forced {
		if ext, ok := compress.ForPath(path); ok {
			ct = ext
		}
	}

	data, err := m.Bytes()
	if err != nil {
		return err
	}

	if ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		if data, err = codec.Compress(data); err != nil {
			return fmt.Errorf("compress %s: %w", ct, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
