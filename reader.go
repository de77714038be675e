package msbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/arloliu/msbt/compress"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/section"
)

// Read parses an uncompressed container from r.
//
// Offsets, and therefore section alignment, are measured from the position of r
// when Read is called. Any failure returns no container.
func Read(r io.ReadSeeker, opts ...ReadOption) (*Msbt, error) {
	cfg, err := newReadConfig(opts)
	if err != nil {
		return nil, err
	}

	return read(r, cfg)
}

// Decode parses a container held in memory. Compressed input is detected by its
// frame magic unless WithCompression is given.
func Decode(data []byte, opts ...ReadOption) (*Msbt, error) {
	cfg, err := newReadConfig(opts)
	if err != nil {
		return nil, err
	}

	return decode(data, cfg)
}

// ReadFile reads and parses the container at path.
//
// The compression is taken from WithCompression, then from the file extension
// (.zs, .zst, .s2, .lz4), then from the frame magic of the content.
func ReadFile(path string, opts ...ReadOption) (*Msbt, error) {
	cfg, err := newReadConfig(opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !cfg.forced {
		if ct, ok := compress.ForPath(path); ok {
			cfg.compression, cfg.forced = ct, true
		}
	}

	m, err := decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func decode(data []byte, cfg *ReadConfig) (*Msbt, error) {
	ct := cfg.compression
	if !cfg.forced {
		ct = compress.Detect(data)
	}

	if ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, err
		}
		raw, err := codec.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", ct, err)
		}
		cfg.logger.Debug("decompressed container", "compression", ct.String(), "compressed", len(data), "size", len(raw))
		data = raw
	}

	return read(bytes.NewReader(data), cfg)
}

// reader walks the sections of one container.
type reader struct {
	r      io.ReadSeeker
	cfg    *ReadConfig
	origin int64 // absolute position of the header
	end    int64 // source length relative to origin
	m      *Msbt
	padSet bool
}

func read(r io.ReadSeeker, cfg *ReadConfig) (*Msbt, error) {
	rd := &reader{r: r, cfg: cfg, m: &Msbt{}}
	if err := rd.run(); err != nil {
		return nil, err
	}

	return rd.m, nil
}

func (rd *reader) run() error {
	var err error
	if rd.origin, err = rd.r.Seek(0, io.SeekCurrent); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	end, err := rd.r.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	rd.end = end - rd.origin
	if _, err = rd.r.Seek(rd.origin, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	if err := rd.readHeader(); err != nil {
		return err
	}

	for {
		done, err := rd.readSection()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (rd *reader) readHeader() error {
	buf := make([]byte, section.HeaderSize)
	n, err := io.ReadFull(rd.r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read header: %w", err)
	}

	h, err := section.ParseHeader(buf[:n])
	if err != nil {
		return err
	}
	rd.m.header = h
	rd.cfg.logger.Debug("header parsed",
		"bigEndian", h.BigEndian,
		"encoding", h.Encoding.String(),
		"sections", h.SectionCount,
		"fileSize", h.FileSize,
	)

	return nil
}

// readSection dispatches on the next tag, parses one section and skips its
// alignment gap. done is true at the end of the stream.
func (rd *reader) readSection() (done bool, err error) {
	pos, err := rd.offset()
	if err != nil {
		return false, err
	}

	var magic [4]byte
	n, err := io.ReadFull(rd.r, magic[:])
	switch {
	case errors.Is(err, io.EOF):
		return true, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return false, fmt.Errorf("%w: %d trailing bytes at offset 0x%X", errs.ErrTruncated, n, pos)
	case err != nil:
		return false, fmt.Errorf("read section tag: %w", err)
	}
	if _, err = rd.r.Seek(-int64(len(magic)), io.SeekCurrent); err != nil {
		return false, fmt.Errorf("seek: %w", err)
	}

	tag, ok := format.ParseSectionTag(magic)
	if !ok {
		return false, &errs.SectionTagError{Tag: magic, Offset: pos}
	}
	if slices.Contains(rd.m.order, tag) {
		return false, fmt.Errorf("%w: %s at offset 0x%X", errs.ErrDuplicateSection, tag, pos)
	}

	engine := rd.m.header.Engine()
	envBuf := make([]byte, section.EnvelopeSize)
	if _, err = io.ReadFull(rd.r, envBuf); err != nil {
		return false, rd.readErr(err, "envelope of "+tag.String())
	}
	env, err := section.ParseEnvelope(envBuf, engine)
	if err != nil {
		return false, err
	}

	payloadStart := pos + section.EnvelopeSize
	if int64(env.Size) > rd.end-payloadStart {
		return false, fmt.Errorf("%w: %s declares %d bytes at offset 0x%X, %d remain",
			errs.ErrSectionOverflow, tag, env.Size, pos, rd.end-payloadStart)
	}

	payload := make([]byte, env.Size)
	if _, err = io.ReadFull(rd.r, payload); err != nil {
		return false, rd.readErr(err, "payload of "+tag.String())
	}

	s, err := section.Parse(env, payload, rd.m.header)
	if err != nil {
		return false, fmt.Errorf("%s at offset 0x%X: %w", tag, pos, err)
	}
	rd.m.store(s)
	rd.m.order = append(rd.m.order, tag)
	rd.cfg.logger.Debug("section parsed", "tag", tag.String(), "offset", pos, "size", env.Size)

	return rd.skipPadding(payloadStart + int64(env.Size))
}

// skipPadding consumes the alignment gap after a section ending at pos. The
// first gap found fixes the container pad byte. A stream ending inside a gap is
// a normal end of stream.
func (rd *reader) skipPadding(pos int64) (done bool, err error) {
	size := section.PaddingSize(pos)
	if size == 0 {
		return false, nil
	}

	gap := make([]byte, size)
	n, err := io.ReadFull(rd.r, gap)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, fmt.Errorf("read padding: %w", err)
	}
	gap = gap[:n]

	for i, b := range gap {
		if !rd.padSet {
			rd.m.padByte, rd.padSet = b, true
			rd.cfg.logger.Debug("pad byte captured", "value", fmt.Sprintf("0x%02X", b), "offset", pos)

			continue
		}
		if b != rd.m.padByte {
			at := pos + int64(i)
			if rd.cfg.strictPadding {
				return false, fmt.Errorf("%w: 0x%02X at offset 0x%X, expected 0x%02X", errs.ErrMixedPadding, b, at, rd.m.padByte)
			}
			rd.cfg.logger.Warn("mixed pad bytes",
				"value", fmt.Sprintf("0x%02X", b),
				"expected", fmt.Sprintf("0x%02X", rd.m.padByte),
				"offset", at,
			)

			break
		}
	}

	return n < size, nil
}

func (rd *reader) offset() (int64, error) {
	abs, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("seek: %w", err)
	}

	return abs - rd.origin, nil
}

func (rd *reader) readErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", errs.ErrTruncated, what)
	}

	return fmt.Errorf("read %s: %w", what, err)
}
