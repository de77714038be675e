package msbt

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/msbt/compress"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/options"
	"github.com/arloliu/msbt/section"
)

// ReadConfig holds the settings of Read, Decode and ReadFile.
type ReadConfig struct {
	logger        *slog.Logger
	strictPadding bool
	compression   format.CompressionType
	forced        bool
}

func newReadConfig(opts []ReadOption) (*ReadConfig, error) {
	cfg := &ReadConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadOption represents a functional option for configuring the ReadConfig.
type ReadOption = options.Option[*ReadConfig]

// WithLogger sets the logger receiving section dispatch and padding records.
// Reading is silent by default.
func WithLogger(logger *slog.Logger) ReadOption {
	return options.NoError(func(c *ReadConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithStrictPadding makes a file whose alignment gaps use more than one pad
// value fail with errs.ErrMixedPadding instead of logging a warning.
func WithStrictPadding(strict bool) ReadOption {
	return options.NoError(func(c *ReadConfig) {
		c.strictPadding = strict
	})
}

// WithCompression forces the compression of the input instead of detecting it
// from the file extension or frame magic.
func WithCompression(ct format.CompressionType) ReadOption {
	return options.New(func(c *ReadConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct
		c.forced = true

		return nil
	})
}

// WriteConfig holds the settings of WriteFile.
type WriteConfig struct {
	compression format.CompressionType
	forced      bool
}

func newWriteConfig(opts []WriteOption) (*WriteConfig, error) {
	cfg := &WriteConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteOption represents a functional option for configuring the WriteConfig.
type WriteOption = options.Option[*WriteConfig]

// WithWriteCompression compresses the written file with ct regardless of its extension.
func WithWriteCompression(ct format.CompressionType) WriteOption {
	return options.New(func(c *WriteConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct
		c.forced = true

		return nil
	})
}

// BuilderConfig holds the settings of a Builder.
type BuilderConfig struct {
	bigEndian   bool
	encoding    format.Encoding
	labelGroups int
	padByte     byte
}

// DefaultPadByte is the alignment fill of containers made by a Builder.
const DefaultPadByte = 0xAB

func newBuilderConfig(opts []BuilderOption) (*BuilderConfig, error) {
	cfg := &BuilderConfig{
		encoding:    format.EncodingUTF16,
		labelGroups: section.DefaultLabelGroups,
		padByte:     DefaultPadByte,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BuilderOption represents a functional option for configuring the BuilderConfig.
type BuilderOption = options.Option[*BuilderConfig]

// WithLittleEndian sets the builder to use little-endian byte order.
// It is the default option.
func WithLittleEndian() BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.bigEndian = false
	})
}

// WithBigEndian sets the builder to use big-endian byte order.
func WithBigEndian() BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.bigEndian = true
	})
}

// WithEncoding sets the text encoding of the string table. UTF-16 is the default.
func WithEncoding(enc format.Encoding) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if !enc.IsValid() {
			return &errs.EncodingError{Value: byte(enc)}
		}
		c.encoding = enc

		return nil
	})
}

// WithLabelGroups sets the number of label hash buckets.
func WithLabelGroups(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: bucket count %d", errs.ErrIndexOutOfRange, n)
		}
		c.labelGroups = n

		return nil
	})
}

// WithPadByte sets the alignment fill value.
func WithPadByte(b byte) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.padByte = b
	})
}
