package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zeebo/blake3"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/compress"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/hash"
)

func checkCmd(g *globals) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Verify that a file re-serializes to identical bytes",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}

			raw, err := readPlain(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			logger, err := g.newLogger(stderr(cmd))
			if err != nil {
				return err
			}
			m, err := msbt.Decode(raw,
				msbt.WithCompression(format.CompressionNone),
				msbt.WithLogger(logger),
				msbt.WithStrictPadding(g.strictPadding),
			)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			out, err := m.Bytes()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			w := stdout(cmd)
			if at := firstDiff(raw, out); at >= 0 {
				fmt.Fprintf(w, "%s: MISMATCH at offset 0x%X (input %d bytes, output %d bytes)\n", path, at, len(raw), len(out))
				return cli.Exit("", 1)
			}
			fmt.Fprintf(w, "%s: OK %d bytes, fingerprint %016x\n", path, len(out), hash.Fingerprint(out))
			fmt.Fprintf(w, "blake3 %x\n", blake3.Sum256(out))

			return nil
		},
	}
}

// readPlain reads path and removes the file compression, if any.
func readPlain(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ct, ok := compress.ForPath(path)
	if !ok {
		ct = compress.Detect(data)
	}
	if ct == format.CompressionNone {
		return data, nil
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// firstDiff returns the first offset where a and b differ, or -1 when they are equal.
func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}

	return -1
}
