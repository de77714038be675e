package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/section"
)

func infoCmd(g *globals) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show the header and section table of a file",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}

			m, err := g.open(cmd, path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			return printInfo(stdout(cmd), path, m)
		},
	}
}

func printInfo(w io.Writer, path string, m *msbt.Msbt) error {
	h := m.Header()
	byteOrder := "little endian"
	if h.BigEndian {
		byteOrder = "big endian"
	}

	fp, err := m.Fingerprint()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File:        %s\n", path)
	fmt.Fprintf(w, "Byte order:  %s\n", byteOrder)
	fmt.Fprintf(w, "Encoding:    %s\n", h.Encoding)
	fmt.Fprintf(w, "Sections:    %d\n", h.SectionCount)
	fmt.Fprintf(w, "Size:        %d bytes\n", h.FileSize)
	fmt.Fprintf(w, "Pad byte:    0x%02X\n", m.PadByte())
	fmt.Fprintf(w, "Fingerprint: %016x\n", fp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s %10s %10s  %s\n", "TAG", "OFFSET", "SIZE", "CONTENT")

	offset := section.HeaderSize
	for _, tag := range m.SectionOrder() {
		s := m.Section(tag)
		fmt.Fprintf(w, "%-6s %#10x %10d  %s\n", tag, offset, s.PayloadSize(), describe(s))
		offset += section.AlignedSize(section.Size(s))
	}

	return nil
}

func describe(s section.Section) string {
	switch v := s.(type) {
	case *section.LabelTable:
		state := "consistent"
		if !v.Consistent() {
			state = "stale buckets"
		}

		stats := v.BucketStats()
		desc := fmt.Sprintf("%d labels in %d buckets, %s, %d used, %d collisions, longest chain %d",
			stats.Labels, stats.Buckets, state, stats.Used, stats.Collisions, stats.Busiest)
		if stats.Duplicates > 0 {
			desc += fmt.Sprintf(", %d duplicate names", stats.Duplicates)
		}

		return desc
	case *section.GlobalIDTable:
		return fmt.Sprintf("%d global IDs", v.Len())
	case *section.StringTable:
		return fmt.Sprintf("%d strings", v.Len())
	case *section.Opaque:
		return fmt.Sprintf("%d raw bytes", v.Len())
	default:
		return ""
	}
}
