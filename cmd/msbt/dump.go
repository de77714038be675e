package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/encoding"
)

type messageDump struct {
	Index    int           `json:"index" yaml:"index"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	GlobalID *uint32       `json:"globalId,omitempty" yaml:"globalId,omitempty"`
	Text     string        `json:"text" yaml:"text"`
	Elements []elementDump `json:"elements" yaml:"elements"`
}

type elementDump struct {
	Kind   string  `json:"kind" yaml:"kind"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Group  *uint16 `json:"group,omitempty" yaml:"group,omitempty"`
	Type   *uint16 `json:"type,omitempty" yaml:"type,omitempty"`
	Params string  `json:"params,omitempty" yaml:"params,omitempty"`
	Bytes  string  `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

func dumpCmd(g *globals) *cli.Command {
	var format string

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print every message with its label, global ID and text elements",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format: json, yaml or cbor",
				Value:       "json",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}

			m, err := g.open(cmd, path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			return writeDump(stdout(cmd), format, buildDump(m))
		},
	}
}

// buildDump lists messages by index. The count is the larger of the label and
// string counts so that unbalanced files are shown in full.
func buildDump(m *msbt.Msbt) []messageDump {
	count := 0
	if m.Labels() != nil {
		count = m.Labels().Len()
	}
	if m.Strings() != nil {
		count = max(count, m.Strings().Len())
	}

	out := make([]messageDump, 0, count)
	for i := range count {
		md := messageDump{Index: i, Elements: []elementDump{}}
		md.Label, _ = m.LabelOf(i)
		if id, ok := m.GlobalIDOf(i); ok {
			md.GlobalID = &id
		}
		if m.Strings() != nil {
			if elems, ok := m.Strings().Entry(i); ok {
				md.Text = encoding.PlainText(elems)
				md.Elements = dumpElements(elems)
			}
		}
		out = append(out, md)
	}

	return out
}

func dumpElements(elems []encoding.Element) []elementDump {
	out := make([]elementDump, 0, len(elems))
	for _, el := range elems {
		switch v := el.(type) {
		case encoding.Text:
			out = append(out, elementDump{Kind: "text", Text: string(v)})
		case encoding.Tag:
			out = append(out, elementDump{Kind: "tag", Group: &v.Group, Type: &v.Type, Params: hex.EncodeToString(v.Params)})
		case encoding.TagEnd:
			out = append(out, elementDump{Kind: "tagEnd", Group: &v.Group, Type: &v.Type})
		case encoding.Raw:
			out = append(out, elementDump{Kind: "raw", Bytes: hex.EncodeToString(v)})
		}
	}

	return out
}

func writeDump(w io.Writer, format string, msgs []messageDump) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(msgs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(msgs); err != nil {
			return err
		}

		return enc.Close()
	case "cbor":
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}

		return em.NewEncoder(w).Encode(msgs)
	default:
		return cli.Exit(fmt.Sprintf("error: unknown format %q", format), 2)
	}
}
