package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/section"
)

func importCmd(g *globals) *cli.Command {
	var output string

	return &cli.Command{
		Name:      "import",
		Usage:     "Apply messages from a dump file (JSON with comments, YAML or CBOR)",
		ArgsUsage: "FILE SCRIPT",
		Flags:     []cli.Flag{outputFlag(&output)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: expected FILE SCRIPT", 2)
			}
			path, script := cmd.Args().Get(0), cmd.Args().Get(1)

			msgs, err := readScript(script)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			return edit(g, cmd, path, output, func(m *msbt.Msbt) error {
				return applyMessages(m, msgs)
			})
		},
	}
}

// readScript decodes a message list by file extension. Anything that is not
// YAML or CBOR is read as JSON, with comments and trailing commas allowed.
func readScript(path string) ([]messageDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var msgs []messageDump
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &msgs)
	case ".cbor":
		err = cbor.Unmarshal(data, &msgs)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &msgs)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return msgs, nil
}

// applyMessages replaces the text of existing labels and appends new ones.
// A global ID, when given, is bound to the message index.
func applyMessages(m *msbt.Msbt, msgs []messageDump) error {
	for _, md := range msgs {
		if md.Label == "" {
			return fmt.Errorf("message %d has no label", md.Index)
		}

		elems, err := parseElements(md)
		if err != nil {
			return fmt.Errorf("message %q: %w", md.Label, err)
		}

		index, ok := -1, false
		if m.Labels() != nil {
			index, ok = m.Labels().Index(md.Label)
		}
		if ok {
			err = m.UpdateStrings(func(ed *section.StringEditor) error {
				return ed.Set(index, elems)
			})
		} else {
			index, err = m.AddMessage(md.Label, elems)
		}
		if err != nil {
			return fmt.Errorf("message %q: %w", md.Label, err)
		}

		if md.GlobalID == nil {
			continue
		}
		if m.GlobalIDs() == nil {
			return fmt.Errorf("message %q: file has no global ID table", md.Label)
		}
		if err := m.UpdateGlobalIDs(func(ed *section.GlobalIDEditor) error {
			return ed.Set(*md.GlobalID, uint32(index)) //nolint:gosec
		}); err != nil {
			return fmt.Errorf("message %q: %w", md.Label, err)
		}
	}

	return nil
}

// parseElements is the inverse of dumpElements. Without elements the plain
// text field is used.
func parseElements(md messageDump) ([]encoding.Element, error) {
	if len(md.Elements) == 0 {
		return encoding.FromText(md.Text), nil
	}

	elems := make([]encoding.Element, 0, len(md.Elements))
	for _, ed := range md.Elements {
		switch ed.Kind {
		case "text":
			elems = append(elems, encoding.Text(ed.Text))
		case "tag":
			params, err := hex.DecodeString(ed.Params)
			if err != nil {
				return nil, fmt.Errorf("tag params: %w", err)
			}
			elems = append(elems, encoding.Tag{Group: deref(ed.Group), Type: deref(ed.Type), Params: params})
		case "tagEnd":
			elems = append(elems, encoding.TagEnd{Group: deref(ed.Group), Type: deref(ed.Type)})
		case "raw":
			raw, err := hex.DecodeString(ed.Bytes)
			if err != nil {
				return nil, fmt.Errorf("raw bytes: %w", err)
			}
			elems = append(elems, encoding.Raw(raw))
		default:
			return nil, fmt.Errorf("unknown element kind %q", ed.Kind)
		}
	}

	return elems, nil
}

func deref(p *uint16) uint16 {
	if p == nil {
		return 0
	}

	return *p
}
