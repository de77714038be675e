package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/msbt"
	"github.com/arloliu/msbt/section"
)

func outputFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "write the result to `OUT` instead of FILE",
		Destination: dst,
	}
}

func renameCmd(g *globals) *cli.Command {
	var output string

	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a label",
		ArgsUsage: "FILE OLD NEW",
		Flags:     []cli.Flag{outputFlag(&output)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 3 {
				return cli.Exit("error: expected FILE OLD NEW", 2)
			}
			path, oldName, newName := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

			return edit(g, cmd, path, output, func(m *msbt.Msbt) error {
				if m.Labels() == nil {
					return fmt.Errorf("%s has no label table", path)
				}
				index, ok := m.Labels().Index(oldName)
				if !ok {
					return fmt.Errorf("label %q not found", oldName)
				}

				return m.UpdateLabels(func(ed *section.LabelEditor) error {
					return ed.SetName(index, newName)
				})
			})
		},
	}
}

func setTextCmd(g *globals) *cli.Command {
	var output string

	return &cli.Command{
		Name:      "set-text",
		Usage:     "Replace the text of a message",
		ArgsUsage: "FILE LABEL TEXT",
		Flags:     []cli.Flag{outputFlag(&output)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 3 {
				return cli.Exit("error: expected FILE LABEL TEXT", 2)
			}
			path, label, text := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

			return edit(g, cmd, path, output, func(m *msbt.Msbt) error {
				if m.Labels() == nil {
					return fmt.Errorf("%s has no label table", path)
				}
				index, ok := m.Labels().Index(label)
				if !ok {
					return fmt.Errorf("label %q not found", label)
				}

				return m.UpdateStrings(func(ed *section.StringEditor) error {
					return ed.SetText(index, text)
				})
			})
		},
	}
}

// edit reads path, applies fn and writes the result to output, or back to path
// when output is empty.
func edit(g *globals, cmd *cli.Command, path, output string, fn func(m *msbt.Msbt) error) error {
	m, err := g.open(cmd, path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	if err := fn(m); err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	if output == "" {
		output = path
	}
	if err := m.WriteFile(output); err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	fmt.Fprintf(stdout(cmd), "wrote %s (%d bytes)\n", output, m.Size())

	return nil
}
