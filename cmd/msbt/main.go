// Command msbt inspects and edits MsgStdBn message table files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	g := &globals{}

	return &cli.Command{
		Name:  "msbt",
		Usage: "Inspect and edit MsgStdBn message table files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level: debug, info, warn, error",
				Value:       "warn",
				Destination: &g.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format: text or json",
				Value:       "text",
				Destination: &g.logFormat,
			},
			&cli.BoolFlag{
				Name:        "strict-padding",
				Usage:       "fail on files whose alignment gaps mix pad values",
				Destination: &g.strictPadding,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(g),
			dumpCmd(g),
			checkCmd(g),
			renameCmd(g),
			setTextCmd(g),
			importCmd(g),
		},
	}
}
