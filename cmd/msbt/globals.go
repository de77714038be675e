package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/msbt"
)

// globals holds the root flags shared by every command.
type globals struct {
	logLevel      string
	logFormat     string
	strictPadding bool
}

// newLogger builds the slog logger selected by the root flags.
func (g *globals) newLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(g.logLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(g.logFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", g.logFormat)
	}
}

// open reads the container at path with the logging and padding settings of g.
func (g *globals) open(cmd *cli.Command, path string) (*msbt.Msbt, error) {
	logger, err := g.newLogger(stderr(cmd))
	if err != nil {
		return nil, err
	}

	return msbt.ReadFile(path, msbt.WithLogger(logger), msbt.WithStrictPadding(g.strictPadding))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// fileArg returns the first positional argument.
func fileArg(cmd *cli.Command) (string, error) {
	path := cmd.Args().First()
	if path == "" {
		return "", cli.Exit("error: missing FILE argument", 2)
	}

	return path, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
