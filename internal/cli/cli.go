// Package cli implements the sdag command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phylogo/sdag"
)

// CLI holds shared state for all commands. Results go to out, logs to
// errOut.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	level  slog.Level
}

// New creates a new CLI instance writing to the given streams.
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut, level: slog.LevelWarn}
}

// Execute runs the root command on the standard streams.
func Execute(ctx context.Context) error {
	c := New(os.Stdout, os.Stderr)
	return c.RootCommand().ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:   "sdag",
		Short: "Explore collections of phylogenetic trees as a subsplit DAG",
		Long: `Sdag merges rooted binary trees into a subsplit DAG and answers
questions about the combined tree space: which spanning trees pass
through an edge, and which nearest-neighbor interchanges would extend
the space.

Input files hold one newick tree per line; blank lines and lines
starting with # are skipped. The taxon set is the sorted union of the
leaf labels, and every tree must span all of it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseLogLevel(level)
			if err != nil {
				return err
			}
			c.level = parsed
			return nil
		},
	}

	root.PersistentFlags().StringVar(&level, "log-level", "warn", "log level (debug|info|warn|error)")

	root.AddCommand(c.extractCommand())
	root.AddCommand(c.nnisCommand())
	root.AddCommand(c.checkCommand())

	return root
}

// logger builds the library logger for one command run.
func (c *CLI) logger() *sdag.Logger {
	return sdag.NewLogger(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: c.level}))
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or the CLI
// output stream if the path is empty.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{c.out}, nil
	}
	return os.Create(path)
}
