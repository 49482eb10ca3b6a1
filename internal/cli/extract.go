package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phylogo/sdag/dag"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	trees  string
	edge   int
	all    bool
	output string
}

func (c *CLI) extractCommand() *cobra.Command {
	opts := extractOpts{edge: -1}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract spanning tree topologies from the DAG",
		Long: `Extract prints the spanning tree passing through chosen edges, one
newick per line. By default it extracts around every root edge, which
enumerates one representative tree per rootsplit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.trees, "trees", "", "newick file, one tree per line")
	cmd.Flags().IntVar(&opts.edge, "edge", -1, "extract around this edge id only")
	cmd.Flags().BoolVar(&opts.all, "all", false, "extract around every edge")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("trees")
	cmd.MarkFlagsMutuallyExclusive("edge", "all")

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, opts extractOpts) error {
	space, err := c.loadSpace(opts.trees)
	if err != nil {
		return err
	}

	var edges []dag.EdgeID
	switch {
	case opts.edge >= 0:
		edges = []dag.EdgeID{dag.EdgeID(opts.edge)}
	case opts.all:
		for id := range space.DAG().Edges() {
			edges = append(edges, id)
		}
	default:
		for id := range space.DAG().Edges() {
			if space.DAG().IsEdgeRoot(id) {
				edges = append(edges, id)
			}
		}
	}

	tops, err := space.Topologies(ctx, edges)
	if err != nil {
		return err
	}

	taxa := space.Taxa()
	name := func(id uint32) string {
		if int(id) < len(taxa) {
			return taxa[id]
		}
		return ""
	}

	out, err := c.openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, top := range tops {
		if _, err := fmt.Fprintln(out, top.Newick(name)); err != nil {
			return err
		}
	}
	return nil
}
