package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// nnisOpts holds the command-line flags for the nnis command.
type nnisOpts struct {
	trees  string
	output string
}

func (c *CLI) nnisCommand() *cobra.Command {
	var opts nnisOpts

	cmd := &cobra.Command{
		Use:   "nnis",
		Short: "Enumerate candidate nearest-neighbor interchanges",
		Long: `Nnis lists the nearest-neighbor interchanges adjacent to the DAG:
rearrangements of an existing edge whose resulting parent-child pair is
not yet part of the structure. Each candidate prints on its own line in
subsplit notation with taxon names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNNIs(opts)
		},
	}

	cmd.Flags().StringVar(&opts.trees, "trees", "", "newick file, one tree per line")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("trees")

	return cmd
}

func (c *CLI) runNNIs(opts nnisOpts) error {
	space, err := c.loadSpace(opts.trees)
	if err != nil {
		return err
	}
	taxa := space.Taxa()

	out, err := c.openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	for op := range space.CandidateNNIs().All() {
		if _, err := fmt.Fprintln(out, op.Pretty(taxa)); err != nil {
			return err
		}
	}
	return nil
}
