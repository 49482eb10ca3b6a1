package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	trees string
	quiet bool
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the DAG and its edge selection",
		Long: `Check loads the trees, validates the resulting DAG and edge choice
map, and exits non-zero if anything is inconsistent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(opts)
		},
	}

	cmd.Flags().StringVar(&opts.trees, "trees", "", "newick file, one tree per line")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the summary line")
	_ = cmd.MarkFlagRequired("trees")

	return cmd
}

func (c *CLI) runCheck(opts checkOpts) error {
	space, err := c.loadSpace(opts.trees)
	if err != nil {
		return err
	}
	if err := space.Validate(); err != nil {
		return err
	}
	if !opts.quiet {
		st := space.Stats()
		fmt.Fprintf(c.out, "ok: %d taxa, %d nodes, %d edges\n", st.Taxa, st.Nodes, st.Edges)
	}
	return nil
}
