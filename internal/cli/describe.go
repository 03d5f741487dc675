package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-meshdata/node"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print the structure and leaf layouts of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}
			return node.Walk(tree, func(path string, n *node.Node) error {
				if path == "" {
					path = "/"
				}
				switch {
				case n.Kind().IsLeaf():
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, n.DType())
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d children)\n",
						path, n.Kind(), n.NumChildren())
				}
				return nil
			})
		},
	}
}
