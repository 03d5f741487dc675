package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/node"
)

func newVerifyCmd() *cobra.Command {
	var protocol string

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Validate a mesh tree against the mesh protocol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootLogger()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if protocol == "" {
				protocol = cfg.DefaultProtocol
			}

			tree, err := readTree(args[0])
			if err != nil {
				return err
			}

			info := node.New()
			var ok bool
			if protocol == "" {
				logger.Debug("verifying full mesh", "file", args[0])
				ok = blueprint.VerifyMesh(tree, info)
			} else {
				logger.Debug("verifying protocol", "file", args[0], "protocol", protocol)
				ok = blueprint.Verify(protocol, tree, info)
			}

			fmt.Fprintln(cmd.OutOrStdout(), info.JSON())
			if !ok {
				return fmt.Errorf("%s does not conform", args[0])
			}
			logger.Info("valid", "file", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&protocol, "protocol", "",
		"sub-protocol to check (coordset, topology, ...); full mesh when empty")
	return cmd
}

func readTree(path string) (*node.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := node.ParseJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tree, nil
}
