package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
)

func newExampleCmd() *cobra.Command {
	var npx, npy, npz int64

	cmd := &cobra.Command{
		Use:   "example TYPE",
		Short: "Emit a canonical example mesh (uniform, rectilinear, structured, tris, quads, polygons, tets, hexs, polyhedra)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			mesh := examples.Basic(args[0], npx, npy, npz)
			if cfg.Annotated {
				fmt.Fprintln(cmd.OutOrStdout(), mesh.JSON())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), mesh.PlainJSON())
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&npx, "nx", 3, "points along x")
	cmd.Flags().Int64Var(&npy, "ny", 3, "points along y")
	cmd.Flags().Int64Var(&npz, "nz", 0, "points along z (0 for 2D)")
	return cmd
}
